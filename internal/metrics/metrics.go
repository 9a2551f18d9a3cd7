/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics defines the operator's Prometheus metrics: CounterVecs
// labeled by controller for reconcile outcomes, plus gauges and a reconcile
// duration histogram layered on top.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const prefix = "kaniop"

var (
	// ReconcileOperations counts every reconcile attempt, successful or not.
	ReconcileOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_reconcile_operations_total",
			Help: "Total number of reconciliations per controller",
		},
		[]string{"controller"},
	)
	// ReconcileFailures counts reconcile attempts that returned an error.
	ReconcileFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_reconcile_failures_total",
			Help: "Total number of failed reconciliations per controller",
		},
		[]string{"controller"},
	)
	// StatusUpdateErrors counts failures in the status-subresource update step,
	// a separately retried tail of a reconcile.
	StatusUpdateErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_status_update_errors_total",
			Help: "Total number of status subresource update failures per controller",
		},
		[]string{"controller"},
	)
	// Triggered counts reconcile requests enqueued by the harness, broken out by
	// what triggered them (own-object event, owned-resource reload, requeue or
	// retry).
	Triggered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_triggered_total",
			Help: "Total number of reconcile triggers per controller and cause",
		},
		[]string{"controller", "cause"},
	)
	// WatchOperationsFailed counts reflector-level list/watch failures.
	WatchOperationsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_watch_operations_failed_total",
			Help: "Total number of list/watch failures per controller",
		},
		[]string{"controller"},
	)
	// Ready reports 1 if the controller's reflectors have completed their
	// initial sync, 0 otherwise.
	Ready = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_ready",
			Help: "Whether the controller has completed initial sync",
		},
		[]string{"controller"},
	)
	// SpecReplicas mirrors the last-observed desired replica count, per Kanidm
	// instance.
	SpecReplicas = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_spec_replicas",
			Help: "Desired replica count as last observed from spec",
		},
		[]string{"controller", "namespace", "name"},
	)
	// ReconcileDuration observes wall-clock time spent inside one reconcile call.
	ReconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_reconcile_duration_seconds",
			Help:    "Reconcile duration in seconds per controller",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"controller"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		ReconcileOperations,
		ReconcileFailures,
		StatusUpdateErrors,
		Triggered,
		WatchOperationsFailed,
		Ready,
		SpecReplicas,
		ReconcileDuration,
	)
}
