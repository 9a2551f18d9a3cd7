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

// Package reconciler implements the shared per-controller reconcile harness
// (debounce, dispatch, backoff, owned-resource fan-in) that every domain
// controller in internal/controller/* is built on: one shared context struct
// threaded through reconcile calls, carrying Kanidm-specific dependencies
// (client cache, stores, backoff table, metrics, recorder) instead of a
// generic manifest-rendering client.
package reconciler

import (
	"github.com/go-logr/logr"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/pando85/kaniop-sub001/internal/backoff"
	"github.com/pando85/kaniop-sub001/internal/events"
	"github.com/pando85/kaniop-sub001/internal/kanidmclient"
	"github.com/pando85/kaniop-sub001/internal/store"
)

// Context bundles everything a domain reconcile function needs, built around
// kaniop's own dependencies instead of a generic cluster client.
type Context struct {
	// Client is the controller-runtime client used for reads/writes of both
	// owned resources and the controller's own custom resource kind.
	Client client.Client

	// Kanidm is the authenticated-client cache: controllers look up a
	// per-cluster Client here rather than holding one of their own.
	Kanidm *kanidmclient.Cache

	// Stores indexes the in-memory object stores this controller
	// subscribes to, keyed by a short name ("kanidm", "statefulset", ...).
	Stores map[string]*store.Store

	// Backoff is the shared per-object exponential backoff table.
	Backoff *backoff.Table

	// Recorder emits deduplicated Kubernetes Events against reconciled
	// objects.
	Recorder *events.DeduplicatingRecorder

	// ControllerID names this controller for metrics labels and the
	// managed-by label value.
	ControllerID string

	// RestConfig and Clientset back the pod-exec bootstrap step: only
	// the kanidm controller uses them, but they live on the shared Context
	// since both are already built once in cmd/operator's wiring.
	RestConfig *rest.Config
	Clientset  kubernetes.Interface

	Log logr.Logger
}

// NewContext builds a Context for one controller instance.
func NewContext(
	controllerID string,
	cl client.Client,
	kanidm *kanidmclient.Cache,
	stores map[string]*store.Store,
	backoffTable *backoff.Table,
	eventRecorder record.EventRecorder,
	restConfig *rest.Config,
	clientset kubernetes.Interface,
	log logr.Logger,
) *Context {
	return &Context{
		Client:       cl,
		Kanidm:       kanidm,
		Stores:       stores,
		Backoff:      backoffTable,
		Recorder:     events.NewDeduplicatingRecorder(eventRecorder),
		ControllerID: controllerID,
		RestConfig:   restConfig,
		Clientset:    clientset,
		Log:          log,
	}
}
