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

package reconciler

import (
	"context"
	"time"

	"github.com/pando85/kaniop-sub001/internal/backoff"
	"github.com/pando85/kaniop-sub001/internal/metrics"
	"github.com/pando85/kaniop-sub001/internal/store"
)

// debounceWindow matches store.debounceWindow: events for
// the same key arriving within this window collapse into a single reconcile.
const debounceWindow = 500 * time.Millisecond

// ObjectKey identifies one object to reconcile.
type ObjectKey struct {
	Namespace string
	Name      string
}

// ReconcileFunc is a domain controller's reconcile body. It returns a
// requeueAfter hint (zero meaning "use the default requeue interval") and an
// error, which triggers exponential backoff if non-nil.
type ReconcileFunc func(ctx context.Context, key ObjectKey) (requeueAfter time.Duration, err error)

// cause labels why a key was enqueued, for the Triggered metric.
type cause string

const (
	causeOwn     cause = "own"
	causeOwned   cause = "owned"
	causeRequeue cause = "requeue"
)

// Harness drives ReconcileFunc for one controller: it debounces bursts of
// events for the same key into a single reconcile, serializes reconciles of a
// given key (never runs the same key concurrently), and schedules retries
// through the shared backoff table on failure.
type Harness struct {
	controllerID string
	reconcile    ReconcileFunc
	backoffTable *backoff.Table

	ownEvents   <-chan store.Event
	ownedReload <-chan struct{}
	// listOwnKeys lists the keys to re-enqueue whenever ownedReload fires: owned
	// resources (StatefulSet, Service, Secret, ...) carry no back-reference to
	// their controller in this harness, so a reload simply reconciles every
	// known key of the controller's own kind.
	listOwnKeys func() []ObjectKey
}

// NewHarness builds a Harness. ownEvents is the controller's own-kind store
// subscription; ownedReload is the bounded fan-in channel shared by every
// owned-resource store; listOwnKeys enumerates the controller's own-kind keys
// at the moment a reload fires.
func NewHarness(
	controllerID string,
	reconcile ReconcileFunc,
	backoffTable *backoff.Table,
	ownEvents <-chan store.Event,
	ownedReload <-chan struct{},
	listOwnKeys func() []ObjectKey,
) *Harness {
	return &Harness{
		controllerID: controllerID,
		reconcile:    reconcile,
		backoffTable: backoffTable,
		ownEvents:    ownEvents,
		ownedReload:  ownedReload,
		listOwnKeys:  listOwnKeys,
	}
}

// Run drives the harness until ctx is cancelled. It is meant to be started in
// its own goroutine by the owning controller's Start method.
func (h *Harness) Run(ctx context.Context) {
	pending := make(map[ObjectKey]cause)
	timer := time.NewTimer(debounceWindow)
	if !timer.Stop() {
		<-timer.C
	}
	timerArmed := false

	arm := func() {
		if !timerArmed {
			timer.Reset(debounceWindow)
			timerArmed = true
		}
	}

	inFlight := make(map[ObjectKey]bool)
	done := make(chan ObjectKey, 16)
	retry := make(chan ObjectKey, 16)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-h.ownEvents:
			if !ok {
				h.ownEvents = nil
				continue
			}
			key := ObjectKey{Namespace: ev.Object.GetNamespace(), Name: ev.Object.GetName()}
			pending[key] = causeOwn
			arm()

		case _, ok := <-h.ownedReload:
			if !ok {
				h.ownedReload = nil
				continue
			}
			for _, key := range h.listOwnKeys() {
				if _, exists := pending[key]; !exists {
					pending[key] = causeOwned
				}
			}
			arm()

		case key := <-done:
			delete(inFlight, key)

		case key := <-retry:
			if _, exists := pending[key]; !exists {
				pending[key] = causeRequeue
			}
			arm()

		case <-timer.C:
			timerArmed = false
			for key, c := range pending {
				if inFlight[key] {
					// leave it pending; it will be picked up once the current
					// run for this key completes and the next timer fires.
					continue
				}
				delete(pending, key)
				inFlight[key] = true
				metrics.Triggered.WithLabelValues(h.controllerID, string(c)).Inc()
				go h.runOne(ctx, key, done, retry)
			}
			if len(pending) > 0 {
				arm()
			}
		}
	}
}

func (h *Harness) runOne(ctx context.Context, key ObjectKey, done chan<- ObjectKey, retry chan<- ObjectKey) {
	defer func() { done <- key }()

	start := time.Now()
	metrics.ReconcileOperations.WithLabelValues(h.controllerID).Inc()
	requeueAfter, err := h.reconcile(ctx, key)
	metrics.ReconcileDuration.WithLabelValues(h.controllerID).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ReconcileFailures.WithLabelValues(h.controllerID).Inc()
		delay := h.backoffTable.Next(key)
		h.scheduleRetry(ctx, key, delay, retry)
		return
	}

	h.backoffTable.Reset(key)
	if requeueAfter <= 0 {
		requeueAfter = backoff.DefaultRequeue
	}
	h.scheduleRetry(ctx, key, requeueAfter, retry)
}

// scheduleRetry re-enqueues key for reconciliation after delay by feeding it
// back into the harness's retry channel, which the run loop treats as an
// ordinary trigger (added to pending, debounced like any other event).
func (h *Harness) scheduleRetry(ctx context.Context, key ObjectKey, delay time.Duration, retry chan<- ObjectKey) {
	go func() {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
			select {
			case retry <- key:
			case <-ctx.Done():
			}
		}
	}()
}
