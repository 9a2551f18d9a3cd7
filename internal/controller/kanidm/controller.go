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

package kanidm

import (
	"context"

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
	"github.com/pando85/kaniop-sub001/internal/reconciler"
	"github.com/pando85/kaniop-sub001/internal/store"
)

// ControllerID is the value used in the managed-by label and metrics labels
// for this controller.
const ControllerID = "kanidm"

// Controller owns the Kanidm store, reconcile harness, and the object cache
// feeding it.
type Controller struct {
	reconciler *Reconciler
	harness    *reconciler.Harness
	store      *store.Store
}

// New builds a Controller. reload is the shared owned-resource fan-in channel
// (StatefulSet/Service/Ingress/Secret stores all write into it).
func New(ctx *reconciler.Context, reload <-chan struct{}) *Controller {
	kanidmStore := store.NewStore(nil)
	events := make(chan store.Event, 64)
	kanidmStore.Subscribe(events)
	ctx.Stores["kanidm"] = kanidmStore

	rec := NewReconciler(ctx)
	harness := reconciler.NewHarness(
		ControllerID,
		rec.Reconcile,
		ctx.Backoff,
		events,
		reload,
		func() []reconciler.ObjectKey {
			var keys []reconciler.ObjectKey
			for _, obj := range kanidmStore.List() {
				keys = append(keys, reconciler.ObjectKey{Namespace: obj.GetNamespace(), Name: obj.GetName()})
			}
			return keys
		},
	)

	return &Controller{reconciler: rec, harness: harness, store: kanidmStore}
}

// Store exposes the underlying Kanidm object store, so the reflector can be
// wired to it from the operator's main entrypoint.
func (c *Controller) Store() *store.Store { return c.store }

// Start runs the reconcile harness until ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	c.harness.Run(ctx)
}

// ManagedBySelector is the label selector this controller's reflector watches
// are filtered by.
func ManagedBySelector() string {
	return k8sutil.ManagedBySelector(ControllerID)
}
