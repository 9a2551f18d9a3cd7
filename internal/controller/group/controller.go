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

package group

import (
	"context"

	"github.com/pando85/kaniop-sub001/internal/reconciler"
	"github.com/pando85/kaniop-sub001/internal/store"
)

// Controller owns the KanidmGroup store and reconcile harness.
type Controller struct {
	reconciler *Reconciler
	harness    *reconciler.Harness
	store      *store.Store
}

// New builds a group Controller.
func New(ctx *reconciler.Context) *Controller {
	groupStore := store.NewStore(nil)
	events := make(chan store.Event, 64)
	groupStore.Subscribe(events)
	ctx.Stores["kanidmgroup"] = groupStore

	rec := NewReconciler(ctx)
	harness := reconciler.NewHarness(
		ControllerID,
		rec.Reconcile,
		ctx.Backoff,
		events,
		nil,
		func() []reconciler.ObjectKey { return nil },
	)

	return &Controller{reconciler: rec, harness: harness, store: groupStore}
}

// Store exposes the underlying object store for reflector wiring.
func (c *Controller) Store() *store.Store { return c.store }

// Start runs the reconcile harness until ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	c.harness.Run(ctx)
}
