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

// Package store implements a reflector set of per-kind in-memory object stores,
// synced to the API server via label-filtered watches, with exponential backoff on
// connection error, re-list on 410 Gone, and a bounded fan-in "reload" channel for
// owned-resource deletions. Built directly on client-go's tools/cache.Reflector/Store
// rather than controller-runtime's generic cache, because that cache has no hook to
// fan deletions of owned resources back in as a trigger for the owner's reconcile.
package store

import (
	"context"
	"sync"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/tools/cache"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// EventKind enumerates the three event kinds a Store's subscribers observe:
// Apply covers both add and modify, Delete covers removal, InitApply replays
// existing objects during a resync.
type EventKind int

const (
	EventApply EventKind = iota
	EventDelete
	EventInitApply
)

// Event is pushed to a Store's subscriber channel.
type Event struct {
	Kind   EventKind
	Object client.Object
}

// Key identifies a cached object by namespace and name.
type Key struct {
	Namespace string
	Name      string
}

// Store is a read-only, read-locked snapshot of a single kind's objects,
// fed by a single writer goroutine (the reflector). Multi-reader/single-writer.
type Store struct {
	mu    sync.RWMutex
	items map[Key]client.Object

	subsMu sync.Mutex
	subs   []chan<- Event

	// reload, when non-nil, receives a best-effort unit value whenever this store
	// observes a Delete event, so an owner controller can force a reconcile-all
	// to notice an owned resource disappearing. Capacity 16, try-send only:
	// overflow drops, because reconcile-all is idempotent and at-least-once
	// suffices.
	reload chan<- struct{}
}

// NewStore creates an empty Store. Pass a non-nil reload channel to have Delete
// events additionally try-send into it (used for owned resources: StatefulSet,
// Service, Ingress, Secret).
func NewStore(reload chan<- struct{}) *Store {
	return &Store{
		items:  make(map[Key]client.Object),
		reload: reload,
	}
}

// Get returns the cached object keyed by namespace/name, if cached. The object
// is returned as stored, not as a copy.
func (s *Store) Get(namespace, name string) (client.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.items[Key{Namespace: namespace, Name: name}]
	return obj, ok
}

// List returns a snapshot slice of all cached objects.
func (s *Store) List() []client.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]client.Object, 0, len(s.items))
	for _, obj := range s.items {
		out = append(out, obj)
	}
	return out
}

// Subscribe registers a channel that receives future Apply/Delete/InitApply
// events. Events are try-sent: an event that finds the channel full is dropped
// for that subscriber. The channel is never closed by Store; callers should size it generously
// (this mirrors the bounded owned-resource reload channel, but subscriber channels
// used by the reconciler harness's debounce stage are typically much larger).
func (s *Store) Subscribe(ch chan<- Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs = append(s.subs, ch)
}

func (s *Store) publish(ev Event) {
	s.subsMu.Lock()
	subs := append([]chan<- Event(nil), s.subs...)
	s.subsMu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// ApplyForTest seeds the store directly with obj, bypassing the reflector.
// It exists for package tests that need a populated Store without standing up
// a watch; production code always goes through RunReflector.
func (s *Store) ApplyForTest(obj client.Object) {
	s.applyObject(obj, EventApply)
}

// applyObject is called by the reflector's processor on add/update/replace.
func (s *Store) applyObject(obj client.Object, kind EventKind) {
	key := Key{Namespace: obj.GetNamespace(), Name: obj.GetName()}
	s.mu.Lock()
	s.items[key] = obj
	s.mu.Unlock()
	s.publish(Event{Kind: kind, Object: obj})
}

func (s *Store) deleteObject(obj client.Object) {
	key := Key{Namespace: obj.GetNamespace(), Name: obj.GetName()}
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	s.publish(Event{Kind: EventDelete, Object: obj})
	if s.reload != nil {
		select {
		case s.reload <- struct{}{}:
		default:
		}
	}
}

// deltaProcess adapts cache.Reflector's delta-less Store contract (Add/Update/Delete/
// Replace/Resync) to the Apply/Delete/InitApply event model above. It is installed as
// the cache.Store passed to cache.NewReflector, so the reflector thinks it is feeding
// a plain client-go store while we additionally publish events and maintain our own
// snapshot map.
type deltaProcess struct {
	store      *Store
	replacing  bool
}

func (d *deltaProcess) Add(obj any) error {
	o, ok := obj.(client.Object)
	if !ok {
		return nil
	}
	kind := EventApply
	if d.replacing {
		kind = EventInitApply
	}
	d.store.applyObject(o, kind)
	return nil
}

func (d *deltaProcess) Update(obj any) error {
	o, ok := obj.(client.Object)
	if !ok {
		return nil
	}
	d.store.applyObject(o, EventApply)
	return nil
}

func (d *deltaProcess) Delete(obj any) error {
	o, ok := obj.(client.Object)
	if !ok {
		if deleted, ok := obj.(cache.DeletedFinalStateUnknown); ok {
			if o2, ok := deleted.Obj.(client.Object); ok {
				d.store.deleteObject(o2)
			}
		}
		return nil
	}
	d.store.deleteObject(o)
	return nil
}

func (d *deltaProcess) List() []any {
	items := d.store.List()
	out := make([]any, len(items))
	for i, obj := range items {
		out[i] = obj
	}
	return out
}

func (d *deltaProcess) ListKeys() []string {
	items := d.store.List()
	out := make([]string, len(items))
	for i, obj := range items {
		out[i] = obj.GetNamespace() + "/" + obj.GetName()
	}
	return out
}

func (d *deltaProcess) Get(obj any) (item any, exists bool, err error) {
	o, ok := obj.(client.Object)
	if !ok {
		return nil, false, nil
	}
	got, ok := d.store.Get(o.GetNamespace(), o.GetName())
	return got, ok, nil
}

func (d *deltaProcess) GetByKey(key string) (item any, exists bool, err error) {
	ns, name := splitKey(key)
	got, ok := d.store.Get(ns, name)
	return got, ok, nil
}

func (d *deltaProcess) Replace(items []any, resourceVersion string) error {
	d.replacing = true
	defer func() { d.replacing = false }()
	seen := make(map[Key]bool, len(items))
	for _, item := range items {
		o, ok := item.(client.Object)
		if !ok {
			continue
		}
		seen[Key{Namespace: o.GetNamespace(), Name: o.GetName()}] = true
		d.store.applyObject(o, EventInitApply)
	}
	// remove anything no longer present, without treating it as a Delete fan-in event:
	// a relist is not an owned-resource deletion.
	d.store.mu.Lock()
	for key := range d.store.items {
		if !seen[key] {
			delete(d.store.items, key)
		}
	}
	d.store.mu.Unlock()
	return nil
}

func (d *deltaProcess) Resync() error {
	return nil
}

func splitKey(key string) (namespace, name string) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '/' {
			return key[:i], key[i+1:]
		}
	}
	return "", key
}

// ListerWatcher is implemented by a typed client-go resource interface
// (e.g. clientset.AppsV1().StatefulSets(ns)); kaniop builds one per kind+namespace
// selector via client-go's generated listers, or via a controller-runtime
// client.WithWatch when no typed lister is convenient (e.g. for the CRD-backed
// kinds, which have no generated clientset in this module).
type ListerWatcher = cache.ListerWatcher

// RunReflector drives store with a client-go Reflector until ctx is cancelled. It
// re-lists on HTTP 410 Gone automatically (cache.Reflector's built-in behavior) and
// backs off exponentially on repeated watch errors.
func RunReflector(ctx context.Context, lw ListerWatcher, expectedType runtime.Object, store *Store) {
	proc := &deltaProcess{store: store}
	reflector := cache.NewReflector(lw, expectedType, proc, 0)
	// cache.Reflector retries its own ListAndWatch loop with a jittered backoff
	// (client-go's DefaultWatchErrorHandler); Run blocks until ctx is done.
	reflector.Run(ctx.Done())
}

// NewFilteredListWatch builds a ListerWatcher against a single namespace (or all
// namespaces, if ns is "") filtered by the managed-by label selector, for resource
// kinds this module tracks via a raw client.Client (the CRD-backed kinds and core
// types alike).
func NewFilteredListWatch(clnt client.WithWatch, newList func() client.ObjectList, ns string, labelSelector string) ListerWatcher {
	listOpts := func(options metav1.ListOptions) []client.ListOption {
		opts := []client.ListOption{client.InNamespace(ns), &rawListOptions{raw: options}}
		if labelSelector != "" {
			if sel, err := labels.Parse(labelSelector); err == nil {
				opts = append(opts, client.MatchingLabelsSelector{Selector: sel})
			}
		}
		return opts
	}
	return &cache.ListWatch{
		ListFunc: func(options metav1.ListOptions) (runtime.Object, error) {
			list := newList()
			err := clnt.List(context.Background(), list, listOpts(options)...)
			return list, err
		},
		WatchFunc: func(options metav1.ListOptions) (watch.Interface, error) {
			list := newList()
			return clnt.Watch(context.Background(), list, listOpts(options)...)
		},
	}
}

// rawListOptions forwards a Reflector-supplied metav1.ListOptions (notably
// ResourceVersion, needed for watch continuity after a relist) straight
// through to the underlying List/Watch call.
type rawListOptions struct {
	raw metav1.ListOptions
}

func (r *rawListOptions) ApplyToList(opts *client.ListOptions) {
	raw := r.raw
	opts.Raw = &raw
}

// debounceWindow matches the harness's 500ms coalescing window. It is
// unexported and not referenced elsewhere in this package.
const debounceWindow = 500 * time.Millisecond
