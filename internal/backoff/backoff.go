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

// Package backoff implements the per-object exponential backoff table used by
// the reconciler harness: exponential from 1s, doubling, capped at 60s,
// unbounded attempts. Wraps client-go's workqueue.RateLimiter with no
// activity-token indirection, since kaniop backs off the whole object rather
// than per-activity.
package backoff

import (
	"sync"
	"time"

	"k8s.io/client-go/util/workqueue"
)

const (
	// BaseDelay is the first backoff delay.
	BaseDelay = 1 * time.Second
	// MaxDelay caps the backoff delay.
	MaxDelay = 60 * time.Second
	// DefaultRequeue is the requeue delay used after a successful reconcile, absent an
	// explicit per-callback request.
	DefaultRequeue = 60 * time.Second
)

// Table is a map ObjectRef -> BackoffState. Reads and writes are serialized by a
// single mutex; Reset removes the entry, freeing memory.
type Table struct {
	lock    sync.Mutex
	limiter workqueue.RateLimiter
}

// NewTable builds a backoff table doubling from BaseDelay and capped at MaxDelay.
func NewTable() *Table {
	return &Table{
		limiter: workqueue.NewItemExponentialFailureRateLimiter(BaseDelay, MaxDelay),
	}
}

// Next returns the delay to wait before the next reconcile of key, after a failure,
// and advances key's internal failure counter.
func (t *Table) Next(key any) time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.limiter.When(key)
}

// Reset clears key's backoff state, as done on a successful reconcile.
func (t *Table) Reset(key any) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.limiter.Forget(key)
}
