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

package reconciler_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/pando85/kaniop-sub001/internal/backoff"
	"github.com/pando85/kaniop-sub001/internal/reconciler"
	"github.com/pando85/kaniop-sub001/internal/store"
)

func TestReconciler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "reconciler package tests")
}

func fakeObject(namespace, name string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
	}
}

var _ = Describe("testing: harness.go", func() {
	var (
		ownEvents   chan store.Event
		ownedReload chan struct{}
		table       *backoff.Table
	)

	BeforeEach(func() {
		ownEvents = make(chan store.Event, 16)
		ownedReload = make(chan struct{}, 16)
		table = backoff.NewTable()
	})

	It("debounces repeated events for the same key into a single reconcile", func() {
		var calls int32
		reconcile := func(ctx context.Context, key reconciler.ObjectKey) (time.Duration, error) {
			atomic.AddInt32(&calls, 1)
			return 0, nil
		}

		h := reconciler.NewHarness("test", reconcile, table, ownEvents, ownedReload,
			func() []reconciler.ObjectKey { return nil })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go h.Run(ctx)

		for i := 0; i < 5; i++ {
			ownEvents <- store.Event{Kind: store.EventApply, Object: fakeObject("default", "thing")}
		}

		Eventually(func() int32 { return atomic.LoadInt32(&calls) }, "2s", "10ms").Should(Equal(int32(1)))
		Consistently(func() int32 { return atomic.LoadInt32(&calls) }, "200ms", "20ms").Should(Equal(int32(1)))
	})

	It("reconciles distinct keys independently", func() {
		var mu sync.Mutex
		seen := map[string]int{}
		reconcile := func(ctx context.Context, key reconciler.ObjectKey) (time.Duration, error) {
			mu.Lock()
			seen[key.Name]++
			mu.Unlock()
			return 0, nil
		}

		h := reconciler.NewHarness("test", reconcile, table, ownEvents, ownedReload,
			func() []reconciler.ObjectKey { return nil })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go h.Run(ctx)

		ownEvents <- store.Event{Kind: store.EventApply, Object: fakeObject("default", "a")}
		ownEvents <- store.Event{Kind: store.EventApply, Object: fakeObject("default", "b")}

		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return seen["a"] + seen["b"]
		}, "2s", "10ms").Should(Equal(2))
	})

	It("retries a failing reconcile via the shared backoff table", func() {
		var calls int32
		reconcile := func(ctx context.Context, key reconciler.ObjectKey) (time.Duration, error) {
			n := atomic.AddInt32(&calls, 1)
			if n < 2 {
				return 0, errBoom
			}
			return 0, nil
		}

		h := reconciler.NewHarness("test", reconcile, table, ownEvents, ownedReload,
			func() []reconciler.ObjectKey { return nil })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go h.Run(ctx)

		ownEvents <- store.Event{Kind: store.EventApply, Object: fakeObject("default", "thing")}

		Eventually(func() int32 { return atomic.LoadInt32(&calls) }, "3s", "10ms").Should(BeNumerically(">=", int32(2)))
	})

	It("reconciles every own-kind key when an owned-resource reload fires", func() {
		var mu sync.Mutex
		seen := map[string]bool{}
		reconcile := func(ctx context.Context, key reconciler.ObjectKey) (time.Duration, error) {
			mu.Lock()
			seen[key.Name] = true
			mu.Unlock()
			return 0, nil
		}

		keys := []reconciler.ObjectKey{
			{Namespace: "default", Name: "a"},
			{Namespace: "default", Name: "b"},
		}
		h := reconciler.NewHarness("test", reconcile, table, ownEvents, ownedReload,
			func() []reconciler.ObjectKey { return keys })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go h.Run(ctx)

		ownedReload <- struct{}{}

		Eventually(func() bool {
			mu.Lock()
			defer mu.Unlock()
			return seen["a"] && seen["b"]
		}, "2s", "10ms").Should(BeTrue())
	})
})

type boomError struct{}

func (boomError) Error() string { return "boom" }

var errBoom = boomError{}
