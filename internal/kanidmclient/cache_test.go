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

package kanidmclient_test

import (
	"context"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
	"github.com/pando85/kaniop-sub001/internal/kanidmclient"
)

func TestKanidmClient(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "kanidmclient package tests")
}

var _ = Describe("testing: cache.go", func() {
	It("returns a missing-object error when the admin password secret is absent", func() {
		scheme := runtime.NewScheme()
		Expect(corev1.AddToScheme(scheme)).To(Succeed())
		kube := fake.NewClientBuilder().WithScheme(scheme).Build()
		cache := kanidmclient.NewCache(kube)

		_, err := cache.Get(context.Background(), "default", "my-kanidm", kanidmclient.UserIdmAdmin)
		Expect(err).To(HaveOccurred())
		kind, ok := k8sutil.KindOf(err)
		Expect(ok).To(BeTrue())
		Expect(kind).To(Equal(k8sutil.KindMissingObject))
	})

	It("returns a missing-data error when the secret lacks the requested user's key", func() {
		scheme := runtime.NewScheme()
		Expect(corev1.AddToScheme(scheme)).To(Succeed())
		secret := &corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "my-kanidm-admin-passwords", Namespace: "default"},
			Data:       map[string][]byte{"admin": []byte("s3cret")},
		}
		kube := fake.NewClientBuilder().WithScheme(scheme).WithObjects(secret).Build()
		cache := kanidmclient.NewCache(kube)

		_, err := cache.Get(context.Background(), "default", "my-kanidm", kanidmclient.UserIdmAdmin)
		Expect(err).To(HaveOccurred())
		kind, ok := k8sutil.KindOf(err)
		Expect(ok).To(BeTrue())
		Expect(kind).To(Equal(k8sutil.KindMissingData))
	})

	It("collapses concurrent lookups of the same key without racing or panicking", func() {
		scheme := runtime.NewScheme()
		Expect(corev1.AddToScheme(scheme)).To(Succeed())
		kube := fake.NewClientBuilder().WithScheme(scheme).Build()
		cache := kanidmclient.NewCache(kube)

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = cache.Get(context.Background(), "default", "my-kanidm", kanidmclient.UserAdmin)
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			Expect(err).To(HaveOccurred())
		}
	})

	It("Remove is safe to call on an empty cache", func() {
		scheme := runtime.NewScheme()
		Expect(corev1.AddToScheme(scheme)).To(Succeed())
		kube := fake.NewClientBuilder().WithScheme(scheme).Build()
		cache := kanidmclient.NewCache(kube)
		cache.Remove("default", "my-kanidm")
	})
})
