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

package render_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/pando85/kaniop-sub001/internal/render"
)

var _ = Describe("testing: apply.go", func() {
	It("sets the owner's controller reference and applies the object", func() {
		scheme := runtime.NewScheme()
		Expect(corev1.AddToScheme(scheme)).To(Succeed())

		owner := &corev1.ConfigMap{
			TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
			ObjectMeta: metav1.ObjectMeta{Name: "owner", Namespace: "default", UID: types.UID("owner-uid")},
		}
		kube := fake.NewClientBuilder().WithScheme(scheme).WithObjects(owner).Build()

		target := &corev1.ConfigMap{
			TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
			ObjectMeta: metav1.ObjectMeta{Name: "rendered", Namespace: "default"},
			Data:       map[string]string{"key": "value"},
		}

		err := render.Apply(context.Background(), kube, owner, target, scheme)
		Expect(err).ToNot(HaveOccurred())

		got := &corev1.ConfigMap{}
		Expect(kube.Get(context.Background(), client.ObjectKey{Namespace: "default", Name: "rendered"}, got)).To(Succeed())
		Expect(got.OwnerReferences).To(HaveLen(1))
		Expect(got.OwnerReferences[0].Name).To(Equal("owner"))
		Expect(got.OwnerReferences[0].Controller).ToNot(BeNil())
		Expect(*got.OwnerReferences[0].Controller).To(BeTrue())
		Expect(got.Data).To(HaveKeyWithValue("key", "value"))
	})
})
