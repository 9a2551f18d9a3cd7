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

package webhook_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/store"
	"github.com/pando85/kaniop-sub001/internal/webhook"
)

func TestWebhook(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "webhook package tests")
}

func group(uid, namespace, name, kanidmName string) *v1beta1.KanidmGroup {
	g := &v1beta1.KanidmGroup{
		ObjectMeta: metav1.ObjectMeta{
			UID:       types.UID(uid),
			Namespace: namespace,
			Name:      name,
		},
		Spec: v1beta1.KanidmGroupSpec{
			KanidmRef: v1beta1.KanidmRef{Name: "my-kanidm"},
		},
	}
	if kanidmName != "" {
		g.Spec.KanidmName = &kanidmName
	}
	return g
}

var _ = Describe("testing: validator.go", func() {
	It("allows the only object targeting a (kanidmRef, entityName) tuple", func() {
		s := store.NewStore(nil)
		err := webhook.CheckDuplicate(group("uid-1", "default", "admins", ""), s)
		Expect(err).ToNot(HaveOccurred())
	})

	It("denies a second object with the same effective kanidmRef and entity name", func() {
		s := store.NewStore(nil)
		existing := group("uid-1", "default", "admins", "shared-entity")
		s.ApplyForTest(existing)

		incoming := group("uid-2", "default", "admins-duplicate", "shared-entity")
		err := webhook.CheckDuplicate(incoming, s)
		Expect(err).To(HaveOccurred())
	})

	It("allows two objects with the same entity name under different KanidmRefs", func() {
		s := store.NewStore(nil)
		existing := group("uid-1", "default", "admins", "shared-entity")
		existing.Spec.KanidmRef.Name = "kanidm-a"
		s.ApplyForTest(existing)

		incoming := group("uid-2", "default", "admins-2", "shared-entity")
		incoming.Spec.KanidmRef.Name = "kanidm-b"
		err := webhook.CheckDuplicate(incoming, s)
		Expect(err).ToNot(HaveOccurred())
	})

	It("never matches an object against itself (same UID)", func() {
		s := store.NewStore(nil)
		existing := group("uid-1", "default", "admins", "")
		s.ApplyForTest(existing)

		err := webhook.CheckDuplicate(existing, s)
		Expect(err).ToNot(HaveOccurred())
	})

	It("treats an explicit kanidmName override as the entity name, not the CR name", func() {
		s := store.NewStore(nil)
		existing := group("uid-1", "default", "admins", "custom-entity")
		s.ApplyForTest(existing)

		incoming := group("uid-2", "default", "other-cr-name", "custom-entity")
		err := webhook.CheckDuplicate(incoming, s)
		Expect(err).To(HaveOccurred())
	})
})
