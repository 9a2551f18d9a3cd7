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

package k8sutil_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
)

type fakeStatus struct {
	conditions []metav1.Condition
}

func (f *fakeStatus) GetConditions() *[]metav1.Condition {
	return &f.conditions
}

var _ = Describe("testing: conditions.go", func() {
	var obj *fakeStatus

	BeforeEach(func() {
		obj = &fakeStatus{}
	})

	It("sets a new condition with a fresh transition time", func() {
		k8sutil.SetCondition(obj, "Ready", metav1.ConditionTrue, "Available", "all good", 1)
		Expect(obj.conditions).To(HaveLen(1))
		Expect(obj.conditions[0].Status).To(Equal(metav1.ConditionTrue))
		Expect(obj.conditions[0].LastTransitionTime.IsZero()).To(BeFalse())
	})

	It("does not change LastTransitionTime when status is unchanged", func() {
		k8sutil.SetCondition(obj, "Ready", metav1.ConditionTrue, "Available", "all good", 1)
		first := obj.conditions[0].LastTransitionTime

		k8sutil.SetCondition(obj, "Ready", metav1.ConditionTrue, "StillAvailable", "still good", 2)
		Expect(obj.conditions[0].LastTransitionTime).To(Equal(first))
		Expect(obj.conditions[0].Reason).To(Equal("StillAvailable"))
		Expect(obj.conditions[0].ObservedGeneration).To(Equal(int64(2)))
	})

	It("bumps LastTransitionTime when status flips", func() {
		k8sutil.SetCondition(obj, "Ready", metav1.ConditionFalse, "Unavailable", "not yet", 1)
		first := obj.conditions[0].LastTransitionTime

		k8sutil.SetCondition(obj, "Ready", metav1.ConditionTrue, "Available", "now good", 2)
		Expect(obj.conditions[0].LastTransitionTime.Before(&first)).To(BeFalse())
	})

	It("removes a condition by type", func() {
		k8sutil.SetCondition(obj, "Ready", metav1.ConditionTrue, "Available", "all good", 1)
		k8sutil.SetCondition(obj, "Progressing", metav1.ConditionFalse, "Done", "done", 1)
		k8sutil.RemoveCondition(obj, "Progressing")
		Expect(obj.conditions).To(HaveLen(1))
		Expect(obj.conditions[0].Type).To(Equal("Ready"))
	})

	Describe("testing: AllConditionsTrue()", func() {
		It("is false when there are no conditions", func() {
			Expect(k8sutil.AllConditionsTrue(obj)).To(BeFalse())
		})

		It("is false when any condition is not True", func() {
			k8sutil.SetCondition(obj, "Ready", metav1.ConditionTrue, "Available", "ok", 1)
			k8sutil.SetCondition(obj, "Progressing", metav1.ConditionFalse, "Done", "done", 1)
			Expect(k8sutil.AllConditionsTrue(obj)).To(BeFalse())
		})

		It("is true when every condition is True", func() {
			k8sutil.SetCondition(obj, "Ready", metav1.ConditionTrue, "Available", "ok", 1)
			k8sutil.SetCondition(obj, "Synced", metav1.ConditionTrue, "Synced", "ok", 1)
			Expect(k8sutil.AllConditionsTrue(obj)).To(BeTrue())
		})
	})

	Describe("testing: IsConditionTrue()", func() {
		It("is false when the condition is absent", func() {
			Expect(k8sutil.IsConditionTrue(obj, "Ready")).To(BeFalse())
		})

		It("is true only when the condition is present and True", func() {
			k8sutil.SetCondition(obj, "Ready", metav1.ConditionFalse, "NotYet", "", 1)
			Expect(k8sutil.IsConditionTrue(obj, "Ready")).To(BeFalse())
			k8sutil.SetCondition(obj, "Ready", metav1.ConditionTrue, "Available", "", 2)
			Expect(k8sutil.IsConditionTrue(obj, "Ready")).To(BeTrue())
		})
	})
})
