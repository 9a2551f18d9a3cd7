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

package rotation_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/pando85/kaniop-sub001/internal/rotation"
)

func TestRotation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "rotation package tests")
}

func secretWithLastRotation(when time.Time) *corev1.Secret {
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Annotations: map[string]string{
				rotation.AnnotationLastRotationTime: when.Format(time.RFC3339),
			},
		},
	}
}

var _ = Describe("testing: rotation.go", func() {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)

	DescribeTable("testing: NeedsRotation()",
		func(secret *corev1.Secret, enabled bool, periodDays int32, expected bool) {
			Expect(rotation.NeedsRotation(secret, enabled, periodDays, now)).To(Equal(expected))
		},
		Entry("disabled never needs rotation", &corev1.Secret{}, false, 7, false),
		Entry("zero period never needs rotation", &corev1.Secret{}, true, 0, false),
		Entry("negative period never needs rotation", &corev1.Secret{}, true, int32(-1), false),
		Entry("no last-rotation annotation is always due", &corev1.Secret{}, true, 7, true),
		Entry("nil secret is always due", (*corev1.Secret)(nil), true, 7, true),
		Entry("rotated recently is not due",
			secretWithLastRotation(now.Add(-1*time.Hour)), true, int32(7), false),
		Entry("rotated exactly at the period boundary is due",
			secretWithLastRotation(now.Add(-7*24*time.Hour)), true, int32(7), true),
		Entry("rotated long ago is due",
			secretWithLastRotation(now.Add(-30*24*time.Hour)), true, int32(7), true),
		Entry("unparseable annotation is treated as never rotated",
			&corev1.Secret{ObjectMeta: metav1.ObjectMeta{Annotations: map[string]string{
				rotation.AnnotationLastRotationTime: "not-a-time",
			}}}, true, int32(7), true),
	)

	It("records the rotation trio on Annotate", func() {
		secret := &corev1.Secret{}
		rotation.Annotate(secret, true, 7, now)
		Expect(secret.Annotations[rotation.AnnotationEnabled]).To(Equal("true"))
		Expect(secret.Annotations[rotation.AnnotationPeriodDays]).To(Equal("7"))
		Expect(secret.Annotations[rotation.AnnotationLastRotationTime]).To(Equal(now.Format(time.RFC3339)))
	})

	It("clears the enabled annotation when disabled", func() {
		secret := &corev1.Secret{}
		rotation.Annotate(secret, false, 7, now)
		_, ok := secret.Annotations[rotation.AnnotationEnabled]
		Expect(ok).To(BeFalse())
	})

	It("round-trips through NeedsRotation after Annotate", func() {
		secret := &corev1.Secret{}
		rotation.Annotate(secret, true, 7, now)
		Expect(rotation.NeedsRotation(secret, true, 7, now.Add(time.Minute))).To(BeFalse())
		Expect(rotation.NeedsRotation(secret, true, 7, now.Add(8*24*time.Hour))).To(BeTrue())
	})
})
