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
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	kaniopv1 "github.com/pando85/kaniop-sub001/api/v1"
	"github.com/pando85/kaniop-sub001/internal/render"
)

func baseKanidm() *kaniopv1.Kanidm {
	return &kaniopv1.Kanidm{
		ObjectMeta: metav1.ObjectMeta{Name: "idm", Namespace: "default"},
		Spec: kaniopv1.KanidmSpec{
			Domain: "idm.example.com",
			Image:  "kanidm/server:1.4",
			ReplicaGroups: []kaniopv1.ReplicaGroup{
				{Name: "write", Replicas: 1, Role: kaniopv1.ReplicaRoleWrite},
			},
		},
	}
}

var _ = Describe("testing: kanidm.go", func() {
	Describe("StatefulSet", func() {
		It("names a replica group's StatefulSet with the group suffix", func() {
			kanidm := baseKanidm()
			sts := render.StatefulSet("kanidm", kanidm, kanidm.Spec.ReplicaGroups[0])
			Expect(sts.Name).To(Equal("idm-write"))
			Expect(sts.Namespace).To(Equal("default"))
		})

		It("defaults to an EmptyDir volume when storage type is unset", func() {
			kanidm := baseKanidm()
			sts := render.StatefulSet("kanidm", kanidm, kanidm.Spec.ReplicaGroups[0])
			Expect(sts.Spec.VolumeClaimTemplates).To(BeEmpty())
			Expect(sts.Spec.Template.Spec.Volumes).To(HaveLen(1))
			Expect(sts.Spec.Template.Spec.Volumes[0].EmptyDir).ToNot(BeNil())
		})

		It("renders a VolumeClaimTemplate when storage type is PersistentVolumeClaim", func() {
			kanidm := baseKanidm()
			kanidm.Spec.Storage = kaniopv1.StorageSpec{Type: kaniopv1.StorageTypePVC}
			sts := render.StatefulSet("kanidm", kanidm, kanidm.Spec.ReplicaGroups[0])
			Expect(sts.Spec.VolumeClaimTemplates).To(HaveLen(1))
			Expect(sts.Spec.Template.Spec.Volumes).To(BeEmpty())
		})

		It("renders an Ephemeral volume when storage type is Ephemeral", func() {
			kanidm := baseKanidm()
			kanidm.Spec.Storage = kaniopv1.StorageSpec{Type: kaniopv1.StorageTypeEphemeral}
			sts := render.StatefulSet("kanidm", kanidm, kanidm.Spec.ReplicaGroups[0])
			Expect(sts.Spec.Template.Spec.Volumes).To(HaveLen(1))
			Expect(sts.Spec.Template.Spec.Volumes[0].Ephemeral).ToNot(BeNil())
		})

		It("merges extra containers into the kanidmd container set", func() {
			kanidm := baseKanidm()
			kanidm.Spec.ExtraContainers = []corev1.Container{{Name: "exporter"}}
			sts := render.StatefulSet("kanidm", kanidm, kanidm.Spec.ReplicaGroups[0])
			Expect(sts.Spec.Template.Spec.Containers).To(HaveLen(2))
		})
	})

	Describe("Service", func() {
		It("defaults to ClusterIP when no type is set", func() {
			kanidm := baseKanidm()
			svc := render.Service("kanidm", kanidm, kanidm.Spec.ReplicaGroups[0])
			Expect(svc.Spec.Type).To(Equal(corev1.ServiceTypeClusterIP))
			Expect(svc.Spec.Ports).To(HaveLen(2))
		})

		It("honors an explicit Service type", func() {
			kanidm := baseKanidm()
			kanidm.Spec.Service.Type = corev1.ServiceTypeLoadBalancer
			svc := render.Service("kanidm", kanidm, kanidm.Spec.ReplicaGroups[0])
			Expect(svc.Spec.Type).To(Equal(corev1.ServiceTypeLoadBalancer))
		})
	})

	Describe("Ingress", func() {
		It("returns nil when ingress is not enabled", func() {
			kanidm := baseKanidm()
			Expect(render.Ingress("kanidm", kanidm)).To(BeNil())
		})

		It("renders the domain as the primary TLS host when enabled", func() {
			kanidm := baseKanidm()
			kanidm.Spec.Ingress.Enabled = true
			ing := render.Ingress("kanidm", kanidm)
			Expect(ing).ToNot(BeNil())
			Expect(ing.Spec.TLS).To(HaveLen(1))
			Expect(ing.Spec.TLS[0].Hosts).To(ContainElement("idm.example.com"))
			Expect(ing.Spec.Rules).To(HaveLen(1))
			Expect(ing.Spec.Rules[0].Host).To(Equal("idm.example.com"))
		})

		It("appends ExtraTLSHosts alongside the domain", func() {
			kanidm := baseKanidm()
			kanidm.Spec.Ingress.Enabled = true
			kanidm.Spec.Ingress.ExtraTLSHosts = []string{"alt.example.com"}
			ing := render.Ingress("kanidm", kanidm)
			Expect(ing.Spec.TLS[0].Hosts).To(ConsistOf("idm.example.com", "alt.example.com"))
		})
	})
})
