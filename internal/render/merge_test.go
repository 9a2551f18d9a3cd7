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
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"

	"github.com/pando85/kaniop-sub001/internal/render"
)

func TestRender(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "render package tests")
}

var _ = Describe("testing: merge.go", func() {
	It("appends an extra container whose name is not in base", func() {
		base := []corev1.Container{{Name: "kanidmd", Image: "kanidm:1"}}
		extra := []corev1.Container{{Name: "sidecar", Image: "sidecar:1"}}
		out := render.MergeContainersByName(base, extra)
		Expect(out).To(HaveLen(2))
		Expect(out[0].Name).To(Equal("kanidmd"))
		Expect(out[1].Name).To(Equal("sidecar"))
	})

	It("replaces a base container wholesale when extra shares its name", func() {
		base := []corev1.Container{{Name: "kanidmd", Image: "kanidm:1"}}
		extra := []corev1.Container{{Name: "kanidmd", Image: "kanidm:2"}}
		out := render.MergeContainersByName(base, extra)
		Expect(out).To(HaveLen(1))
		Expect(out[0].Image).To(Equal("kanidm:2"))
	})

	It("preserves base order for untouched entries", func() {
		base := []corev1.Container{{Name: "a"}, {Name: "b"}, {Name: "c"}}
		extra := []corev1.Container{{Name: "b", Image: "b:2"}}
		out := render.MergeContainersByName(base, extra)
		Expect(out).To(HaveLen(3))
		Expect(out[0].Name).To(Equal("a"))
		Expect(out[1].Name).To(Equal("b"))
		Expect(out[1].Image).To(Equal("b:2"))
		Expect(out[2].Name).To(Equal("c"))
	})

	It("handles a nil base by appending every extra entry", func() {
		extra := []corev1.Container{{Name: "init-db"}}
		out := render.MergeContainersByName(nil, extra)
		Expect(out).To(HaveLen(1))
		Expect(out[0].Name).To(Equal("init-db"))
	})

	It("leaves base untouched when extra is empty", func() {
		base := []corev1.Container{{Name: "a"}}
		out := render.MergeContainersByName(base, nil)
		Expect(out).To(Equal(base))
	})
})
