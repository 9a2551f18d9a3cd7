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
	goerrors "errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
)

var _ = Describe("testing: errors.go", func() {
	It("tags a new error with its Kind", func() {
		err := k8sutil.New(k8sutil.KindParse, "bad input")
		kind, ok := k8sutil.KindOf(err)
		Expect(ok).To(BeTrue())
		Expect(kind).To(Equal(k8sutil.KindParse))
		Expect(err.Error()).To(ContainSubstring("bad input"))
	})

	It("returns nil when wrapping a nil cause", func() {
		Expect(k8sutil.Wrap(nil, k8sutil.KindKube, "op")).To(BeNil())
		Expect(k8sutil.Wrapf(nil, k8sutil.KindKube, "op %d", 1)).To(BeNil())
	})

	It("preserves the wrapped cause through Unwrap", func() {
		cause := goerrors.New("connection refused")
		err := k8sutil.Wrap(cause, k8sutil.KindHTTP, "calling kanidm")
		Expect(goerrors.Is(err, cause)).To(BeTrue())
	})

	It("reports unknown Kind for a plain error", func() {
		_, ok := k8sutil.KindOf(goerrors.New("plain"))
		Expect(ok).To(BeFalse())
	})

	DescribeTable("testing: IsTransient()",
		func(kind k8sutil.Kind, expected bool) {
			err := k8sutil.New(kind, "boom")
			Expect(k8sutil.IsTransient(err)).To(Equal(expected))
		},
		Entry("missing object is transient", k8sutil.KindMissingObject, true),
		Entry("kube error is transient", k8sutil.KindKube, true),
		Entry("kube exec error is transient", k8sutil.KindKubeExec, true),
		Entry("parse error is not transient", k8sutil.KindParse, false),
		Entry("missing data is not transient", k8sutil.KindMissingData, false),
	)

	It("treats an untagged error as transient", func() {
		Expect(k8sutil.IsTransient(goerrors.New("plain"))).To(BeTrue())
	})
})
