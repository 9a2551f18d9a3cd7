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

package serviceaccount

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/kanidmclient"
)

func TestServiceAccount(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "serviceaccount package tests")
}

func gidnumber(n int64) *int64 { return &n }

var _ = Describe("testing: reconcile.go attribute comparison", func() {
	DescribeTable("testing: serviceAccountAttributesMatch()",
		func(sa *v1beta1.KanidmServiceAccount, entryManagedBy string, entry *kanidmclient.Entry, expected bool) {
			Expect(serviceAccountAttributesMatch(sa, entryManagedBy, observeServiceAccount(entry))).To(Equal(expected))
		},
		Entry("displayname is always compared",
			&v1beta1.KanidmServiceAccount{Spec: v1beta1.KanidmServiceAccountSpec{DisplayName: "ci-bot"}},
			"",
			&kanidmclient.Entry{Attrs: map[string][]string{"displayname": {"other"}}},
			false),
		Entry("matching displayname with no other spec fields set",
			&v1beta1.KanidmServiceAccount{Spec: v1beta1.KanidmServiceAccountSpec{DisplayName: "ci-bot"}},
			"",
			&kanidmclient.Entry{Attrs: map[string][]string{"displayname": {"ci-bot"}}},
			true),
		Entry("entry_managed_by drift is detected",
			&v1beta1.KanidmServiceAccount{Spec: v1beta1.KanidmServiceAccountSpec{DisplayName: "ci-bot"}},
			"platform-team",
			&kanidmclient.Entry{Attrs: map[string][]string{"displayname": {"ci-bot"}, "entry_managed_by": {"other-team"}}},
			false),
		Entry("posix gidnumber drift is detected",
			&v1beta1.KanidmServiceAccount{Spec: v1beta1.KanidmServiceAccountSpec{
				DisplayName: "ci-bot",
				Posix:       &v1beta1.KanidmAccountPosixAttributes{Gidnumber: gidnumber(2000)},
			}},
			"",
			&kanidmclient.Entry{Attrs: map[string][]string{"displayname": {"ci-bot"}, "gidnumber": {"1000"}}},
			false),
	)
})
