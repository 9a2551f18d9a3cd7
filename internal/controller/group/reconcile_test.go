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

package group

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/kanidmclient"
)

func TestGroup(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "group package tests")
}

func gidnumber(n int64) *int64 { return &n }

var _ = Describe("testing: reconcile.go attribute comparison", func() {
	DescribeTable("testing: groupAttributesMatch()",
		func(group *v1beta1.KanidmGroup, entry *kanidmclient.Entry, expected bool) {
			Expect(groupAttributesMatch(group, observeGroup(entry))).To(Equal(expected))
		},
		Entry("empty spec always matches", &v1beta1.KanidmGroup{}, &kanidmclient.Entry{}, true),
		Entry("mail drift is detected",
			&v1beta1.KanidmGroup{Spec: v1beta1.KanidmGroupSpec{Mail: []string{"team@example.com"}}},
			&kanidmclient.Entry{Attrs: map[string][]string{"mail": {"other@example.com"}}},
			false),
		Entry("matching mail is in sync",
			&v1beta1.KanidmGroup{Spec: v1beta1.KanidmGroupSpec{Mail: []string{"team@example.com"}}},
			&kanidmclient.Entry{Attrs: map[string][]string{"mail": {"team@example.com"}}},
			true),
		Entry("members compared via SPN rules, bare name against SPN local part",
			&v1beta1.KanidmGroup{Spec: v1beta1.KanidmGroupSpec{Members: []string{"alice"}}},
			&kanidmclient.Entry{Attrs: map[string][]string{"member": {"alice@idm.example.com"}}},
			true),
		Entry("shorter observed member list than spec is never a match",
			&v1beta1.KanidmGroup{Spec: v1beta1.KanidmGroupSpec{Members: []string{"alice", "bob"}}},
			&kanidmclient.Entry{Attrs: map[string][]string{"member": {"alice@idm.example.com"}}},
			false),
		Entry("unset posix is not compared",
			&v1beta1.KanidmGroup{Spec: v1beta1.KanidmGroupSpec{}},
			&kanidmclient.Entry{Attrs: map[string][]string{"gidnumber": {"1000"}}},
			true),
		Entry("posix gidnumber drift is detected",
			&v1beta1.KanidmGroup{Spec: v1beta1.KanidmGroupSpec{
				Posix: &v1beta1.KanidmAccountPosixAttributes{Gidnumber: gidnumber(2000)},
			}},
			&kanidmclient.Entry{Attrs: map[string][]string{"gidnumber": {"1000"}}},
			false),
	)
})
