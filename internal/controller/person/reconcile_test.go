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

package person

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/kanidmclient"
)

func TestPerson(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "person package tests")
}

func legalName(s string) *string { return &s }
func gidnumber(n int64) *int64   { return &n }

var _ = Describe("testing: reconcile.go attribute comparison", func() {
	DescribeTable("testing: personAttributesMatch()",
		func(person *v1beta1.KanidmPersonAccount, entry *kanidmclient.Entry, expected bool) {
			Expect(personAttributesMatch(person, observePerson(entry))).To(Equal(expected))
		},
		Entry("displayname is always compared",
			&v1beta1.KanidmPersonAccount{Spec: v1beta1.KanidmPersonAccountSpec{DisplayName: "Alice"}},
			&kanidmclient.Entry{Attrs: map[string][]string{"displayname": {"Bob"}}},
			false),
		Entry("matching displayname and no other spec fields set",
			&v1beta1.KanidmPersonAccount{Spec: v1beta1.KanidmPersonAccountSpec{DisplayName: "Alice"}},
			&kanidmclient.Entry{Attrs: map[string][]string{"displayname": {"Alice"}}},
			true),
		Entry("legalname drift is detected",
			&v1beta1.KanidmPersonAccount{Spec: v1beta1.KanidmPersonAccountSpec{
				DisplayName: "Alice", LegalName: legalName("Alice Smith"),
			}},
			&kanidmclient.Entry{Attrs: map[string][]string{"displayname": {"Alice"}, "legalname": {"Alice Jones"}}},
			false),
		Entry("unset posix is not compared",
			&v1beta1.KanidmPersonAccount{Spec: v1beta1.KanidmPersonAccountSpec{DisplayName: "Alice"}},
			&kanidmclient.Entry{Attrs: map[string][]string{"displayname": {"Alice"}, "gidnumber": {"1000"}}},
			true),
		Entry("posix gidnumber drift is detected",
			&v1beta1.KanidmPersonAccount{Spec: v1beta1.KanidmPersonAccountSpec{
				DisplayName: "Alice",
				Posix:       &v1beta1.KanidmPersonPosixAttributes{Gidnumber: gidnumber(2000)},
			}},
			&kanidmclient.Entry{Attrs: map[string][]string{"displayname": {"Alice"}, "gidnumber": {"1000"}}},
			false),
	)
})
