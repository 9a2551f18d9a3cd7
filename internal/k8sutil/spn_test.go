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

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
)

var _ = Describe("testing: spn.go", func() {
	DescribeTable("testing: SPNMatches()",
		func(name, spn string, expected bool) {
			Expect(k8sutil.SPNMatches(name, spn)).To(Equal(expected))
		},
		Entry("exact match", "alice", "alice", true),
		Entry("case insensitive exact match", "Alice", "alice", true),
		Entry("local part match", "alice", "alice@example.com", true),
		Entry("case insensitive local part match", "ALICE", "alice@EXAMPLE.com", true),
		Entry("no match", "alice", "bob@example.com", false),
		Entry("empty spn", "alice", "", false),
		Entry("spn with no @ and different name", "alice", "bob", false),
		Entry("name shorter than local part", "ali", "alice@example.com", false),
	)

	DescribeTable("testing: MembersMatch()",
		func(members, observed []string, expected bool) {
			Expect(k8sutil.MembersMatch(members, observed)).To(Equal(expected))
		},
		Entry("both empty", []string{}, []string{}, true),
		Entry("exact set match", []string{"alice", "bob"},
			[]string{"alice@example.com", "bob@example.com"}, true),
		Entry("observed superset still matches", []string{"alice"},
			[]string{"alice@example.com", "bob@example.com"}, true),
		Entry("observed shorter than desired never matches", []string{"alice", "bob"},
			[]string{"alice@example.com"}, false),
		Entry("missing member fails", []string{"alice", "carol"},
			[]string{"alice@example.com", "bob@example.com"}, false),
		Entry("order independent", []string{"bob", "alice"},
			[]string{"alice@example.com", "bob@example.com"}, true),
	)
})
