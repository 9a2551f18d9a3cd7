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

package kanidm

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestKanidmVersion(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "kanidm controller version tests")
}

var _ = Describe("testing: version.go", func() {
	DescribeTable("testing: CheckUpgradeCompatible()",
		func(image string, wantErr bool) {
			err := CheckUpgradeCompatible(image)
			if wantErr {
				Expect(err).To(HaveOccurred())
			} else {
				Expect(err).ToNot(HaveOccurred())
			}
		},
		Entry("equal to client version is compatible", "kanidm/server:1.8.6", false),
		Entry("older minor within same major is compatible", "kanidm/server:1.8.0", false),
		Entry("older minor, older patch is compatible", "kanidm/server:1.7.9", false),
		Entry("newer major is not compatible", "kanidm/server:11.9.0", true),
		Entry("newer minor within same major is not compatible", "kanidm/server:1.9.0", true),
		Entry("non-semver tags are always treated as compatible", "kanidm/server:latest", false),
		Entry("missing tag is always treated as compatible", "kanidm/server", false),
	)
})
