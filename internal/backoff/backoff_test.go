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

package backoff_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pando85/kaniop-sub001/internal/backoff"
)

func TestBackoff(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "backoff package tests")
}

var _ = Describe("testing: backoff.go", func() {
	It("starts at BaseDelay for a new key", func() {
		table := backoff.NewTable()
		Expect(table.Next("key-1")).To(Equal(backoff.BaseDelay))
	})

	It("doubles on repeated failures", func() {
		table := backoff.NewTable()
		first := table.Next("key-1")
		second := table.Next("key-1")
		Expect(second).To(Equal(first * 2))
	})

	It("caps at MaxDelay after enough failures", func() {
		table := backoff.NewTable()
		delay := table.Next("key-1")
		for i := 0; i < 20; i++ {
			delay = table.Next("key-1")
		}
		Expect(delay).To(Equal(backoff.MaxDelay))
	})

	It("tracks distinct keys independently", func() {
		table := backoff.NewTable()
		table.Next("key-1")
		table.Next("key-1")
		firstKeySecondDelay := table.Next("key-1")

		freshKeyDelay := table.Next("key-2")
		Expect(freshKeyDelay).To(Equal(backoff.BaseDelay))
		Expect(firstKeySecondDelay).ToNot(Equal(freshKeyDelay))
	})

	It("resets a key's state back to BaseDelay", func() {
		table := backoff.NewTable()
		table.Next("key-1")
		table.Next("key-1")
		table.Reset("key-1")
		Expect(table.Next("key-1")).To(Equal(backoff.BaseDelay))
	})
})
