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

package oauth2

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/kanidmclient"
)

func TestOAuth2(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "oauth2 package tests")
}

func testClient(origin string, redirects []string) *v1beta1.KanidmOAuth2Client {
	return &v1beta1.KanidmOAuth2Client{Spec: v1beta1.KanidmOAuth2ClientSpec{
		DisplayName: "app", Origin: origin, RedirectURL: redirects,
	}}
}

var _ = Describe("testing: reconcile.go attribute comparison", func() {
	DescribeTable("testing: oauth2AttributesMatch()",
		func(oc *v1beta1.KanidmOAuth2Client, entry *kanidmclient.Entry, expected bool) {
			Expect(oauth2AttributesMatch(oc, observeOAuth2Client(entry))).To(Equal(expected))
		},
		Entry("origin drift is detected",
			testClient("https://app.example.com", nil),
			&kanidmclient.Entry{Attrs: map[string][]string{
				"displayname": {"app"}, "oauth2_rs_origin": {"https://other.example.com"},
			}},
			false),
		Entry("matching core attrs with flags unset both sides",
			testClient("https://app.example.com", nil),
			&kanidmclient.Entry{Attrs: map[string][]string{
				"displayname": {"app"}, "oauth2_rs_origin": {"https://app.example.com"},
			}},
			true),
		Entry("pkce flag drift is detected",
			&v1beta1.KanidmOAuth2Client{Spec: v1beta1.KanidmOAuth2ClientSpec{
				DisplayName: "app", Origin: "https://app.example.com", AllowInsecureClientDisablePkce: true,
			}},
			&kanidmclient.Entry{Attrs: map[string][]string{
				"displayname": {"app"}, "oauth2_rs_origin": {"https://app.example.com"},
			}},
			false),
	)

	DescribeTable("testing: oauth2RedirectURLMatch()",
		func(oc *v1beta1.KanidmOAuth2Client, entry *kanidmclient.Entry, expected bool) {
			Expect(oauth2RedirectURLMatch(oc, observeOAuth2Client(entry))).To(Equal(expected))
		},
		Entry("no redirect urls in spec is always a match", testClient("https://app.example.com", nil), &kanidmclient.Entry{}, true),
		Entry("missing observed redirect url is not a match",
			testClient("https://app.example.com", []string{"https://app.example.com/cb"}),
			&kanidmclient.Entry{}, false),
		Entry("matching redirect url set",
			testClient("https://app.example.com", []string{"https://app.example.com/cb"}),
			&kanidmclient.Entry{Attrs: map[string][]string{"oauth2_rs_origin_landing": {"https://app.example.com/cb"}}},
			true),
	)

	DescribeTable("testing: oauth2Valid()",
		func(oc *v1beta1.KanidmOAuth2Client, expected bool) {
			valid, _ := oauth2Valid(oc)
			Expect(valid).To(Equal(expected))
		},
		Entry("well-formed origin and redirect urls", testClient("https://app.example.com", []string{"https://app.example.com/cb"}), true),
		Entry("malformed origin", testClient("not-a-url", nil), false),
		Entry("malformed redirect url", testClient("https://app.example.com", []string{"not-a-url"}), false),
	)

	It("computes a stable scope map fingerprint regardless of input ordering", func() {
		a := &v1beta1.KanidmOAuth2Client{Spec: v1beta1.KanidmOAuth2ClientSpec{
			ScopeMap: []v1beta1.ScopeMap{{Group: "admins", Scopes: []string{"read", "write"}}, {Group: "users", Scopes: []string{"read"}}},
		}}
		b := &v1beta1.KanidmOAuth2Client{Spec: v1beta1.KanidmOAuth2ClientSpec{
			ScopeMap: []v1beta1.ScopeMap{{Group: "users", Scopes: []string{"read"}}, {Group: "admins", Scopes: []string{"write", "read"}}},
		}}
		Expect(scopeMapFingerprint(a)).To(Equal(scopeMapFingerprint(b)))
	})

	It("changes the scope map fingerprint when scopes actually differ", func() {
		a := &v1beta1.KanidmOAuth2Client{Spec: v1beta1.KanidmOAuth2ClientSpec{
			ScopeMap: []v1beta1.ScopeMap{{Group: "admins", Scopes: []string{"read"}}},
		}}
		b := &v1beta1.KanidmOAuth2Client{Spec: v1beta1.KanidmOAuth2ClientSpec{
			ScopeMap: []v1beta1.ScopeMap{{Group: "admins", Scopes: []string{"read", "write"}}},
		}}
		Expect(scopeMapFingerprint(a)).ToNot(Equal(scopeMapFingerprint(b)))
	})
})
