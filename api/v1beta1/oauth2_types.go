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

package v1beta1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ClaimJoinStrategy controls how multi-valued claim values are flattened.
// +kubebuilder:validation:Enum=Array;ssv;csv
type ClaimJoinStrategy string

const (
	ClaimJoinArray ClaimJoinStrategy = "Array"
	ClaimJoinSSV   ClaimJoinStrategy = "ssv"
	ClaimJoinCSV   ClaimJoinStrategy = "csv"
)

// ClaimMap maps a claim name to group-keyed values and a join strategy.
type ClaimMap struct {
	// Name of the claim.
	Name string `json:"name"`
	// JoinStrategy controls how the per-group values list is flattened into the claim value.
	// +kubebuilder:default=Array
	JoinStrategy ClaimJoinStrategy `json:"joinStrategy,omitempty"`
	// ValuesByGroup maps a group name to the claim values granted to members of that group.
	ValuesByGroup map[string][]string `json:"valuesByGroup,omitempty"`
}

// ScopeMap maps a group name to the OAuth2 scopes granted to its members.
type ScopeMap struct {
	Group  string   `json:"group"`
	Scopes []string `json:"scopes"`
}

// KanidmOAuth2ClientSpec is the desired state of a Kanidm OAuth2 client.
type KanidmOAuth2ClientSpec struct {
	KanidmRef    KanidmRef `json:"kanidmRef"`
	KanidmName   *string   `json:"kanidmName,omitempty"`
	DisplayName  string    `json:"displayName"`
	Origin       string    `json:"origin"`
	RedirectURL  []string  `json:"redirectUrl,omitempty"`
	Public       bool      `json:"public,omitempty"`
	ScopeMap     []ScopeMap `json:"scopeMap,omitempty"`
	SupScopeMap  []ScopeMap `json:"supScopeMap,omitempty"`
	ClaimMap     []ClaimMap `json:"claimMap,omitempty"`
	// AllowInsecureClientDisablePkce disables PKCE; defaults to false (PKCE required).
	AllowInsecureClientDisablePkce bool `json:"allowInsecureClientDisablePkce,omitempty"`
	// EnableLocalhostRedirects allows http://localhost redirect URLs.
	EnableLocalhostRedirects bool `json:"enableLocalhostRedirects,omitempty"`
	// EnableLegacyCrypto enables RS256 token signing for legacy clients.
	EnableLegacyCrypto bool `json:"enableLegacyCrypto,omitempty"`
	// PreferShortUsername uses the short (non-SPN) username as the subject claim.
	PreferShortUsername bool `json:"preferShortUsername,omitempty"`
	// ImageURL, when set, is downloaded and uploaded as the client's display image.
	ImageURL *string `json:"imageUrl,omitempty"`
}

func (s KanidmOAuth2ClientSpec) GetKanidmRef() KanidmRef {
	return s.KanidmRef
}

// KanidmOAuth2ClientStatus is the observed state of a Kanidm OAuth2 client.
type KanidmOAuth2ClientStatus struct {
	ObservedGeneration int64              `json:"observedGeneration,omitempty"`
	Conditions         []metav1.Condition `json:"conditions,omitempty"`
	// ImageFingerprint is the SHA-256 hex digest of the last image uploaded to Kanidm,
	// used to avoid redundant uploads.
	ImageFingerprint string `json:"imageFingerprint,omitempty"`
	// ScopeMapFingerprint is the SHA-256 hex digest of the last scope/sup-scope/claim
	// map state pushed to Kanidm, used to skip redundant sub-resource writes.
	ScopeMapFingerprint string `json:"scopeMapFingerprint,omitempty"`
}

// KanidmOAuth2Client is the Schema for the kanidmoauth2clients API.
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Kanidm",type=string,JSONPath=`.spec.kanidmRef.name`
// +kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`
type KanidmOAuth2Client struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   KanidmOAuth2ClientSpec   `json:"spec,omitempty"`
	Status KanidmOAuth2ClientStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type KanidmOAuth2ClientList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []KanidmOAuth2Client `json:"items"`
}

func (in *KanidmOAuth2Client) GetKanidmRef() KanidmRef {
	return in.Spec.GetKanidmRef()
}

func (in *KanidmOAuth2Client) KanidmEntityName() string {
	if in.Spec.KanidmName != nil && *in.Spec.KanidmName != "" {
		return *in.Spec.KanidmName
	}
	return in.Name
}

func (in *KanidmOAuth2Client) GetConditions() *[]metav1.Condition {
	return &in.Status.Conditions
}
