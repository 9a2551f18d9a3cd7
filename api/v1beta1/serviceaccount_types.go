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

// RotationConfig controls whether and how often issued credentials rotate;
// the reconciler projects these fields onto the `kaniop.rs/rotation-*`
// annotations on the managed Secret.
type RotationConfig struct {
	Enabled     bool  `json:"enabled,omitempty"`
	PeriodDays  int32 `json:"periodDays,omitempty"`
}

// APIToken is one entry of a service account's token list.
type APIToken struct {
	// Label keys this token's Secret and its rotation bookkeeping.
	Label string `json:"label"`
	// SecretName overrides the default `<saName>-<label>-api-token` Secret name.
	SecretName *string `json:"secretName,omitempty"`
	// ReadWrite grants a read-write token instead of the default read-only one.
	ReadWrite bool `json:"readWrite,omitempty"`
	// ExpiresAt is an optional RFC3339 token expiry.
	ExpiresAt *string `json:"expiresAt,omitempty"`
	// Rotation controls whether/how often this token is rotated.
	Rotation *RotationConfig `json:"rotation,omitempty"`
}

// KanidmServiceAccountSpec is the desired state of a Kanidm service account.
type KanidmServiceAccountSpec struct {
	KanidmRef      KanidmRef `json:"kanidmRef"`
	KanidmName     *string   `json:"kanidmName,omitempty"`
	DisplayName    string    `json:"displayName"`
	EntryManagedBy *string   `json:"entryManagedBy,omitempty"`
	Mail           []string  `json:"mail,omitempty"`
	ValidityWindow `json:",inline"`
	Posix *KanidmAccountPosixAttributes `json:"posix,omitempty"`
	// APITokens lists the tokens that should exist; tokens not listed are deleted.
	APITokens []APIToken `json:"apiTokens,omitempty"`
	// GenerateCredentials maintains a password Secret for this account.
	GenerateCredentials bool `json:"generateCredentials,omitempty"`
	// PasswordRotation controls rotation of the generated-password Secret.
	PasswordRotation *RotationConfig `json:"passwordRotation,omitempty"`
}

func (s KanidmServiceAccountSpec) GetKanidmRef() KanidmRef {
	return s.KanidmRef
}

// KanidmServiceAccountStatus is the observed state of a Kanidm service account.
type KanidmServiceAccountStatus struct {
	ObservedGeneration int64              `json:"observedGeneration,omitempty"`
	Conditions         []metav1.Condition `json:"conditions,omitempty"`
}

// KanidmServiceAccount is the Schema for the kanidmserviceaccounts API.
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Kanidm",type=string,JSONPath=`.spec.kanidmRef.name`
// +kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`
type KanidmServiceAccount struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   KanidmServiceAccountSpec   `json:"spec,omitempty"`
	Status KanidmServiceAccountStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type KanidmServiceAccountList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []KanidmServiceAccount `json:"items"`
}

func (in *KanidmServiceAccount) GetKanidmRef() KanidmRef {
	return in.Spec.GetKanidmRef()
}

func (in *KanidmServiceAccount) KanidmEntityName() string {
	if in.Spec.KanidmName != nil && *in.Spec.KanidmName != "" {
		return *in.Spec.KanidmName
	}
	return in.Name
}

func (in *KanidmServiceAccount) GetConditions() *[]metav1.Condition {
	return &in.Status.Conditions
}
