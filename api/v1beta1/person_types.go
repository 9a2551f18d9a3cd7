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

// KanidmPersonAccountSpec is the desired state of a Kanidm person account.
type KanidmPersonAccountSpec struct {
	KanidmRef   KanidmRef `json:"kanidmRef"`
	KanidmName  *string   `json:"kanidmName,omitempty"`
	DisplayName string    `json:"displayName"`
	Mail        []string  `json:"mail,omitempty"`
	LegalName   *string   `json:"legalName,omitempty"`
	ValidityWindow `json:",inline"`
	Posix *KanidmPersonPosixAttributes `json:"posix,omitempty"`
}

func (s KanidmPersonAccountSpec) GetKanidmRef() KanidmRef {
	return s.KanidmRef
}

// KanidmPersonAccountStatus is the observed state of a Kanidm person account.
type KanidmPersonAccountStatus struct {
	ObservedGeneration int64              `json:"observedGeneration,omitempty"`
	Conditions         []metav1.Condition `json:"conditions,omitempty"`
}

// KanidmPersonAccount is the Schema for the kanidmpersonaccounts API.
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Kanidm",type=string,JSONPath=`.spec.kanidmRef.name`
// +kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`
type KanidmPersonAccount struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   KanidmPersonAccountSpec   `json:"spec,omitempty"`
	Status KanidmPersonAccountStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type KanidmPersonAccountList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []KanidmPersonAccount `json:"items"`
}

func (in *KanidmPersonAccount) GetKanidmRef() KanidmRef {
	return in.Spec.GetKanidmRef()
}

func (in *KanidmPersonAccount) KanidmEntityName() string {
	if in.Spec.KanidmName != nil && *in.Spec.KanidmName != "" {
		return *in.Spec.KanidmName
	}
	return in.Name
}

func (in *KanidmPersonAccount) GetConditions() *[]metav1.Condition {
	return &in.Status.Conditions
}
