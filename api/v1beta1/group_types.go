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

// KanidmGroupSpec is the desired state of a Kanidm group.
type KanidmGroupSpec struct {
	// KanidmRef points at the owning Kanidm cluster; immutable.
	KanidmRef KanidmRef `json:"kanidmRef"`
	// KanidmName overrides the Kanidm entity name; defaults to metadata.name.
	KanidmName *string `json:"kanidmName,omitempty"`
	// EntryManagedBy names the principal allowed to manage this entry's membership.
	EntryManagedBy *string `json:"entryManagedBy,omitempty"`
	// Mail is the group's mail address list; first entry is primary.
	Mail []string `json:"mail,omitempty"`
	// Members lists group members by name or SPN.
	Members []string `json:"members,omitempty"`
	// Posix attributes; when set, the group is posix-enabled in Kanidm.
	Posix *KanidmAccountPosixAttributes `json:"posix,omitempty"`
}

// GetKanidmRef implements HasKanidmRef.
func (s KanidmGroupSpec) GetKanidmRef() KanidmRef {
	return s.KanidmRef
}

// KanidmGroupStatus is the observed state of a Kanidm group.
type KanidmGroupStatus struct {
	ObservedGeneration int64              `json:"observedGeneration,omitempty"`
	Conditions         []metav1.Condition `json:"conditions,omitempty"`
}

// KanidmGroup is the Schema for the kanidmgroups API.
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Kanidm",type=string,JSONPath=`.spec.kanidmRef.name`
// +kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`
type KanidmGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   KanidmGroupSpec   `json:"spec,omitempty"`
	Status KanidmGroupStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type KanidmGroupList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []KanidmGroup `json:"items"`
}

// GetKanidmRef implements HasKanidmRef.
func (in *KanidmGroup) GetKanidmRef() KanidmRef {
	return in.Spec.GetKanidmRef()
}

// KanidmEntityName implements KanidmEntityNamed.
func (in *KanidmGroup) KanidmEntityName() string {
	if in.Spec.KanidmName != nil && *in.Spec.KanidmName != "" {
		return *in.Spec.KanidmName
	}
	return in.Name
}

// GetConditions implements k8sutil.ConditionedObject.
func (in *KanidmGroup) GetConditions() *[]metav1.Condition {
	return &in.Status.Conditions
}
