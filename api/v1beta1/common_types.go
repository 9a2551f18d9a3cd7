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

// Package v1beta1 contains the Kanidm domain-object custom resources, API group
// kaniop.rs/v1beta1.
package v1beta1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// KanidmRef points at the Kanidm cluster a domain object belongs to.
// Immutable after creation: enforced by a CRD validation rule
// (`+kubebuilder:validation:XValidation` generated from this struct). The
// admission webhook (see internal/webhook) checks CREATE requests only and
// does not inspect updates of this field.
// +kubebuilder:validation:XValidation:rule="self == oldSelf",message="Value is immutable"
type KanidmRef struct {
	// Name of the Kanidm cluster.
	// +kubebuilder:validation:Required
	Name string `json:"name"`
	// Namespace of the Kanidm cluster; defaults to the referring object's namespace.
	Namespace string `json:"namespace,omitempty"`
}

// ValidFrom/Expire windows shared by person and service accounts.
type ValidityWindow struct {
	ValidFrom *metav1.Time `json:"validFrom,omitempty"`
	Expire    *metav1.Time `json:"expire,omitempty"`
}

// KanidmAccountPosixAttributes is the canonical POSIX attribute shape used for
// Group and ServiceAccount kinds.
type KanidmAccountPosixAttributes struct {
	// Gidnumber is the POSIX gid; for ServiceAccount this doubles as uidnumber.
	Gidnumber *int64 `json:"gidnumber,omitempty"`
}

// KanidmPersonPosixAttributes is the canonical POSIX attribute shape used for
// PersonAccount.
type KanidmPersonPosixAttributes struct {
	Gidnumber *int64  `json:"gidnumber,omitempty"`
	Loginshell *string `json:"loginshell,omitempty"`
	Homedirectory *string `json:"homedirectory,omitempty"`
}

// HasKanidmRef is implemented by every domain CR that targets a Kanidm
// instance by reference.
type HasKanidmRef interface {
	GetKanidmRef() KanidmRef
	GetNamespace() string
}

// KanidmEntityNamed is the second capability interface: it yields the name under
// which the object exists as an entity inside Kanidm itself, which is either an
// explicit override field or the object's own metadata name.
type KanidmEntityNamed interface {
	KanidmEntityName() string
}
