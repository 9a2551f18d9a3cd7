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

// Package webhook implements the TLS-terminating validating admission
// webhook: a generic duplicate-tuple check reused across all four domain
// kinds, backed by one shared reflector Store per kind, expressed through the
// same HasKanidmRef/KanidmEntityNamed capability interfaces the reconcilers
// already use (no type parameters).
package webhook

import (
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/store"
)

// Validatable is implemented by every domain kind the webhook inspects.
type Validatable interface {
	client.Object
	v1beta1.HasKanidmRef
	v1beta1.KanidmEntityNamed
}

// effectiveRef resolves the namespace a KanidmRef targets, defaulting to the
// referring object's own namespace when the ref leaves it unset.
func effectiveRef(obj v1beta1.HasKanidmRef) (name, namespace string) {
	ref := obj.GetKanidmRef()
	if ref.Namespace != "" {
		return ref.Name, ref.Namespace
	}
	return ref.Name, obj.GetNamespace()
}

// CheckDuplicate scans objStore for another object (by UID) sharing obj's
// effective (kanidmRef, entityName) tuple, denying admission on a match. Every
// Store passed in holds a single kind, so comparing via the Validatable
// interface alone (no per-kind type parameter) cannot cross-match kinds.
func CheckDuplicate(obj Validatable, objStore *store.Store) error {
	name, namespace := effectiveRef(obj)
	entityName := obj.KanidmEntityName()

	for _, candidate := range objStore.List() {
		other, ok := candidate.(Validatable)
		if !ok {
			continue
		}
		if other.GetUID() == obj.GetUID() {
			continue
		}
		otherName, otherNamespace := effectiveRef(other)
		if otherName != name || otherNamespace != namespace {
			continue
		}
		if other.KanidmEntityName() != entityName {
			continue
		}
		return fmt.Errorf("same kanidmRef and kanidmName already exists: %s/%s", other.GetNamespace(), other.GetName())
	}
	return nil
}
