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

// Package domain holds helpers shared by the four Kanidm domain-object
// controllers (group, person account, OAuth2 client, service account): each
// resolves a KanidmRef to a namespace and looks up an authenticated client
// through the shared cache, the same way for every kind, centralizing
// "which cluster does this object target" logic in one place shared by
// every domain reconciler.
package domain

import (
	"context"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/k8sutil"
	"github.com/pando85/kaniop-sub001/internal/kanidmclient"
)

// ResolveNamespace returns the namespace a KanidmRef points at, defaulting to
// the referring object's own namespace when unset.
func ResolveNamespace(ref v1beta1.KanidmRef, objectNamespace string) string {
	if ref.Namespace != "" {
		return ref.Namespace
	}
	return objectNamespace
}

// ClientFor resolves obj's KanidmRef and returns an authenticated IdmAdmin
// client for that cluster (IdmAdmin has the identity-management privileges
// needed to manage groups, persons, oauth2 clients, and service accounts;
// Admin is reserved for instance-level operations only).
func ClientFor(ctx context.Context, cache *kanidmclient.Cache, obj v1beta1.HasKanidmRef) (*kanidmclient.Client, error) {
	ref := obj.GetKanidmRef()
	ns := ResolveNamespace(ref, obj.GetNamespace())
	cl, err := cache.Get(ctx, ns, ref.Name, kanidmclient.UserIdmAdmin)
	if err != nil {
		return nil, k8sutil.Wrap(err, k8sutil.KindKanidmClient, "resolve kanidm client for "+ref.Name)
	}
	return cl, nil
}
