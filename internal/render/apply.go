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

package render

import (
	"context"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
)

// FieldOwner is the server-side apply field manager used for every object this
// operator renders: a single field manager shared by every controller.
const FieldOwner = "kaniop"

// Apply server-side applies obj, setting owner as its controller owner
// reference first. This is deliberately thin (no adoption/update/delete
// policy matrix): kaniop's owned-object set is small and fixed per
// controller, so every object is simply force-applied under this operator's
// field manager.
func Apply(ctx context.Context, cl client.Client, owner client.Object, obj client.Object, scheme *runtime.Scheme) error {
	if err := controllerutil.SetControllerReference(owner, obj, scheme); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKube, "set controller reference")
	}
	patchOpts := []client.PatchOption{client.ForceOwnership, client.FieldOwner(FieldOwner)}
	if err := cl.Patch(ctx, obj, client.Apply, patchOpts...); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKube, "server-side apply")
	}
	return nil
}
