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

// Package group reconciles KanidmGroup objects: it
// creates the group entry in Kanidm if missing, reconciles its mail/posix
// attributes, and applies membership using the SPN comparison rules in
// internal/k8sutil. Shares the same create/update/condition skeleton as the
// other domain reconcilers (see internal/controller/domain).
package group

import (
	"context"
	"strconv"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/controller/domain"
	"github.com/pando85/kaniop-sub001/internal/k8sutil"
	"github.com/pando85/kaniop-sub001/internal/kanidmclient"
	"github.com/pando85/kaniop-sub001/internal/reconciler"
)

const (
	ControllerID  = "kanidmgroup"
	finalizerName = "kaniop.rs/group-controller"

	conditionReady   = "Ready"
	conditionExists  = "Exists"
	conditionUpdated = "Updated"
)

// Reconciler reconciles KanidmGroup objects.
type Reconciler struct {
	*reconciler.Context
}

func NewReconciler(ctx *reconciler.Context) *Reconciler {
	return &Reconciler{Context: ctx}
}

// Reconcile implements reconciler.ReconcileFunc.
func (r *Reconciler) Reconcile(ctx context.Context, key reconciler.ObjectKey) (time.Duration, error) {
	var group v1beta1.KanidmGroup
	err := r.Client.Get(ctx, types.NamespacedName{Namespace: key.Namespace, Name: key.Name}, &group)
	if apierrors.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, k8sutil.Wrap(err, k8sutil.KindKube, "get kanidmgroup")
	}

	if !group.DeletionTimestamp.IsZero() {
		return 0, r.reconcileDelete(ctx, &group)
	}

	if !containsFinalizer(group.Finalizers, finalizerName) {
		group.Finalizers = append(group.Finalizers, finalizerName)
		if err := r.Client.Update(ctx, &group); err != nil {
			return 0, k8sutil.Wrap(err, k8sutil.KindFinalizer, "add finalizer")
		}
	}

	if err := r.reconcileEntity(ctx, &group); err != nil {
		k8sutil.SetCondition(&group, conditionReady, metav1.ConditionFalse, "ReconcileFailed", err.Error(), group.Generation)
		_ = r.Client.Status().Update(ctx, &group)
		r.Recorder.Eventf(&group, corev1.EventTypeWarning, "ReconcileFailed", "%s", err.Error())
		return 0, err
	}

	group.Status.ObservedGeneration = group.Generation
	ready := k8sutil.IsConditionTrue(&group, conditionExists) && k8sutil.IsConditionTrue(&group, conditionUpdated)
	if ready {
		k8sutil.SetCondition(&group, conditionReady, metav1.ConditionTrue, "Reconciled", "group entry in sync", group.Generation)
	} else {
		k8sutil.SetCondition(&group, conditionReady, metav1.ConditionFalse, "Reconciled", "group entry still converging", group.Generation)
	}
	if err := r.Client.Status().Update(ctx, &group); err != nil {
		return 0, k8sutil.Wrap(err, k8sutil.KindKube, "update status")
	}
	return 0, nil
}

// observedGroup is the subset of a fetched Entry's attributes that are
// compared against KanidmGroupSpec to decide whether an update is needed.
type observedGroup struct {
	mail           []string
	entryManagedBy string
	members        []string
	gidnumber      string
}

func observeGroup(entry *kanidmclient.Entry) observedGroup {
	var obs observedGroup
	if entry == nil {
		return obs
	}
	obs.mail = entry.Attrs["mail"]
	if v := entry.Attrs["entry_managed_by"]; len(v) > 0 {
		obs.entryManagedBy = v[0]
	}
	obs.members = entry.Attrs["member"]
	if v := entry.Attrs["gidnumber"]; len(v) > 0 {
		obs.gidnumber = v[0]
	}
	return obs
}

// groupAttributesMatch compares group.Spec against obs asymmetrically: a spec
// field left unset is never a source of drift.
func groupAttributesMatch(group *v1beta1.KanidmGroup, obs observedGroup) bool {
	if len(group.Spec.Mail) > 0 && !stringSlicesEqual(group.Spec.Mail, obs.mail) {
		return false
	}
	if group.Spec.EntryManagedBy != nil && *group.Spec.EntryManagedBy != obs.entryManagedBy {
		return false
	}
	if len(group.Spec.Members) > 0 && !k8sutil.MembersMatch(group.Spec.Members, obs.members) {
		return false
	}
	if group.Spec.Posix != nil && group.Spec.Posix.Gidnumber != nil {
		if strconv.FormatInt(*group.Spec.Posix.Gidnumber, 10) != obs.gidnumber {
			return false
		}
	}
	return true
}

func (r *Reconciler) reconcileEntity(ctx context.Context, group *v1beta1.KanidmGroup) error {
	cl, err := domain.ClientFor(ctx, r.Kanidm, group)
	if err != nil {
		return err
	}

	name := group.KanidmEntityName()
	entry, err := cl.GetGroup(ctx, name)
	exists := err == nil
	if kanidmclient.IsNotFound(err) {
		if err := cl.CreateGroup(ctx, name); err != nil && !kanidmclient.IsConflict(err) {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "create group")
		}
	} else if err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "get group")
	}

	if exists {
		k8sutil.SetCondition(group, conditionExists, metav1.ConditionTrue, "Exists", "group entry present", group.Generation)
	} else {
		k8sutil.SetCondition(group, conditionExists, metav1.ConditionFalse, "NotExists", "group entry created", group.Generation)
	}

	match := exists && groupAttributesMatch(group, observeGroup(entry))
	if !match {
		attrs := map[string][]string{}
		if len(group.Spec.Mail) > 0 {
			attrs["mail"] = group.Spec.Mail
		}
		if group.Spec.EntryManagedBy != nil {
			attrs["entry_managed_by"] = []string{*group.Spec.EntryManagedBy}
		}
		if len(attrs) > 0 {
			if err := cl.SetAttrs(ctx, "group", name, attrs); err != nil {
				return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set group attrs")
			}
		}

		if len(group.Spec.Members) > 0 {
			if err := cl.SetAttrs(ctx, "group", name, map[string][]string{"member": group.Spec.Members}); err != nil {
				return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set group members")
			}
		}

		if group.Spec.Posix != nil && group.Spec.Posix.Gidnumber != nil {
			posixAttrs := map[string][]string{"gidnumber": {strconv.FormatInt(*group.Spec.Posix.Gidnumber, 10)}}
			if err := cl.SetAttrs(ctx, "group", name+"/_attr/posix", posixAttrs); err != nil {
				return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set group posix attrs")
			}
		}
	}

	if match {
		k8sutil.SetCondition(group, conditionUpdated, metav1.ConditionTrue, "AttributesMatch", "group attributes match spec", group.Generation)
	} else {
		k8sutil.SetCondition(group, conditionUpdated, metav1.ConditionFalse, "AttributesNotMatch", "group attributes applied", group.Generation)
	}

	return nil
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (r *Reconciler) reconcileDelete(ctx context.Context, group *v1beta1.KanidmGroup) error {
	if !containsFinalizer(group.Finalizers, finalizerName) {
		return nil
	}
	cl, err := domain.ClientFor(ctx, r.Kanidm, group)
	if err == nil {
		name := group.KanidmEntityName()
		if err := cl.DeleteEntry(ctx, "group", name); err != nil && !kanidmclient.IsNotFound(err) {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "delete group")
		}
	}
	group.Finalizers = removeFinalizer(group.Finalizers, finalizerName)
	if err := r.Client.Update(ctx, group); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindFinalizer, "remove finalizer")
	}
	return nil
}

func containsFinalizer(finalizers []string, name string) bool {
	for _, f := range finalizers {
		if f == name {
			return true
		}
	}
	return false
}

func removeFinalizer(finalizers []string, name string) []string {
	out := make([]string, 0, len(finalizers))
	for _, f := range finalizers {
		if f != name {
			out = append(out, f)
		}
	}
	return out
}
