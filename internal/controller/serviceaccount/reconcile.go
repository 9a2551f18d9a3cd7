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

// Package serviceaccount reconciles KanidmServiceAccount objects, additionally
// managing the account's API token lifecycle and an optional generated-password
// Secret, both subject to the enabled/period rotation trio. Mirrors
// internal/controller/group's create/update/condition skeleton.
package serviceaccount

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
	ControllerID  = "kanidmserviceaccount"
	finalizerName = "kaniop.rs/serviceaccount-controller"

	conditionReady   = "Ready"
	conditionExists  = "Exists"
	conditionUpdated = "Updated"

	rfc3339 = "2006-01-02T15:04:05Z07:00"
)

// Reconciler reconciles KanidmServiceAccount objects.
type Reconciler struct {
	*reconciler.Context
}

func NewReconciler(ctx *reconciler.Context) *Reconciler {
	return &Reconciler{Context: ctx}
}

// Reconcile implements reconciler.ReconcileFunc.
func (r *Reconciler) Reconcile(ctx context.Context, key reconciler.ObjectKey) (time.Duration, error) {
	var sa v1beta1.KanidmServiceAccount
	err := r.Client.Get(ctx, types.NamespacedName{Namespace: key.Namespace, Name: key.Name}, &sa)
	if apierrors.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, k8sutil.Wrap(err, k8sutil.KindKube, "get kanidmserviceaccount")
	}

	if !sa.DeletionTimestamp.IsZero() {
		return 0, r.reconcileDelete(ctx, &sa)
	}

	if !containsFinalizer(sa.Finalizers, finalizerName) {
		sa.Finalizers = append(sa.Finalizers, finalizerName)
		if err := r.Client.Update(ctx, &sa); err != nil {
			return 0, k8sutil.Wrap(err, k8sutil.KindFinalizer, "add finalizer")
		}
	}

	if err := r.reconcileEntity(ctx, &sa); err != nil {
		k8sutil.SetCondition(&sa, conditionReady, metav1.ConditionFalse, "ReconcileFailed", err.Error(), sa.Generation)
		_ = r.Client.Status().Update(ctx, &sa)
		r.Recorder.Eventf(&sa, corev1.EventTypeWarning, "ReconcileFailed", "%s", err.Error())
		return 0, err
	}

	sa.Status.ObservedGeneration = sa.Generation
	ready := k8sutil.IsConditionTrue(&sa, conditionExists) && k8sutil.IsConditionTrue(&sa, conditionUpdated)
	if ready {
		k8sutil.SetCondition(&sa, conditionReady, metav1.ConditionTrue, "Reconciled", "service account in sync", sa.Generation)
	} else {
		k8sutil.SetCondition(&sa, conditionReady, metav1.ConditionFalse, "Reconciled", "service account still converging", sa.Generation)
	}
	if err := r.Client.Status().Update(ctx, &sa); err != nil {
		return 0, k8sutil.Wrap(err, k8sutil.KindKube, "update status")
	}
	// Rotation periods are measured in days; a daily requeue is enough to
	// notice a period becoming due without busy-polling Kanidm.
	return 24 * time.Hour, nil
}

// observedServiceAccount is the subset of a fetched Entry's attributes
// compared against KanidmServiceAccountSpec to decide whether an update is
// needed. API token/generated-password lifecycle is reconciled unconditionally
// in reconcileAPITokens/reconcileGeneratedPassword, which already diff against
// Kanidm's token list and a rotation-due annotation respectively.
type observedServiceAccount struct {
	displayName    string
	mail           []string
	entryManagedBy string
	validFrom      string
	expire         string
	gidnumber      string
	loginshell     string
	homedirectory  string
}

func observeServiceAccount(entry *kanidmclient.Entry) observedServiceAccount {
	var obs observedServiceAccount
	if entry == nil {
		return obs
	}
	if v := entry.Attrs["displayname"]; len(v) > 0 {
		obs.displayName = v[0]
	}
	obs.mail = entry.Attrs["mail"]
	if v := entry.Attrs["entry_managed_by"]; len(v) > 0 {
		obs.entryManagedBy = v[0]
	}
	if v := entry.Attrs["account_valid_from"]; len(v) > 0 {
		obs.validFrom = v[0]
	}
	if v := entry.Attrs["account_expire"]; len(v) > 0 {
		obs.expire = v[0]
	}
	if v := entry.Attrs["gidnumber"]; len(v) > 0 {
		obs.gidnumber = v[0]
	}
	if v := entry.Attrs["loginshell"]; len(v) > 0 {
		obs.loginshell = v[0]
	}
	if v := entry.Attrs["homedirectory"]; len(v) > 0 {
		obs.homedirectory = v[0]
	}
	return obs
}

func serviceAccountAttributesMatch(sa *v1beta1.KanidmServiceAccount, entryManagedBy string, obs observedServiceAccount) bool {
	if sa.Spec.DisplayName != obs.displayName {
		return false
	}
	if len(sa.Spec.Mail) > 0 && !stringSlicesEqual(sa.Spec.Mail, obs.mail) {
		return false
	}
	if entryManagedBy != "" && entryManagedBy != obs.entryManagedBy {
		return false
	}
	if sa.Spec.ValidFrom != nil && sa.Spec.ValidFrom.Format(rfc3339) != obs.validFrom {
		return false
	}
	if sa.Spec.Expire != nil && sa.Spec.Expire.Format(rfc3339) != obs.expire {
		return false
	}
	if sa.Spec.Posix != nil && sa.Spec.Posix.Gidnumber != nil {
		if strconv.FormatInt(*sa.Spec.Posix.Gidnumber, 10) != obs.gidnumber {
			return false
		}
	}
	return true
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

func (r *Reconciler) reconcileEntity(ctx context.Context, sa *v1beta1.KanidmServiceAccount) error {
	cl, err := domain.ClientFor(ctx, r.Kanidm, sa)
	if err != nil {
		return err
	}

	name := sa.KanidmEntityName()
	entryManagedBy := ""
	if sa.Spec.EntryManagedBy != nil {
		entryManagedBy = *sa.Spec.EntryManagedBy
	}

	entry, err := cl.GetServiceAccount(ctx, name)
	exists := err == nil
	if kanidmclient.IsNotFound(err) {
		if err := cl.CreateServiceAccount(ctx, name, sa.Spec.DisplayName, entryManagedBy); err != nil && !kanidmclient.IsConflict(err) {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "create service account")
		}
	} else if err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "get service account")
	}

	if exists {
		k8sutil.SetCondition(sa, conditionExists, metav1.ConditionTrue, "Exists", "service account present", sa.Generation)
	} else {
		k8sutil.SetCondition(sa, conditionExists, metav1.ConditionFalse, "NotExists", "service account created", sa.Generation)
	}

	match := exists && serviceAccountAttributesMatch(sa, entryManagedBy, observeServiceAccount(entry))
	if !match {
		attrs := map[string][]string{"displayname": {sa.Spec.DisplayName}}
		if len(sa.Spec.Mail) > 0 {
			attrs["mail"] = sa.Spec.Mail
		}
		if entryManagedBy != "" {
			attrs["entry_managed_by"] = []string{entryManagedBy}
		}
		if sa.Spec.ValidFrom != nil {
			attrs["account_valid_from"] = []string{sa.Spec.ValidFrom.Format(rfc3339)}
		}
		if sa.Spec.Expire != nil {
			attrs["account_expire"] = []string{sa.Spec.Expire.Format(rfc3339)}
		}
		if err := cl.SetAttrs(ctx, "service_account", name, attrs); err != nil {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set service account attrs")
		}

		if sa.Spec.Posix != nil {
			posixAttrs := map[string][]string{}
			if sa.Spec.Posix.Gidnumber != nil {
				posixAttrs["gidnumber"] = []string{strconv.FormatInt(*sa.Spec.Posix.Gidnumber, 10)}
			}
			if len(posixAttrs) > 0 {
				if err := cl.SetAttrs(ctx, "service_account", name+"/_attr/posix", posixAttrs); err != nil {
					return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set service account posix attrs")
				}
			}
		}
	}

	if match {
		k8sutil.SetCondition(sa, conditionUpdated, metav1.ConditionTrue, "AttributesMatch", "service account attributes match spec", sa.Generation)
	} else {
		k8sutil.SetCondition(sa, conditionUpdated, metav1.ConditionFalse, "AttributesNotMatch", "service account attributes applied", sa.Generation)
	}

	if err := r.reconcileAPITokens(ctx, sa, cl, name); err != nil {
		return err
	}

	if sa.Spec.GenerateCredentials {
		if err := r.reconcileGeneratedPassword(ctx, sa, cl, name); err != nil {
			return err
		}
	}

	return nil
}

func (r *Reconciler) reconcileDelete(ctx context.Context, sa *v1beta1.KanidmServiceAccount) error {
	if !containsFinalizer(sa.Finalizers, finalizerName) {
		return nil
	}
	cl, err := domain.ClientFor(ctx, r.Kanidm, sa)
	if err == nil {
		name := sa.KanidmEntityName()
		if err := cl.DeleteEntry(ctx, "service_account", name); err != nil && !kanidmclient.IsNotFound(err) {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "delete service account")
		}
	}
	sa.Finalizers = removeFinalizer(sa.Finalizers, finalizerName)
	if err := r.Client.Update(ctx, sa); err != nil {
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
