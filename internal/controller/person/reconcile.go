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

// Package person reconciles KanidmPersonAccount objects, mirroring
// internal/controller/group's create/update/condition skeleton for the
// person-account entity kind.
package person

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
	ControllerID  = "kanidmpersonaccount"
	finalizerName = "kaniop.rs/person-controller"

	conditionReady   = "Ready"
	conditionExists  = "Exists"
	conditionUpdated = "Updated"
)

// Reconciler reconciles KanidmPersonAccount objects.
type Reconciler struct {
	*reconciler.Context
}

func NewReconciler(ctx *reconciler.Context) *Reconciler {
	return &Reconciler{Context: ctx}
}

// Reconcile implements reconciler.ReconcileFunc.
func (r *Reconciler) Reconcile(ctx context.Context, key reconciler.ObjectKey) (time.Duration, error) {
	var person v1beta1.KanidmPersonAccount
	err := r.Client.Get(ctx, types.NamespacedName{Namespace: key.Namespace, Name: key.Name}, &person)
	if apierrors.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, k8sutil.Wrap(err, k8sutil.KindKube, "get kanidmpersonaccount")
	}

	if !person.DeletionTimestamp.IsZero() {
		return 0, r.reconcileDelete(ctx, &person)
	}

	if !containsFinalizer(person.Finalizers, finalizerName) {
		person.Finalizers = append(person.Finalizers, finalizerName)
		if err := r.Client.Update(ctx, &person); err != nil {
			return 0, k8sutil.Wrap(err, k8sutil.KindFinalizer, "add finalizer")
		}
	}

	if err := r.reconcileEntity(ctx, &person); err != nil {
		k8sutil.SetCondition(&person, conditionReady, metav1.ConditionFalse, "ReconcileFailed", err.Error(), person.Generation)
		_ = r.Client.Status().Update(ctx, &person)
		r.Recorder.Eventf(&person, corev1.EventTypeWarning, "ReconcileFailed", "%s", err.Error())
		return 0, err
	}

	person.Status.ObservedGeneration = person.Generation
	ready := k8sutil.IsConditionTrue(&person, conditionExists) && k8sutil.IsConditionTrue(&person, conditionUpdated)
	if ready {
		k8sutil.SetCondition(&person, conditionReady, metav1.ConditionTrue, "Reconciled", "person entry in sync", person.Generation)
	} else {
		k8sutil.SetCondition(&person, conditionReady, metav1.ConditionFalse, "Reconciled", "person entry still converging", person.Generation)
	}
	if err := r.Client.Status().Update(ctx, &person); err != nil {
		return 0, k8sutil.Wrap(err, k8sutil.KindKube, "update status")
	}
	return 0, nil
}

// observedPerson is the subset of a fetched Entry's attributes compared
// against KanidmPersonAccountSpec to decide whether an update is needed.
type observedPerson struct {
	displayName   string
	mail          []string
	legalName     string
	validFrom     string
	expire        string
	gidnumber     string
	loginshell    string
	homedirectory string
}

func observePerson(entry *kanidmclient.Entry) observedPerson {
	var obs observedPerson
	if entry == nil {
		return obs
	}
	if v := entry.Attrs["displayname"]; len(v) > 0 {
		obs.displayName = v[0]
	}
	obs.mail = entry.Attrs["mail"]
	if v := entry.Attrs["legalname"]; len(v) > 0 {
		obs.legalName = v[0]
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

// personAttributesMatch compares person.Spec against obs asymmetrically: a
// spec field left unset is never a source of drift.
func personAttributesMatch(person *v1beta1.KanidmPersonAccount, obs observedPerson) bool {
	if person.Spec.DisplayName != obs.displayName {
		return false
	}
	if len(person.Spec.Mail) > 0 && !stringSlicesEqual(person.Spec.Mail, obs.mail) {
		return false
	}
	if person.Spec.LegalName != nil && *person.Spec.LegalName != obs.legalName {
		return false
	}
	if person.Spec.ValidFrom != nil && person.Spec.ValidFrom.Format(rfc3339) != obs.validFrom {
		return false
	}
	if person.Spec.Expire != nil && person.Spec.Expire.Format(rfc3339) != obs.expire {
		return false
	}
	if person.Spec.Posix != nil {
		if person.Spec.Posix.Gidnumber != nil && strconv.FormatInt(*person.Spec.Posix.Gidnumber, 10) != obs.gidnumber {
			return false
		}
		if person.Spec.Posix.Loginshell != nil && *person.Spec.Posix.Loginshell != obs.loginshell {
			return false
		}
		if person.Spec.Posix.Homedirectory != nil && *person.Spec.Posix.Homedirectory != obs.homedirectory {
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

func (r *Reconciler) reconcileEntity(ctx context.Context, person *v1beta1.KanidmPersonAccount) error {
	cl, err := domain.ClientFor(ctx, r.Kanidm, person)
	if err != nil {
		return err
	}

	name := person.KanidmEntityName()
	entry, err := cl.GetPerson(ctx, name)
	exists := err == nil
	if kanidmclient.IsNotFound(err) {
		if err := cl.CreatePerson(ctx, name, person.Spec.DisplayName); err != nil && !kanidmclient.IsConflict(err) {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "create person")
		}
	} else if err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "get person")
	}

	if exists {
		k8sutil.SetCondition(person, conditionExists, metav1.ConditionTrue, "Exists", "person entry present", person.Generation)
	} else {
		k8sutil.SetCondition(person, conditionExists, metav1.ConditionFalse, "NotExists", "person entry created", person.Generation)
	}

	match := exists && personAttributesMatch(person, observePerson(entry))
	if !match {
		attrs := map[string][]string{"displayname": {person.Spec.DisplayName}}
		if len(person.Spec.Mail) > 0 {
			attrs["mail"] = person.Spec.Mail
		}
		if person.Spec.LegalName != nil {
			attrs["legalname"] = []string{*person.Spec.LegalName}
		}
		if person.Spec.ValidFrom != nil {
			attrs["account_valid_from"] = []string{person.Spec.ValidFrom.Format(rfc3339)}
		}
		if person.Spec.Expire != nil {
			attrs["account_expire"] = []string{person.Spec.Expire.Format(rfc3339)}
		}
		if err := cl.SetAttrs(ctx, "person", name, attrs); err != nil {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set person attrs")
		}

		if person.Spec.Posix != nil {
			posixAttrs := map[string][]string{}
			if person.Spec.Posix.Gidnumber != nil {
				posixAttrs["gidnumber"] = []string{strconv.FormatInt(*person.Spec.Posix.Gidnumber, 10)}
			}
			if person.Spec.Posix.Loginshell != nil {
				posixAttrs["loginshell"] = []string{*person.Spec.Posix.Loginshell}
			}
			if person.Spec.Posix.Homedirectory != nil {
				posixAttrs["homedirectory"] = []string{*person.Spec.Posix.Homedirectory}
			}
			if len(posixAttrs) > 0 {
				if err := cl.SetAttrs(ctx, "person", name+"/_attr/posix", posixAttrs); err != nil {
					return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set person posix attrs")
				}
			}
		}
	}

	if match {
		k8sutil.SetCondition(person, conditionUpdated, metav1.ConditionTrue, "AttributesMatch", "person attributes match spec", person.Generation)
	} else {
		k8sutil.SetCondition(person, conditionUpdated, metav1.ConditionFalse, "AttributesNotMatch", "person attributes applied", person.Generation)
	}

	return nil
}

const rfc3339 = "2006-01-02T15:04:05Z07:00"

func (r *Reconciler) reconcileDelete(ctx context.Context, person *v1beta1.KanidmPersonAccount) error {
	if !containsFinalizer(person.Finalizers, finalizerName) {
		return nil
	}
	cl, err := domain.ClientFor(ctx, r.Kanidm, person)
	if err == nil {
		name := person.KanidmEntityName()
		if err := cl.DeleteEntry(ctx, "person", name); err != nil && !kanidmclient.IsNotFound(err) {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "delete person")
		}
	}
	person.Finalizers = removeFinalizer(person.Finalizers, finalizerName)
	if err := r.Client.Update(ctx, person); err != nil {
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
