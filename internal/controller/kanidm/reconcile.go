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

// Package kanidm implements the Kanidm cluster controller: render and apply
// the StatefulSet/Service/Ingress objects for each replica group, bootstrap
// the admin/idm_admin passwords on first stand-up, gate image upgrades by
// semver distance, and compute the Ready/Progressing status conditions.
// Follows a render/apply/analyze/set-conditions flow, built around kaniop's
// own render package instead of manifest-sourced unstructured objects.
package kanidm

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kaniopv1 "github.com/pando85/kaniop-sub001/api/v1"
	"github.com/pando85/kaniop-sub001/internal/k8sutil"
	"github.com/pando85/kaniop-sub001/internal/reconciler"
	"github.com/pando85/kaniop-sub001/internal/render"
)

const finalizerName = "kaniop.rs/kanidm-controller"

// Reconciler reconciles Kanidm instances.
type Reconciler struct {
	*reconciler.Context
}

// NewReconciler builds the Kanidm instance reconciler.
func NewReconciler(ctx *reconciler.Context) *Reconciler {
	return &Reconciler{Context: ctx}
}

// Reconcile implements reconciler.ReconcileFunc.
func (r *Reconciler) Reconcile(ctx context.Context, key reconciler.ObjectKey) (time.Duration, error) {
	var instance kaniopv1.Kanidm
	err := r.Client.Get(ctx, types.NamespacedName{Namespace: key.Namespace, Name: key.Name}, &instance)
	if apierrors.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, k8sutil.Wrap(err, k8sutil.KindKube, "get kanidm instance")
	}

	if !instance.DeletionTimestamp.IsZero() {
		return 0, r.reconcileDelete(ctx, &instance)
	}

	if !controllerutilContainsFinalizer(instance.Finalizers, finalizerName) {
		instance.Finalizers = append(instance.Finalizers, finalizerName)
		if err := r.Client.Update(ctx, &instance); err != nil {
			return 0, k8sutil.Wrap(err, k8sutil.KindFinalizer, "add finalizer")
		}
	}

	k8sutil.SetCondition(&instance, string(kaniopv1.KanidmConditionProgressing), metav1.ConditionTrue, "Reconciling", "applying desired state", instance.Generation)
	k8sutil.RemoveCondition(&instance, string(kaniopv1.KanidmConditionReady))

	if err := r.reconcileApply(ctx, &instance); err != nil {
		k8sutil.SetCondition(&instance, string(kaniopv1.KanidmConditionProgressing), metav1.ConditionFalse, "ApplyFailed", err.Error(), instance.Generation)
		_ = r.Client.Status().Update(ctx, &instance)
		r.Recorder.Eventf(&instance, corev1.EventTypeWarning, "ApplyFailed", "%s", err.Error())
		return 0, err
	}

	if err := r.reconcileStatus(ctx, &instance); err != nil {
		return 0, err
	}

	if err := r.Client.Status().Update(ctx, &instance); err != nil {
		return 0, k8sutil.Wrap(err, k8sutil.KindKube, "update status")
	}

	return 0, nil
}

func (r *Reconciler) reconcileApply(ctx context.Context, instance *kaniopv1.Kanidm) error {
	for _, rg := range instance.Spec.ReplicaGroups {
		sts := render.StatefulSet(r.ControllerID, instance, rg)
		if err := r.applyWithVersionGate(ctx, instance, sts); err != nil {
			return err
		}
		svc := render.Service(r.ControllerID, instance, rg)
		if err := render.Apply(ctx, r.Client, instance, svc, r.Client.Scheme()); err != nil {
			return err
		}
	}

	if ingress := render.Ingress(r.ControllerID, instance); ingress != nil {
		if err := render.Apply(ctx, r.Client, instance, ingress, r.Client.Scheme()); err != nil {
			return err
		}
	}

	if err := r.ensureBootstrapped(ctx, instance); err != nil {
		return err
	}

	return nil
}

// applyWithVersionGate blocks applying a StatefulSet whose image is a server
// version this operator build cannot safely drive.
func (r *Reconciler) applyWithVersionGate(ctx context.Context, instance *kaniopv1.Kanidm, sts *appsv1.StatefulSet) error {
	if err := CheckUpgradeCompatible(instance.Spec.Image); err != nil {
		r.Recorder.Eventf(instance, corev1.EventTypeWarning, "UpgradeBlocked", "%s", err.Error())
		return err
	}
	return render.Apply(ctx, r.Client, instance, sts, r.Client.Scheme())
}

// ensureBootstrapped recovers the admin/idm_admin passwords via pod exec and
// stores them in the admin-password Secret, the first time a replica's pod
// becomes Ready. A no-op once the Secret already exists; bootstrap never
// re-runs against a live cluster.
func (r *Reconciler) ensureBootstrapped(ctx context.Context, instance *kaniopv1.Kanidm) error {
	var secret corev1.Secret
	name := AdminPasswordSecretName(instance.Name)
	err := r.Client.Get(ctx, types.NamespacedName{Namespace: instance.Namespace, Name: name}, &secret)
	if err == nil {
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return k8sutil.Wrap(err, k8sutil.KindKube, "get admin password secret")
	}

	if r.RestConfig == nil || r.Clientset == nil {
		// No exec transport wired (e.g. a unit test Context); bootstrap will be
		// retried on the next reconcile once one is available.
		return nil
	}

	podName, err := r.firstReadyPod(ctx, instance)
	if err != nil {
		return err
	}
	if podName == "" {
		return nil
	}

	passwords := make(map[string]string, 2)
	for _, user := range []string{"admin", "idm_admin"} {
		password, err := RecoverAccount(ctx, r.RestConfig, r.Clientset, instance.Namespace, podName, "kanidmd", user)
		if err != nil {
			return k8sutil.Wrap(err, k8sutil.KindKubeExec, "recover "+user+" account")
		}
		passwords[user] = password
	}

	bootstrapSecret := AdminPasswordSecret(instance.Namespace, instance.Name, passwords)
	if err := render.Apply(ctx, r.Client, instance, bootstrapSecret, r.Client.Scheme()); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKube, "apply admin password secret")
	}
	return nil
}

// firstReadyPod returns the name of any Ready pod belonging to instance, or
// "" if none is ready yet.
func (r *Reconciler) firstReadyPod(ctx context.Context, instance *kaniopv1.Kanidm) (string, error) {
	var pods corev1.PodList
	sel := client.MatchingLabels{k8sutil.LabelInstance: instance.Name}
	if err := r.Client.List(ctx, &pods, client.InNamespace(instance.Namespace), sel); err != nil {
		return "", k8sutil.Wrap(err, k8sutil.KindKube, "list kanidm pods")
	}
	for _, pod := range pods.Items {
		for _, cond := range pod.Status.Conditions {
			if cond.Type == corev1.PodReady && cond.Status == corev1.ConditionTrue {
				return pod.Name, nil
			}
		}
	}
	return "", nil
}

func (r *Reconciler) reconcileStatus(ctx context.Context, instance *kaniopv1.Kanidm) error {
	var totalReplicas, availableReplicas, updatedReplicas int32
	allReady := true
	for _, rg := range instance.Spec.ReplicaGroups {
		var sts appsv1.StatefulSet
		name := fmt.Sprintf("%s-%s", instance.Name, rg.Name)
		if rg.Name == "" {
			name = instance.Name
		}
		err := r.Client.Get(ctx, types.NamespacedName{Namespace: instance.Namespace, Name: name}, &sts)
		if apierrors.IsNotFound(err) {
			allReady = false
			continue
		}
		if err != nil {
			return k8sutil.Wrap(err, k8sutil.KindKube, "get statefulset for status")
		}
		totalReplicas += sts.Status.Replicas
		availableReplicas += sts.Status.AvailableReplicas
		updatedReplicas += sts.Status.UpdatedReplicas
		if sts.Status.AvailableReplicas < rg.Replicas {
			allReady = false
		}
	}

	instance.Status.ObservedGeneration = instance.Generation
	instance.Status.Replicas = totalReplicas
	instance.Status.AvailableReplicas = availableReplicas
	instance.Status.UpdatedReplicas = updatedReplicas
	instance.Status.UnavailableReplicas = totalReplicas - availableReplicas

	k8sutil.SetCondition(instance, string(kaniopv1.KanidmConditionProgressing), metav1.ConditionFalse, "Applied", "desired state applied", instance.Generation)
	if allReady {
		k8sutil.SetCondition(instance, string(kaniopv1.KanidmConditionReady), metav1.ConditionTrue, "Available", "all replica groups available", instance.Generation)
	} else {
		k8sutil.SetCondition(instance, string(kaniopv1.KanidmConditionReady), metav1.ConditionFalse, "Unavailable", "one or more replica groups not fully available", instance.Generation)
	}
	return nil
}

func (r *Reconciler) reconcileDelete(ctx context.Context, instance *kaniopv1.Kanidm) error {
	if !controllerutilContainsFinalizer(instance.Finalizers, finalizerName) {
		return nil
	}
	// Owned objects carry owner references and are garbage-collected by the API
	// server; the finalizer step itself removes the finalizer at once and then
	// evicts this cluster's cached Kanidm clients. It does not wait for
	// dependent controllers to react to the deletion.
	instance.Finalizers = removeFinalizer(instance.Finalizers, finalizerName)
	if err := r.Client.Update(ctx, instance); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindFinalizer, "remove finalizer")
	}
	r.Kanidm.Remove(instance.Namespace, instance.Name)
	return nil
}

func controllerutilContainsFinalizer(finalizers []string, name string) bool {
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

var _ client.Object = (*kaniopv1.Kanidm)(nil)
