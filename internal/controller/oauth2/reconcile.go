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

// Package oauth2 reconciles KanidmOAuth2Client objects, additionally managing
// the client's scope/claim maps, feature flags, and an optionally fetched
// display image.
package oauth2

import (
	"context"
	"net/url"
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
	"github.com/pando85/kaniop-sub001/internal/render"
)

const (
	ControllerID  = "kanidmoauth2client"
	finalizerName = "kaniop.rs/oauth2-controller"

	conditionReady       = "Ready"
	conditionExists      = "Exists"
	conditionUpdated     = "Updated"
	conditionValid       = "Valid"
	conditionRedirectURL = "RedirectUrlUpdated"
	conditionScopeMap    = "ScopeMapUpdated"
)

// Reconciler reconciles KanidmOAuth2Client objects.
type Reconciler struct {
	*reconciler.Context
}

func NewReconciler(ctx *reconciler.Context) *Reconciler {
	return &Reconciler{Context: ctx}
}

// Reconcile implements reconciler.ReconcileFunc.
func (r *Reconciler) Reconcile(ctx context.Context, key reconciler.ObjectKey) (time.Duration, error) {
	var oauth2Client v1beta1.KanidmOAuth2Client
	err := r.Client.Get(ctx, types.NamespacedName{Namespace: key.Namespace, Name: key.Name}, &oauth2Client)
	if apierrors.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, k8sutil.Wrap(err, k8sutil.KindKube, "get kanidmoauth2client")
	}

	if !oauth2Client.DeletionTimestamp.IsZero() {
		return 0, r.reconcileDelete(ctx, &oauth2Client)
	}

	if !containsFinalizer(oauth2Client.Finalizers, finalizerName) {
		oauth2Client.Finalizers = append(oauth2Client.Finalizers, finalizerName)
		if err := r.Client.Update(ctx, &oauth2Client); err != nil {
			return 0, k8sutil.Wrap(err, k8sutil.KindFinalizer, "add finalizer")
		}
	}

	if err := r.reconcileEntity(ctx, &oauth2Client); err != nil {
		k8sutil.SetCondition(&oauth2Client, conditionReady, metav1.ConditionFalse, "ReconcileFailed", err.Error(), oauth2Client.Generation)
		_ = r.Client.Status().Update(ctx, &oauth2Client)
		r.Recorder.Eventf(&oauth2Client, corev1.EventTypeWarning, "ReconcileFailed", "%s", err.Error())
		return 0, err
	}

	oauth2Client.Status.ObservedGeneration = oauth2Client.Generation
	ready := k8sutil.IsConditionTrue(&oauth2Client, conditionExists) &&
		k8sutil.IsConditionTrue(&oauth2Client, conditionUpdated) &&
		k8sutil.IsConditionTrue(&oauth2Client, conditionValid) &&
		k8sutil.IsConditionTrue(&oauth2Client, conditionRedirectURL) &&
		k8sutil.IsConditionTrue(&oauth2Client, conditionScopeMap)
	if ready {
		k8sutil.SetCondition(&oauth2Client, conditionReady, metav1.ConditionTrue, "Reconciled", "oauth2 client in sync", oauth2Client.Generation)
	} else {
		k8sutil.SetCondition(&oauth2Client, conditionReady, metav1.ConditionFalse, "Reconciled", "oauth2 client still converging", oauth2Client.Generation)
	}
	if err := r.Client.Status().Update(ctx, &oauth2Client); err != nil {
		return 0, k8sutil.Wrap(err, k8sutil.KindKube, "update status")
	}
	return 0, nil
}

// observedOAuth2Client is the subset of a fetched Entry's attributes compared
// against KanidmOAuth2ClientSpec to decide whether a core-attribute update is
// needed. Scope/sup-scope/claim maps are nested Kanidm sub-resources with no
// flat-attribute read-back in the entry GET response, so drift for those is
// tracked via a spec-hash fingerprint instead (see scopeMapFingerprint).
type observedOAuth2Client struct {
	displayName        string
	origin             string
	public             bool
	redirectURL        []string
	disablePkce        bool
	legacyCrypto       bool
	shortUsername      bool
	localhostRedirects bool
}

func observeOAuth2Client(entry *kanidmclient.Entry) observedOAuth2Client {
	var obs observedOAuth2Client
	if entry == nil {
		return obs
	}
	if v := entry.Attrs["displayname"]; len(v) > 0 {
		obs.displayName = v[0]
	}
	if v := entry.Attrs["oauth2_rs_origin"]; len(v) > 0 {
		obs.origin = v[0]
	}
	if v := entry.Attrs["oauth2_rs_public"]; len(v) > 0 {
		obs.public = v[0] == "true"
	}
	obs.redirectURL = entry.Attrs["oauth2_rs_origin_landing"]
	obs.disablePkce = attrBool(entry, "oauth2_allow_insecure_client_disable_pkce")
	obs.legacyCrypto = attrBool(entry, "oauth2_jwt_legacy_crypto_enable")
	obs.shortUsername = attrBool(entry, "oauth2_prefer_short_username")
	obs.localhostRedirects = attrBool(entry, "oauth2_rs_enable_localhost_redirects")
	return obs
}

func attrBool(entry *kanidmclient.Entry, key string) bool {
	v := entry.Attrs[key]
	return len(v) > 0 && v[0] == "true"
}

func oauth2AttributesMatch(oc *v1beta1.KanidmOAuth2Client, obs observedOAuth2Client) bool {
	if oc.Spec.DisplayName != obs.displayName {
		return false
	}
	if oc.Spec.Origin != obs.origin {
		return false
	}
	if oc.Spec.Public != obs.public {
		return false
	}
	if oc.Spec.AllowInsecureClientDisablePkce != obs.disablePkce {
		return false
	}
	if oc.Spec.EnableLegacyCrypto != obs.legacyCrypto {
		return false
	}
	if oc.Spec.PreferShortUsername != obs.shortUsername {
		return false
	}
	if oc.Spec.EnableLocalhostRedirects != obs.localhostRedirects {
		return false
	}
	return true
}

func oauth2RedirectURLMatch(oc *v1beta1.KanidmOAuth2Client, obs observedOAuth2Client) bool {
	if len(oc.Spec.RedirectURL) == 0 {
		return true
	}
	return stringSetEqual(oc.Spec.RedirectURL, obs.redirectURL)
}

// oauth2Valid checks spec-side coherence that doesn't require Kanidm's
// observed state: origin and every redirect URL must be well-formed absolute
// URLs.
func oauth2Valid(oc *v1beta1.KanidmOAuth2Client) (bool, string) {
	if u, err := url.ParseRequestURI(oc.Spec.Origin); err != nil || !u.IsAbs() {
		return false, "origin is not a valid absolute URL"
	}
	for _, redirect := range oc.Spec.RedirectURL {
		if u, err := url.ParseRequestURI(redirect); err != nil || !u.IsAbs() {
			return false, "redirectUrl entry " + redirect + " is not a valid absolute URL"
		}
	}
	return true, "oauth2 client spec is well-formed"
}

func (r *Reconciler) reconcileEntity(ctx context.Context, oc *v1beta1.KanidmOAuth2Client) error {
	cl, err := domain.ClientFor(ctx, r.Kanidm, oc)
	if err != nil {
		return err
	}

	if valid, msg := oauth2Valid(oc); valid {
		k8sutil.SetCondition(oc, conditionValid, metav1.ConditionTrue, "Valid", msg, oc.Generation)
	} else {
		k8sutil.SetCondition(oc, conditionValid, metav1.ConditionFalse, "Invalid", msg, oc.Generation)
	}

	name := oc.KanidmEntityName()
	entry, err := cl.GetOAuth2Client(ctx, name)
	exists := err == nil
	if kanidmclient.IsNotFound(err) {
		if err := cl.CreateOAuth2Client(ctx, name, oc.Spec.DisplayName, oc.Spec.Origin, oc.Spec.Public); err != nil && !kanidmclient.IsConflict(err) {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "create oauth2 client")
		}
	} else if err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "get oauth2 client")
	}

	if exists {
		k8sutil.SetCondition(oc, conditionExists, metav1.ConditionTrue, "Exists", "oauth2 client present", oc.Generation)
	} else {
		k8sutil.SetCondition(oc, conditionExists, metav1.ConditionFalse, "NotExists", "oauth2 client created", oc.Generation)
	}

	obs := observeOAuth2Client(entry)
	match := exists && oauth2AttributesMatch(oc, obs)
	redirectMatch := exists && oauth2RedirectURLMatch(oc, obs)

	if !redirectMatch && len(oc.Spec.RedirectURL) > 0 {
		if err := cl.SetOAuth2RedirectURLs(ctx, name, oc.Spec.RedirectURL); err != nil {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set redirect urls")
		}
	}
	if redirectMatch {
		k8sutil.SetCondition(oc, conditionRedirectURL, metav1.ConditionTrue, "RedirectUrlMatch", "redirect urls match spec", oc.Generation)
	} else {
		k8sutil.SetCondition(oc, conditionRedirectURL, metav1.ConditionFalse, "RedirectUrlNotMatch", "redirect urls applied", oc.Generation)
	}

	scopeMapDigest := scopeMapFingerprint(oc)
	scopeMapMatch := scopeMapDigest == oc.Status.ScopeMapFingerprint
	if !scopeMapMatch {
		for _, sm := range oc.Spec.ScopeMap {
			if err := cl.SetOAuth2ScopeMap(ctx, name, sm.Group, sm.Scopes); err != nil {
				return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set scope map for "+sm.Group)
			}
		}
		for _, sm := range oc.Spec.SupScopeMap {
			if err := cl.SetOAuth2SupScopeMap(ctx, name, sm.Group, sm.Scopes); err != nil {
				return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set sup scope map for "+sm.Group)
			}
		}
		for _, cm := range oc.Spec.ClaimMap {
			for group, values := range cm.ValuesByGroup {
				if err := cl.SetOAuth2ClaimMap(ctx, name, cm.Name, group, values); err != nil {
					return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set claim map "+cm.Name+" for "+group)
				}
			}
			if err := cl.SetOAuth2ClaimJoin(ctx, name, cm.Name, string(cm.JoinStrategy)); err != nil {
				return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set claim join strategy for "+cm.Name)
			}
		}
		oc.Status.ScopeMapFingerprint = scopeMapDigest
	}
	if scopeMapMatch {
		k8sutil.SetCondition(oc, conditionScopeMap, metav1.ConditionTrue, "ScopeMapMatch", "scope/claim maps already applied", oc.Generation)
	} else {
		k8sutil.SetCondition(oc, conditionScopeMap, metav1.ConditionFalse, "ScopeMapNotMatch", "scope/claim maps applied", oc.Generation)
	}

	if !match {
		if err := cl.SetOAuth2Flags(ctx, name,
			oc.Spec.AllowInsecureClientDisablePkce,
			oc.Spec.EnableLegacyCrypto,
			oc.Spec.PreferShortUsername,
			oc.Spec.EnableLocalhostRedirects,
		); err != nil {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "set oauth2 flags")
		}
	}
	if match {
		k8sutil.SetCondition(oc, conditionUpdated, metav1.ConditionTrue, "AttributesMatch", "oauth2 client attributes match spec", oc.Generation)
	} else {
		k8sutil.SetCondition(oc, conditionUpdated, metav1.ConditionFalse, "AttributesNotMatch", "oauth2 client attributes applied", oc.Generation)
	}

	if oc.Spec.ImageURL != nil {
		if err := r.reconcileImage(ctx, cl, oc, name); err != nil {
			return err
		}
	}

	if !oc.Spec.Public {
		if err := r.reconcileCredentialsSecret(ctx, cl, oc, name); err != nil {
			return err
		}
	}

	return nil
}

func stringSetEqual(spec, observed []string) bool {
	if len(observed) < len(spec) {
		return false
	}
	seen := make(map[string]bool, len(observed))
	for _, o := range observed {
		seen[o] = true
	}
	for _, s := range spec {
		if !seen[s] {
			return false
		}
	}
	return true
}

// reconcileCredentialsSecret mirrors a confidential client's client_id/secret
// pair into a Secret named "<name>-kanidm-oauth2-credentials".
func (r *Reconciler) reconcileCredentialsSecret(ctx context.Context, cl *kanidmclient.Client, oc *v1beta1.KanidmOAuth2Client, name string) error {
	basic, err := cl.GetOAuth2Basic(ctx, name)
	if err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "get oauth2 client secret")
	}
	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name + "-kanidm-oauth2-credentials",
			Namespace: oc.Namespace,
		},
		Type: corev1.SecretTypeOpaque,
		Data: map[string][]byte{
			"CLIENT_ID":     []byte(basic.ClientID),
			"CLIENT_SECRET": []byte(basic.ClientSecret),
		},
	}
	if err := render.Apply(ctx, r.Client, oc, secret, r.Client.Scheme()); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKube, "apply oauth2 credentials secret")
	}
	return nil
}

func (r *Reconciler) reconcileImage(ctx context.Context, cl *kanidmclient.Client, oc *v1beta1.KanidmOAuth2Client, name string) error {
	data, contentType, err := fetchImage(ctx, *oc.Spec.ImageURL)
	if err != nil {
		return err
	}
	digest := fingerprint(data)
	if digest == oc.Status.ImageFingerprint {
		return nil
	}
	if err := cl.UploadOAuth2Image(ctx, name, contentType, data); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "upload oauth2 client image")
	}
	oc.Status.ImageFingerprint = digest
	return nil
}

func (r *Reconciler) reconcileDelete(ctx context.Context, oc *v1beta1.KanidmOAuth2Client) error {
	if !containsFinalizer(oc.Finalizers, finalizerName) {
		return nil
	}
	cl, err := domain.ClientFor(ctx, r.Kanidm, oc)
	if err == nil {
		name := oc.KanidmEntityName()
		if err := cl.DeleteEntry(ctx, "oauth2", name); err != nil && !kanidmclient.IsNotFound(err) {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "delete oauth2 client")
		}
	}
	oc.Finalizers = removeFinalizer(oc.Finalizers, finalizerName)
	if err := r.Client.Update(ctx, oc); err != nil {
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
