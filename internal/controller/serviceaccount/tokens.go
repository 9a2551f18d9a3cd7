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

package serviceaccount

import (
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
	"github.com/pando85/kaniop-sub001/internal/k8sutil"
	"github.com/pando85/kaniop-sub001/internal/kanidmclient"
	"github.com/pando85/kaniop-sub001/internal/render"
	"github.com/pando85/kaniop-sub001/internal/rotation"
)

// reconcileAPITokens issues a Secret per configured APIToken, rotating it when
// due, and revokes any Kanidm-side token whose label is no longer listed.
func (r *Reconciler) reconcileAPITokens(ctx context.Context, sa *v1beta1.KanidmServiceAccount, cl *kanidmclient.Client, name string) error {
	issued, err := cl.ListAPITokens(ctx, name)
	if err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "list api tokens")
	}
	issuedByLabel := make(map[string]string, len(issued))
	for _, info := range issued {
		issuedByLabel[info.Label] = info.TokenID
	}

	wanted := make(map[string]bool, len(sa.Spec.APITokens))
	for _, tok := range sa.Spec.APITokens {
		wanted[tok.Label] = true
		if err := r.reconcileAPIToken(ctx, sa, cl, name, tok, issuedByLabel[tok.Label]); err != nil {
			return err
		}
	}

	for label, tokenID := range issuedByLabel {
		if wanted[label] {
			continue
		}
		if err := cl.DeleteAPIToken(ctx, name, tokenID); err != nil && !kanidmclient.IsNotFound(err) {
			return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "revoke api token "+label)
		}
	}
	return nil
}

func (r *Reconciler) reconcileAPIToken(ctx context.Context, sa *v1beta1.KanidmServiceAccount, cl *kanidmclient.Client, saName string, tok v1beta1.APIToken, existingTokenID string) error {
	secretName := saName + "-" + tok.Label + "-api-token"
	if tok.SecretName != nil && *tok.SecretName != "" {
		secretName = *tok.SecretName
	}

	var secret corev1.Secret
	err := r.Client.Get(ctx, types.NamespacedName{Namespace: sa.Namespace, Name: secretName}, &secret)
	if err != nil && !apierrors.IsNotFound(err) {
		return k8sutil.Wrap(err, k8sutil.KindKube, "get api token secret "+secretName)
	}
	hasSecret := err == nil

	enabled := tok.Rotation != nil && tok.Rotation.Enabled
	periodDays := int32(0)
	if tok.Rotation != nil {
		periodDays = tok.Rotation.PeriodDays
	}

	needsIssue := existingTokenID == "" || !hasSecret
	if !needsIssue && enabled && rotation.NeedsRotation(&secret, enabled, periodDays, now()) {
		needsIssue = true
		if existingTokenID != "" {
			if err := cl.DeleteAPIToken(ctx, saName, existingTokenID); err != nil && !kanidmclient.IsNotFound(err) {
				return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "revoke api token for rotation: "+tok.Label)
			}
		}
	}
	if !needsIssue {
		return nil
	}

	token, err := cl.CreateAPIToken(ctx, saName, tok.Label, tok.ReadWrite, tok.ExpiresAt)
	if err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "create api token "+tok.Label)
	}

	newSecret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      secretName,
			Namespace: sa.Namespace,
		},
		Type: corev1.SecretTypeOpaque,
		Data: map[string][]byte{"token": []byte(token)},
	}
	rotation.Annotate(newSecret, enabled, periodDays, now())
	if err := render.Apply(ctx, r.Client, sa, newSecret, r.Client.Scheme()); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKube, "apply api token secret "+secretName)
	}
	return nil
}

// reconcileGeneratedPassword maintains the service account's password Secret
// when GenerateCredentials is set, rotating it on the configured schedule.
func (r *Reconciler) reconcileGeneratedPassword(ctx context.Context, sa *v1beta1.KanidmServiceAccount, cl *kanidmclient.Client, name string) error {
	secretName := name + "-kanidm-service-account-credentials"
	var secret corev1.Secret
	err := r.Client.Get(ctx, types.NamespacedName{Namespace: sa.Namespace, Name: secretName}, &secret)
	if err != nil && !apierrors.IsNotFound(err) {
		return k8sutil.Wrap(err, k8sutil.KindKube, "get password secret "+secretName)
	}
	hasSecret := err == nil

	enabled := sa.Spec.PasswordRotation != nil && sa.Spec.PasswordRotation.Enabled
	periodDays := int32(0)
	if sa.Spec.PasswordRotation != nil {
		periodDays = sa.Spec.PasswordRotation.PeriodDays
	}

	if hasSecret && !rotation.NeedsRotation(&secret, enabled, periodDays, now()) {
		return nil
	}

	password, err := cl.GeneratePassword(ctx, name)
	if err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "generate password")
	}

	newSecret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      secretName,
			Namespace: sa.Namespace,
		},
		Type: corev1.SecretTypeOpaque,
		Data: map[string][]byte{"password": []byte(password)},
	}
	rotation.Annotate(newSecret, enabled, periodDays, now())
	if err := render.Apply(ctx, r.Client, sa, newSecret, r.Client.Scheme()); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKube, "apply password secret "+secretName)
	}
	return nil
}

// now is overridden in tests; production always uses the wall clock.
var now = time.Now
