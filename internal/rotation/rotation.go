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

// Package rotation implements the rotation-annotation-trio predicate and the
// annotation update performed after a secret's material is regenerated:
// an annotation recording when something was last applied, read back on the
// next reconcile to decide whether to act again, applied here to
// password/token regeneration instead of manifest re-apply.
package rotation

import (
	"strconv"
	"time"

	corev1 "k8s.io/api/core/v1"
)

const (
	// AnnotationEnabled toggles rotation on a managed Secret.
	AnnotationEnabled = "kaniop.rs/rotation-enabled"
	// AnnotationPeriodDays sets the rotation interval.
	AnnotationPeriodDays = "kaniop.rs/rotation-period-days"
	// AnnotationLastRotationTime records the last rotation's RFC3339 timestamp.
	AnnotationLastRotationTime = "kaniop.rs/rotation-last-rotation-time"
)

// NeedsRotation reports whether secret's credential should be regenerated
// this reconcile: due iff enabled and now - lastRotation >= period. A Secret
// with no last-rotation annotation is always due (it has never been rotated).
func NeedsRotation(secret *corev1.Secret, enabled bool, periodDays int32, now time.Time) bool {
	if !enabled || periodDays <= 0 {
		return false
	}
	last, ok := lastRotationTime(secret)
	if !ok {
		return true
	}
	return now.Sub(last) >= time.Duration(periodDays)*24*time.Hour
}

func lastRotationTime(secret *corev1.Secret) (time.Time, bool) {
	if secret == nil || secret.Annotations == nil {
		return time.Time{}, false
	}
	raw, ok := secret.Annotations[AnnotationLastRotationTime]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Annotate sets the rotation trio's bookkeeping annotations on secret,
// recording now as the last rotation time (called after a successful
// credential regeneration, atomically with the new secret data so a crash
// between the two never leaves period-due state pointing at stale data).
func Annotate(secret *corev1.Secret, enabled bool, periodDays int32, now time.Time) {
	if secret.Annotations == nil {
		secret.Annotations = map[string]string{}
	}
	if enabled {
		secret.Annotations[AnnotationEnabled] = "true"
	} else {
		delete(secret.Annotations, AnnotationEnabled)
	}
	if periodDays > 0 {
		secret.Annotations[AnnotationPeriodDays] = strconv.Itoa(int(periodDays))
	}
	secret.Annotations[AnnotationLastRotationTime] = now.Format(time.RFC3339)
}
