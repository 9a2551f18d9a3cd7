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

package k8sutil

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ConditionedObject is implemented by every CR type's GetConditions accessor, letting the
// harness-agnostic helpers below operate generically over any kind's conditions array.
type ConditionedObject interface {
	GetConditions() *[]metav1.Condition
}

// SetCondition upserts a condition by Type using apimachinery's meta.SetStatusCondition
// semantics: LastTransitionTime only changes when Status actually flips. Kept here,
// rather than importing k8s.io/apimachinery/pkg/api/meta directly at every call site,
// so the Ready/Progressing mutual-exclusion rule can be layered
// on top in one place.
func SetCondition(obj ConditionedObject, condType string, status metav1.ConditionStatus, reason, message string, generation int64) {
	conditions := obj.GetConditions()
	existing := findCondition(*conditions, condType)
	newCond := metav1.Condition{
		Type:               condType,
		Status:             status,
		Reason:             reason,
		Message:            message,
		ObservedGeneration: generation,
	}
	if existing != nil && existing.Status == status {
		newCond.LastTransitionTime = existing.LastTransitionTime
	} else {
		newCond.LastTransitionTime = metav1.Now()
	}
	*conditions = upsertCondition(*conditions, newCond)
}

// RemoveCondition drops a condition type entirely, used for the Ready/Progressing
// mutual exclusion: "remove Ready while Progressing is true".
func RemoveCondition(obj ConditionedObject, condType string) {
	conditions := obj.GetConditions()
	out := make([]metav1.Condition, 0, len(*conditions))
	for _, c := range *conditions {
		if c.Type != condType {
			out = append(out, c)
		}
	}
	*conditions = out
}

// IsConditionTrue reports whether condType is present with status True.
func IsConditionTrue(obj ConditionedObject, condType string) bool {
	c := findCondition(*obj.GetConditions(), condType)
	return c != nil && c.Status == metav1.ConditionTrue
}

// AllConditionsTrue implements the "ready iff every condition is True" rule.
func AllConditionsTrue(obj ConditionedObject) bool {
	conditions := *obj.GetConditions()
	if len(conditions) == 0 {
		return false
	}
	for _, c := range conditions {
		if c.Status != metav1.ConditionTrue {
			return false
		}
	}
	return true
}

func findCondition(conditions []metav1.Condition, condType string) *metav1.Condition {
	for i := range conditions {
		if conditions[i].Type == condType {
			return &conditions[i]
		}
	}
	return nil
}

func upsertCondition(conditions []metav1.Condition, newCond metav1.Condition) []metav1.Condition {
	for i := range conditions {
		if conditions[i].Type == newCond.Type {
			conditions[i] = newCond
			return conditions
		}
	}
	return append(conditions, newCond)
}
