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

import corev1 "k8s.io/api/core/v1"

// MergeContainersByName strategic-merges extra into base by container name:
// a name present in both replaces the base entry wholesale (the operator does
// not attempt a field-by-field JSON merge patch beyond the container
// boundary), a name only in extra is appended, and base order is preserved
// for everything not overridden.
//
// Grounded on the by-name container lookup idiom in the pack's konflux-ci
// deployment_helpers.go (GetContainerByName); this generalizes that lookup
// into a merge of two full lists instead of searching one.
func MergeContainersByName(base []corev1.Container, extra []corev1.Container) []corev1.Container {
	index := make(map[string]int, len(base))
	out := make([]corev1.Container, len(base))
	copy(out, base)
	for i, c := range out {
		index[c.Name] = i
	}
	for _, c := range extra {
		if i, ok := index[c.Name]; ok {
			out[i] = c
			continue
		}
		index[c.Name] = len(out)
		out = append(out, c)
	}
	return out
}
