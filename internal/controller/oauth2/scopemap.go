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

package oauth2

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/pando85/kaniop-sub001/api/v1beta1"
)

// scopeMapFingerprint hashes the spec's scope/sup-scope/claim map state. Scope
// and claim maps are Kanidm sub-resources (posted per-group, per-claim) with
// no flat-attribute read-back in the entry GET response, so drift here is
// tracked against the last-applied spec hash rather than a live comparison.
func scopeMapFingerprint(oc *v1beta1.KanidmOAuth2Client) string {
	var b strings.Builder
	for _, sm := range sortedScopeMaps(oc.Spec.ScopeMap) {
		b.WriteString("scope:")
		b.WriteString(sm.Group)
		b.WriteString("=")
		b.WriteString(strings.Join(sortedStrings(sm.Scopes), ","))
		b.WriteString(";")
	}
	for _, sm := range sortedScopeMaps(oc.Spec.SupScopeMap) {
		b.WriteString("supscope:")
		b.WriteString(sm.Group)
		b.WriteString("=")
		b.WriteString(strings.Join(sortedStrings(sm.Scopes), ","))
		b.WriteString(";")
	}
	claims := append([]v1beta1.ClaimMap(nil), oc.Spec.ClaimMap...)
	sort.Slice(claims, func(i, j int) bool { return claims[i].Name < claims[j].Name })
	for _, cm := range claims {
		b.WriteString("claim:")
		b.WriteString(cm.Name)
		b.WriteString("/")
		b.WriteString(string(cm.JoinStrategy))
		groups := make([]string, 0, len(cm.ValuesByGroup))
		for group := range cm.ValuesByGroup {
			groups = append(groups, group)
		}
		sort.Strings(groups)
		for _, group := range groups {
			b.WriteString("/")
			b.WriteString(group)
			b.WriteString("=")
			b.WriteString(strings.Join(sortedStrings(cm.ValuesByGroup[group]), ","))
		}
		b.WriteString(";")
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func sortedScopeMaps(in []v1beta1.ScopeMap) []v1beta1.ScopeMap {
	out := append([]v1beta1.ScopeMap(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}

func sortedStrings(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
