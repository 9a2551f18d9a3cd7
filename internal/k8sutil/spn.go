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

import "strings"

// SPNMatches reports whether name refers to the same principal as spn:
//
//	compare(name, spn) is true iff lower(name) ∈ {lower(spn), spn.split('@')[0]}
//
// name is typically a bare member name from a spec field; spn is the observed
// principal name returned by Kanidm, of the form "name@domain".
func SPNMatches(name, spn string) bool {
	lowerName := strings.ToLower(name)
	lowerSPN := strings.ToLower(spn)
	if lowerName == lowerSPN {
		return true
	}
	localPart, _, found := strings.Cut(lowerSPN, "@")
	return found && lowerName == localPart
}

// MembersMatch compares a desired member list against observed SPNs, applying
// SPNMatches pairwise and requiring the observed list be at least as long as
// the desired one (a shorter observed list can never be equal).
func MembersMatch(specMembers, observedSPNs []string) bool {
	if len(observedSPNs) < len(specMembers) {
		return false
	}
	for _, m := range specMembers {
		found := false
		for _, spn := range observedSPNs {
			if SPNMatches(m, spn) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
