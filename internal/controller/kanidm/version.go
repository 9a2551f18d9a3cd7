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

package kanidm

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
)

// KanidmClientVersion is the Kanidm server version this operator build was
// compiled against. A server image is only known-compatible when its major
// version matches exactly and its minor version does not exceed this one;
// the client can always talk to an older-or-equal-minor server within the
// same major line, but cannot promise anything once the server runs ahead.
const KanidmClientVersion = "1.8.6"

// imageTag extracts the tag portion of an image reference
// ("registry/repo:tag" -> "tag"; no tag -> "").
func imageTag(image string) string {
	lastSlash := strings.LastIndex(image, "/")
	ref := image
	if lastSlash >= 0 {
		ref = image[lastSlash+1:]
	}
	idx := strings.LastIndex(ref, ":")
	if idx < 0 {
		return ""
	}
	return ref[idx+1:]
}

// CheckUpgradeCompatible verifies that desiredImage's tag is a server version
// this operator build knows how to drive: same major as KanidmClientVersion,
// minor no greater than it. Non-semver tags (e.g. "latest", a git sha) are not
// gated: the operator cannot reason about them, so it defers to the user.
func CheckUpgradeCompatible(desiredImage string) error {
	desiredTag := imageTag(desiredImage)
	if desiredTag == "" {
		return nil
	}
	desired, err := semver.NewVersion(desiredTag)
	if err != nil {
		return nil
	}
	client, err := semver.NewVersion(KanidmClientVersion)
	if err != nil {
		return nil
	}
	if desired.Major() != client.Major() {
		return k8sutil.New(k8sutil.KindImage, "server image "+desiredTag+" major version does not match operator's client version "+KanidmClientVersion)
	}
	if desired.Minor() > client.Minor() {
		return k8sutil.New(k8sutil.KindImage, "server image "+desiredTag+" is newer than operator's client version "+KanidmClientVersion)
	}
	return nil
}
