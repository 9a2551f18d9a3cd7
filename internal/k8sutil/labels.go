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

import "fmt"

const (
	LabelAppName      = "app.kubernetes.io/name"
	LabelManagedBy    = "app.kubernetes.io/managed-by"
	LabelInstance     = "app.kubernetes.io/instance"
	LabelCluster      = "kanidm.kaniop.rs/cluster"
	LabelReplicaGroup = "kanidm.kaniop.rs/replica-group"
	LabelReplica      = "kanidm.kaniop.rs/replica"

	// LabelSecretType marks replica-certificate Secrets.
	LabelSecretType      = "secretType"
	SecretTypeReplicaCert = "replicaCert"
)

// ManagedByValue renders the value carried by every object this operator owns.
func ManagedByValue(controllerID string) string {
	return fmt.Sprintf("kaniop-%s", controllerID)
}

// ManagedLabels returns the standard label set applied to every managed
// object: name, managed-by, instance, plus the owning cluster name.
func ManagedLabels(controllerID, instanceName, clusterName string) map[string]string {
	labels := map[string]string{
		LabelAppName:   "kanidm",
		LabelManagedBy: ManagedByValue(controllerID),
		LabelInstance:  instanceName,
	}
	if clusterName != "" {
		labels[LabelCluster] = clusterName
	}
	return labels
}

// ManagedBySelector is the label selector every reflector watch uses to
// restrict its list-watch to objects this controller owns.
func ManagedBySelector(controllerID string) string {
	return fmt.Sprintf("%s=%s", LabelManagedBy, ManagedByValue(controllerID))
}
