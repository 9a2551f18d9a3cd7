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

// Package v1 contains the Kanidm cluster custom resource, API group kaniop.rs/v1.
package v1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ReplicaRole is the role a replica group plays in a Kanidm topology.
// +kubebuilder:validation:Enum=WriteReplica;ReadReplica
type ReplicaRole string

const (
	ReplicaRoleWrite ReplicaRole = "WriteReplica"
	ReplicaRoleRead  ReplicaRole = "ReadReplica"
)

// ReplicaGroup describes one StatefulSet worth of Kanidm pods.
type ReplicaGroup struct {
	// Name of the replica group, used as a suffix for derived object names.
	Name string `json:"name"`
	// Replicas is the desired pod count for this group.
	// +kubebuilder:validation:Minimum=0
	Replicas int32 `json:"replicas"`
	// Role this group plays in the topology.
	// +kubebuilder:default=WriteReplica
	Role ReplicaRole `json:"role,omitempty"`
	// Primary marks the node that owns the write-replica primary role.
	Primary bool `json:"primaryNode,omitempty"`
	// NodeSelector constrains pod scheduling for this group.
	NodeSelector map[string]string `json:"nodeSelector,omitempty"`
	// Tolerations constrains pod scheduling for this group.
	Tolerations []corev1.Toleration `json:"tolerations,omitempty"`
	// Affinity constrains pod scheduling for this group.
	Affinity *corev1.Affinity `json:"affinity,omitempty"`
	// Resources requested/limited for the kanidm container.
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`
}

// StorageType selects how Kanidm pod storage is provisioned.
// +kubebuilder:validation:Enum=EmptyDir;Ephemeral;PersistentVolumeClaim
type StorageType string

const (
	StorageTypeEmptyDir  StorageType = "EmptyDir"
	StorageTypeEphemeral StorageType = "Ephemeral"
	StorageTypePVC       StorageType = "PersistentVolumeClaim"
)

// StorageSpec selects exactly one of the supported storage backings.
type StorageSpec struct {
	// Type selects which of the fields below is used.
	Type StorageType `json:"type"`
	// EmptyDir is used when Type is EmptyDir.
	EmptyDir *corev1.EmptyDirVolumeSource `json:"emptyDir,omitempty"`
	// Ephemeral is used when Type is Ephemeral.
	Ephemeral *corev1.EphemeralVolumeSource `json:"ephemeral,omitempty"`
	// VolumeClaimTemplate is used when Type is PersistentVolumeClaim.
	VolumeClaimTemplate *corev1.PersistentVolumeClaimSpec `json:"volumeClaimTemplate,omitempty"`
}

// IngressSpec configures the optional Ingress fronting the Kanidm Service.
type IngressSpec struct {
	// Enabled turns on Ingress rendering.
	Enabled bool `json:"enabled,omitempty"`
	// IngressClassName selects the ingress controller.
	IngressClassName *string `json:"ingressClassName,omitempty"`
	// ExtraTLSHosts are additional SAN hosts merged into the TLS block alongside Domain.
	ExtraTLSHosts []string `json:"extraTlsHosts,omitempty"`
	// Annotations propagated onto the Ingress object.
	Annotations map[string]string `json:"annotations,omitempty"`
	// TLSSecretName names the Secret holding the ingress TLS certificate.
	TLSSecretName *string `json:"tlsSecretName,omitempty"`
}

// ServiceSpec configures the primary Kanidm Service.
type ServiceSpec struct {
	// Type of Service to render; defaults to ClusterIP.
	// +kubebuilder:default=ClusterIP
	Type corev1.ServiceType `json:"type,omitempty"`
	// Annotations propagated onto the Service object.
	Annotations map[string]string `json:"annotations,omitempty"`
	// EnableLdaps additionally exposes port 3636.
	EnableLdaps bool `json:"enableLdaps,omitempty"`
}

// KanidmSpec is the desired state of a Kanidm cluster.
type KanidmSpec struct {
	// Domain is the Kanidm server's public domain name; also used as the primary
	// ingress host and TLS SAN.
	// +kubebuilder:validation:Required
	Domain string `json:"domain"`
	// Image is the container image reference for the kanidm server.
	Image string `json:"image"`
	// ReplicaGroups describes the StatefulSets to render.
	// +kubebuilder:validation:MinItems=1
	ReplicaGroups []ReplicaGroup `json:"replicaGroups"`
	// Storage selects pod storage for all replica groups.
	Storage StorageSpec `json:"storage,omitempty"`
	// Service configures the primary Service.
	Service ServiceSpec `json:"service,omitempty"`
	// Ingress optionally fronts the Service.
	Ingress IngressSpec `json:"ingress,omitempty"`
	// ExternalReplicationNodes lists replication endpoints outside this cluster;
	// when non-empty, per-replica LoadBalancer Services are additionally rendered.
	ExternalReplicationNodes []string `json:"externalReplicationNodes,omitempty"`
	// LogLevel sets KANIDM_LOG_LEVEL on the kanidm container.
	// +kubebuilder:default=info
	LogLevel string `json:"logLevel,omitempty"`
	// ExtraContainers are strategic-merged by name into the pod template.
	ExtraContainers []corev1.Container `json:"extraContainers,omitempty"`
	// ExtraInitContainers are strategic-merged by name into the pod template.
	ExtraInitContainers []corev1.Container `json:"extraInitContainers,omitempty"`
	// NamespaceSelector gates which namespaces may target this cluster via kanidmRef.
	NamespaceSelector *metav1.LabelSelector `json:"namespaceSelector,omitempty"`
}

// KanidmConditionType enumerates the condition types set on Kanidm.status.conditions.
type KanidmConditionType string

const (
	KanidmConditionReady       KanidmConditionType = "Ready"
	KanidmConditionProgressing KanidmConditionType = "Progressing"
)

// KanidmStatus is the observed state of a Kanidm cluster.
type KanidmStatus struct {
	// ObservedGeneration is the generation last reconciled.
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
	// Replicas is the sum of status.replicas over every replica group's StatefulSet.
	Replicas int32 `json:"replicas,omitempty"`
	// AvailableReplicas is the sum of status.availableReplicas over every replica group's StatefulSet.
	AvailableReplicas int32 `json:"availableReplicas,omitempty"`
	// UpdatedReplicas is the sum of status.updatedReplicas over every replica group's StatefulSet.
	UpdatedReplicas int32 `json:"updatedReplicas,omitempty"`
	// UnavailableReplicas is Replicas - AvailableReplicas.
	UnavailableReplicas int32 `json:"unavailableReplicas,omitempty"`
	// Conditions is the standard condition list; see KanidmConditionType.
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// Kanidm is the Schema for the kanidms API.
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Domain",type=string,JSONPath=`.spec.domain`
// +kubebuilder:printcolumn:name="Ready",type=string,JSONPath=`.status.conditions[?(@.type=="Ready")].status`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`
type Kanidm struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   KanidmSpec   `json:"spec,omitempty"`
	Status KanidmStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true
type KanidmList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Kanidm `json:"items"`
}

// GetConditions implements k8sutil.ConditionedObject.
func (in *Kanidm) GetConditions() *[]metav1.Condition {
	return &in.Status.Conditions
}
