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

// Package render builds the Kubernetes objects owned by a Kanidm instance
// (StatefulSet, Service, Ingress) from its desired
// state. The apply step that follows takes these caller-rendered objects and
// server-side-applies them; render supplies the objects that step consumes.
// Container-list shaping borrows the by-name-lookup idiom from
// konflux-ci's deployment_helpers.go (GetContainerByName), generalized here
// to a merge rather than a pure lookup.
package render

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	kaniopv1 "github.com/pando85/kaniop-sub001/api/v1"
	"github.com/pando85/kaniop-sub001/internal/k8sutil"
)

const (
	ldapPort  = 3636
	httpsPort = 8443
)

// labelsFor returns the managed-by/instance/cluster label set for every object
// owned by a Kanidm instance.
func labelsFor(controllerID string, kanidm *kaniopv1.Kanidm, replicaGroup string) map[string]string {
	l := k8sutil.ManagedLabels(controllerID, kanidm.Name, kanidm.Name)
	if replicaGroup != "" {
		l[k8sutil.LabelReplicaGroup] = replicaGroup
	}
	return l
}

// StatefulSet renders the StatefulSet for one replica group of a Kanidm
// instance.
func StatefulSet(controllerID string, kanidm *kaniopv1.Kanidm, rg kaniopv1.ReplicaGroup) *appsv1.StatefulSet {
	name := statefulSetName(kanidm.Name, rg.Name)
	labels := labelsFor(controllerID, kanidm, rg.Name)

	containers := []corev1.Container{
		{
			Name:  "kanidmd",
			Image: kanidm.Spec.Image,
			Ports: []corev1.ContainerPort{
				{Name: "https", ContainerPort: httpsPort},
				{Name: "ldap", ContainerPort: ldapPort},
			},
			VolumeMounts: []corev1.VolumeMount{
				{Name: "data", MountPath: "/data"},
			},
		},
	}
	containers = MergeContainersByName(containers, kanidm.Spec.ExtraContainers)
	initContainers := MergeContainersByName(nil, kanidm.Spec.ExtraInitContainers)

	sts := &appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: kanidm.Namespace,
			Labels:    labels,
		},
		Spec: appsv1.StatefulSetSpec{
			ServiceName: name,
			Replicas:    int32Ptr(rg.Replicas),
			Selector:    &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					InitContainers: initContainers,
					Containers:     containers,
				},
			},
		},
	}

	switch kanidm.Spec.Storage.Type {
	case kaniopv1.StorageTypePVC:
		tmpl := kanidm.Spec.Storage.VolumeClaimTemplate
		if tmpl == nil {
			tmpl = &corev1.PersistentVolumeClaimSpec{
				AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			}
		}
		sts.Spec.VolumeClaimTemplates = []corev1.PersistentVolumeClaim{
			{
				ObjectMeta: metav1.ObjectMeta{Name: "data", Labels: labels},
				Spec:       *tmpl,
			},
		}
	case kaniopv1.StorageTypeEphemeral:
		ephemeral := kanidm.Spec.Storage.Ephemeral
		if ephemeral == nil {
			ephemeral = &corev1.EphemeralVolumeSource{}
		}
		sts.Spec.Template.Spec.Volumes = append(sts.Spec.Template.Spec.Volumes, corev1.Volume{
			Name:         "data",
			VolumeSource: corev1.VolumeSource{Ephemeral: ephemeral},
		})
	default:
		emptyDir := kanidm.Spec.Storage.EmptyDir
		if emptyDir == nil {
			emptyDir = &corev1.EmptyDirVolumeSource{}
		}
		sts.Spec.Template.Spec.Volumes = append(sts.Spec.Template.Spec.Volumes, corev1.Volume{
			Name:         "data",
			VolumeSource: corev1.VolumeSource{EmptyDir: emptyDir},
		})
	}

	return sts
}

// Service renders the service fronting one replica group: ClusterIP unless
// spec.service.type names another type.
func Service(controllerID string, kanidm *kaniopv1.Kanidm, rg kaniopv1.ReplicaGroup) *corev1.Service {
	name := statefulSetName(kanidm.Name, rg.Name)
	labels := labelsFor(controllerID, kanidm, rg.Name)
	svcType := corev1.ServiceTypeClusterIP
	if kanidm.Spec.Service.Type != "" {
		svcType = kanidm.Spec.Service.Type
	}
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: kanidm.Namespace,
			Labels:    labels,
		},
		Spec: corev1.ServiceSpec{
			Selector: labels,
			Type:     svcType,
			Ports: []corev1.ServicePort{
				{Name: "https", Port: httpsPort, TargetPort: intstr.FromString("https")},
				{Name: "ldap", Port: ldapPort, TargetPort: intstr.FromString("ldap")},
			},
		},
	}
}

// Ingress renders the Ingress exposing the Kanidm instance's HTTPS endpoint,
// or nil if the spec does not request one.
func Ingress(controllerID string, kanidm *kaniopv1.Kanidm) *networkingv1.Ingress {
	if !kanidm.Spec.Ingress.Enabled {
		return nil
	}
	labels := labelsFor(controllerID, kanidm, "")
	pathType := networkingv1.PathTypePrefix
	serviceName := kanidm.Name
	hosts := append([]string{kanidm.Spec.Domain}, kanidm.Spec.Ingress.ExtraTLSHosts...)
	var tlsSecretName string
	if kanidm.Spec.Ingress.TLSSecretName != nil {
		tlsSecretName = *kanidm.Spec.Ingress.TLSSecretName
	}
	return &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{
			Name:        kanidm.Name,
			Namespace:   kanidm.Namespace,
			Labels:      labels,
			Annotations: kanidm.Spec.Ingress.Annotations,
		},
		Spec: networkingv1.IngressSpec{
			IngressClassName: kanidm.Spec.Ingress.IngressClassName,
			TLS: []networkingv1.IngressTLS{
				{Hosts: hosts, SecretName: tlsSecretName},
			},
			Rules: []networkingv1.IngressRule{
				{
					Host: kanidm.Spec.Domain,
					IngressRuleValue: networkingv1.IngressRuleValue{
						HTTP: &networkingv1.HTTPIngressRuleValue{
							Paths: []networkingv1.HTTPIngressPath{
								{
									Path:     "/",
									PathType: &pathType,
									Backend: networkingv1.IngressBackend{
										Service: &networkingv1.IngressServiceBackend{
											Name: serviceName,
											Port: networkingv1.ServiceBackendPort{Name: "https"},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func statefulSetName(instance, replicaGroup string) string {
	if replicaGroup == "" {
		return instance
	}
	return fmt.Sprintf("%s-%s", instance, replicaGroup)
}

func int32Ptr(v int32) *int32 { return &v }
