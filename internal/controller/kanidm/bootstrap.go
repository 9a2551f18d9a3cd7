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
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
)

// recoverAccountResult is the last JSON line emitted by
// `kanidmd recover-account --output json`.
type recoverAccountResult struct {
	Password string `json:"password"`
}

// RecoverAccount execs `kanidmd recover-account --name <user> --output json`
// inside podName and returns the generated password, by parsing only the
// *last* line of the combined stdout as JSON. This is deliberately fragile:
// kanidmd also logs plain-text banner lines to stdout before the JSON
// result, so anything but "last line" parsing breaks on verbose log levels.
//
// TODO: switch to --output-file once kanidmd supports it, to stop depending on
// stdout framing at all.
func RecoverAccount(ctx context.Context, restConfig *rest.Config, clientset kubernetes.Interface, namespace, podName, container, user string) (string, error) {
	cmd := []string{"kanidmd", "recover-account", "--name", user, "--output", "json"}

	req := clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Name(podName).
		Namespace(namespace).
		SubResource("exec")
	req.VersionedParams(&corev1.PodExecOptions{
		Container: container,
		Command:   cmd,
		Stdout:    true,
		Stderr:    true,
	}, scheme.ParameterCodec)

	executor, err := remotecommand.NewSPDYExecutor(restConfig, "POST", req.URL())
	if err != nil {
		return "", k8sutil.Wrap(err, k8sutil.KindKubeExec, "build exec executor")
	}

	var stdout, stderr bytes.Buffer
	err = executor.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return "", k8sutil.Wrap(err, k8sutil.KindKubeExec, fmt.Sprintf("recover-account exec failed: %s", stderr.String()))
	}

	lastLine, err := lastNonEmptyLine(stdout.String())
	if err != nil {
		return "", k8sutil.Wrap(err, k8sutil.KindParse, "recover-account produced no output")
	}

	var result recoverAccountResult
	if err := json.Unmarshal([]byte(lastLine), &result); err != nil {
		return "", k8sutil.Wrap(err, k8sutil.KindParse, "recover-account last line is not valid JSON: "+lastLine)
	}
	if result.Password == "" {
		return "", k8sutil.New(k8sutil.KindParse, "recover-account JSON output had an empty password")
	}
	return result.Password, nil
}

func lastNonEmptyLine(output string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	last := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			last = line
		}
	}
	if last == "" {
		return "", fmt.Errorf("empty output")
	}
	return last, nil
}

// AdminPasswordSecretName is the name of the Secret holding the admin/idm_admin
// bootstrap passwords for a Kanidm instance.
func AdminPasswordSecretName(instanceName string) string {
	return instanceName + "-admin-passwords"
}

// AdminPasswordSecret builds the Secret object carrying both recovered
// passwords, owned by the Kanidm instance.
func AdminPasswordSecret(namespace, instanceName string, passwords map[string]string) *corev1.Secret {
	data := make(map[string][]byte, len(passwords))
	for user, pass := range passwords {
		data[user] = []byte(pass)
	}
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      AdminPasswordSecretName(instanceName),
			Namespace: namespace,
		},
		Type: corev1.SecretTypeOpaque,
		Data: data,
	}
}
