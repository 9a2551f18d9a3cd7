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

// Package k8sutil holds small helpers shared by every controller: the error
// taxonomy, label/annotation conventions, condition bookkeeping, and SPN
// comparison.
package k8sutil

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is a coarse error taxonomy. It is not a type name hierarchy, just a
// tag carried alongside a wrapped cause so telemetry can bucket failures.
type Kind string

const (
	KindKanidmClient Kind = "KanidmClient"
	KindKube         Kind = "Kube"
	KindKubeExec     Kind = "KubeExec"
	KindFinalizer    Kind = "Finalizer"
	KindMissingData  Kind = "MissingData"
	KindMissingObject Kind = "MissingObject"
	KindParse        Kind = "Parse"
	KindHTTP         Kind = "HTTP"
	KindImage        Kind = "Image"
)

// Error is a tagged error carrying a Kind and a wrapped cause; Unwrap preserves
// errors.Is/As and github.com/pkg/errors Cause() chaining.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Cause() error {
	return e.cause
}

// New builds an error of the given Kind whose cause is a new error carrying msg.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, cause: errors.New(msg)}
}

// Wrap tags cause with kind, preserving its chain.
func Wrap(cause error, kind Kind, msg string) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, cause: errors.Wrap(cause, msg)}
}

// Wrapf is like Wrap with a format string.
func Wrapf(cause error, kind Kind, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, cause: errors.Wrapf(cause, format, args...)}
}

// KindOf returns the Kind tag of err, if err (or something in its chain) is an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsTransient reports whether err should be retried by the reconciler harness
// rather than surfaced as a fatal Kubernetes Event.
func IsTransient(err error) bool {
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	switch kind {
	case KindMissingObject, KindKube, KindKubeExec:
		return true
	default:
		return false
	}
}
