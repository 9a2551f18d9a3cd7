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

// Package kanidmclient is a minimal HTTP client for the Kanidm server API (groups,
// person accounts, OAuth2 clients, service accounts, API tokens) plus the
// per-cluster client cache in cache.go. No Go SDK for Kanidm exists anywhere
// nearby, so this package is a deliberate stdlib net/http implementation (see
// DESIGN.md for the standard-library justification).
package kanidmclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
)

// connectTimeout bounds the initial TCP connect to the Kanidm server.
const connectTimeout = 5 * time.Second

// User selects which privileged account a Client authenticates as.
type User string

const (
	UserAdmin    User = "admin"
	UserIdmAdmin User = "idm_admin"
)

// Client is a thin authenticated HTTP client to one Kanidm cluster's API.
//
// accept-invalid-certs is intentional: the server presents an
// operator-issued certificate the client does not pin.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient builds (but does not yet authenticate) a Client for
// https://<name>.<namespace>.svc:8443.
func NewClient(name, namespace string) *Client {
	baseURL := fmt.Sprintf("https://%s.%s.svc:8443", name, namespace)
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // operator-issued cert, not pinned to a CA bundle
		DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}
}

// Authenticate performs a simple-password bind as user, storing the resulting
// bearer token for subsequent requests.
func (c *Client) Authenticate(ctx context.Context, user User, password string) error {
	body := map[string]any{
		"step": map[string]any{
			"init": string(user),
		},
	}
	var initResp struct {
		SessionID string `json:"sessionid"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/auth", body, "", &initResp); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "auth init failed")
	}

	passBody := map[string]any{
		"step": map[string]any{
			"cred": map[string]any{"password": password},
		},
	}
	var passResp struct {
		State struct {
			Success struct {
				Token string `json:"token"`
			} `json:"success"`
		} `json:"state"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/auth", passBody, initResp.SessionID, &passResp); err != nil {
		return k8sutil.Wrap(err, k8sutil.KindKanidmClient, "auth credential step failed")
	}
	if passResp.State.Success.Token == "" {
		return k8sutil.New(k8sutil.KindKanidmClient, "authentication did not yield a bearer token")
	}
	c.token = passResp.State.Success.Token
	return nil
}

// AuthValid is a cheap validity probe: a lightweight authenticated call that
// succeeds only if the cached token is still good.
func (c *Client) AuthValid(ctx context.Context) bool {
	if c.token == "" {
		return false
	}
	var whoami any
	err := c.do(ctx, http.MethodGet, "/v1/self", nil, "", &whoami)
	return err == nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, sessionID string, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if sessionID != "" {
		req.Header.Set("X-KANIDM-AUTH-SESSION-ID", sessionID)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return &httpStatusError{code: resp.StatusCode, body: string(data)}
	}
	if out == nil {
		return nil
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// httpStatusError carries the HTTP status so callers can distinguish transient
// conflicts (409-equivalent) from fatal validation errors.
type httpStatusError struct {
	code int
	body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("kanidm api returned %d: %s", e.code, e.body)
}

// IsConflict reports whether err represents a 409 Conflict, treated as transient on
// create.
func IsConflict(err error) bool {
	var se *httpStatusError
	return stderrors.As(err, &se) && se.code == http.StatusConflict
}

// IsNotFound reports whether err represents a 404 Not Found.
func IsNotFound(err error) bool {
	var se *httpStatusError
	return stderrors.As(err, &se) && se.code == http.StatusNotFound
}

// IsFatalValidation reports whether err is a fatal 4xx (other than 404/409) that
// should be surfaced as a Warning Event rather than retried silently.
func IsFatalValidation(err error) bool {
	var se *httpStatusError
	return stderrors.As(err, &se) && se.code >= 400 && se.code < 500 && se.code != http.StatusNotFound && se.code != http.StatusConflict
}
