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

package kanidmclient

import (
	"context"
	"fmt"
	"net/http"
)

// Entry mirrors the Kanidm JSON entry shape closely enough for the operator's
// purposes: a flat attribute map, keyed by attribute name, each value a string
// list (Kanidm's internal entry representation is multi-valued per attribute).
type Entry struct {
	Attrs map[string][]string `json:"attrs"`
}

// GetGroup fetches a group entry by name. Returns IsNotFound(err) == true if absent.
func (c *Client) GetGroup(ctx context.Context, name string) (*Entry, error) {
	return c.getEntry(ctx, "/v1/group/"+name)
}

// GetPerson fetches a person entry by name.
func (c *Client) GetPerson(ctx context.Context, name string) (*Entry, error) {
	return c.getEntry(ctx, "/v1/person/"+name)
}

// GetServiceAccount fetches a service account entry by name.
func (c *Client) GetServiceAccount(ctx context.Context, name string) (*Entry, error) {
	return c.getEntry(ctx, "/v1/service_account/"+name)
}

// GetOAuth2Client fetches an OAuth2 resource-server entry by name.
func (c *Client) GetOAuth2Client(ctx context.Context, name string) (*Entry, error) {
	return c.getEntry(ctx, "/v1/oauth2/"+name)
}

func (c *Client) getEntry(ctx context.Context, path string) (*Entry, error) {
	var resp struct {
		Attrs map[string][]string `json:"attrs"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, "", &resp); err != nil {
		return nil, err
	}
	return &Entry{Attrs: resp.Attrs}, nil
}

// CreateGroup creates a group entry with the given name.
func (c *Client) CreateGroup(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/v1/group", map[string]any{"attrs": map[string][]string{"name": {name}}}, "", nil)
}

// CreatePerson creates a person entry with the given name and display name.
func (c *Client) CreatePerson(ctx context.Context, name, displayName string) error {
	return c.do(ctx, http.MethodPost, "/v1/person", map[string]any{
		"attrs": map[string][]string{"name": {name}, "displayname": {displayName}},
	}, "", nil)
}

// CreateServiceAccount creates a service account entry.
func (c *Client) CreateServiceAccount(ctx context.Context, name, displayName, entryManagedBy string) error {
	return c.do(ctx, http.MethodPost, "/v1/service_account", map[string]any{
		"attrs": map[string][]string{"name": {name}, "displayname": {displayName}, "entry_managed_by": {entryManagedBy}},
	}, "", nil)
}

// SetAttrs replaces the given attributes on an existing entry of kind kindPath
// ("group", "person", "service_account", "oauth2").
func (c *Client) SetAttrs(ctx context.Context, kindPath, name string, attrs map[string][]string) error {
	path := fmt.Sprintf("/v1/%s/%s/_attr", kindPath, name)
	return c.do(ctx, http.MethodPut, path, attrs, "", nil)
}

// DeleteEntry deletes an entry by kind and name.
func (c *Client) DeleteEntry(ctx context.Context, kindPath, name string) error {
	path := fmt.Sprintf("/v1/%s/%s", kindPath, name)
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

// OAuth2Basic is the client_id/client_secret pair returned for a confidential client.
type OAuth2Basic struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// CreateOAuth2Client registers a new OAuth2 resource server.
func (c *Client) CreateOAuth2Client(ctx context.Context, name, displayName, origin string, public bool) error {
	path := "/v1/oauth2/_basic"
	if public {
		path = "/v1/oauth2/_public"
	}
	return c.do(ctx, http.MethodPost, path, map[string]any{
		"name": name, "displayname": displayName, "origin": origin,
	}, "", nil)
}

// GetOAuth2Basic reads the confidential client secret.
func (c *Client) GetOAuth2Basic(ctx context.Context, name string) (*OAuth2Basic, error) {
	var resp OAuth2Basic
	if err := c.do(ctx, http.MethodGet, "/v1/oauth2/"+name+"/_basic_secret", nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetOAuth2RedirectURLs replaces the redirect URL list.
func (c *Client) SetOAuth2RedirectURLs(ctx context.Context, name string, urls []string) error {
	return c.do(ctx, http.MethodPut, "/v1/oauth2/"+name+"/_attr/oauth2_rs_origin_landing", urls, "", nil)
}

// SetOAuth2ScopeMap upserts the scope map entry for group.
func (c *Client) SetOAuth2ScopeMap(ctx context.Context, name, group string, scopes []string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/oauth2/%s/_scopemap/%s", name, group), scopes, "", nil)
}

// SetOAuth2SupScopeMap upserts the supplemental scope map entry for group.
func (c *Client) SetOAuth2SupScopeMap(ctx context.Context, name, group string, scopes []string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/oauth2/%s/_sup_scopemap/%s", name, group), scopes, "", nil)
}

// SetOAuth2ClaimMap upserts a claim map entry.
func (c *Client) SetOAuth2ClaimMap(ctx context.Context, name, claim, group string, values []string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/oauth2/%s/_claimmap/%s/%s", name, claim, group), values, "", nil)
}

// SetOAuth2ClaimJoin sets the join strategy for a claim.
func (c *Client) SetOAuth2ClaimJoin(ctx context.Context, name, claim, joinStrategy string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/oauth2/%s/_claimmap/%s/_join/%s", name, claim, joinStrategy), nil, "", nil)
}

// SetOAuth2Flags toggles PKCE/legacy-crypto/short-username/localhost-redirect flags.
func (c *Client) SetOAuth2Flags(ctx context.Context, name string, disablePkce, legacyCrypto, shortUsername, localhostRedirects bool) error {
	attrs := map[string]bool{
		"oauth2_allow_insecure_client_disable_pkce": disablePkce,
		"oauth2_jwt_legacy_crypto_enable":           legacyCrypto,
		"oauth2_prefer_short_username":              shortUsername,
		"oauth2_rs_enable_localhost_redirects":      localhostRedirects,
	}
	for attr, enabled := range attrs {
		path := fmt.Sprintf("/v1/oauth2/%s/_attr/%s", name, attr)
		if enabled {
			if err := c.do(ctx, http.MethodPost, path, []string{"true"}, "", nil); err != nil {
				return err
			}
		} else {
			if err := c.do(ctx, http.MethodDelete, path, nil, "", nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// UploadOAuth2Image uploads image bytes as the client's display image.
func (c *Client) UploadOAuth2Image(ctx context.Context, name string, contentType string, data []byte) error {
	return c.do(ctx, http.MethodPost, "/v1/oauth2/"+name+"/_image", map[string]any{
		"contentType": contentType,
		"data":        data,
	}, "", nil)
}

// CreateAPIToken creates a new API token for a service account and returns the
// signed token string.
func (c *Client) CreateAPIToken(ctx context.Context, saName, label string, readWrite bool, expiresAt *string) (string, error) {
	body := map[string]any{"label": label, "read_write": readWrite}
	if expiresAt != nil {
		body["expiry"] = *expiresAt
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/service_account/"+saName+"/_api_token", body, "", &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ListAPITokens lists the (label, tokenID) pairs currently issued for a service
// account.
func (c *Client) ListAPITokens(ctx context.Context, saName string) ([]APITokenInfo, error) {
	var resp []APITokenInfo
	if err := c.do(ctx, http.MethodGet, "/v1/service_account/"+saName+"/_api_token", nil, "", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// APITokenInfo is a single issued token's metadata (no secret material).
type APITokenInfo struct {
	TokenID string `json:"token_id"`
	Label   string `json:"label"`
}

// DeleteAPIToken revokes a previously-issued token by id.
func (c *Client) DeleteAPIToken(ctx context.Context, saName, tokenID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/service_account/"+saName+"/_api_token/"+tokenID, nil, "", nil)
}

// GeneratePassword asks Kanidm to generate (or reset) a service account's password
// and returns it.
func (c *Client) GeneratePassword(ctx context.Context, saName string) (string, error) {
	var resp struct {
		Password string `json:"password"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/service_account/"+saName+"/_credential/_generate", nil, "", &resp); err != nil {
		return "", err
	}
	return resp.Password, nil
}
