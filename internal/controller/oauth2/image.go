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
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
)

// maxImageBytes caps the image this operator will download and upload on an
// OAuth2 client's behalf, at 256 KiB.
const maxImageBytes = 256 * 1024

// fetchImage downloads url, enforcing the size cap, and returns its bytes
// alongside a best-guess content type.
func fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", k8sutil.Wrap(err, k8sutil.KindHTTP, "build image request")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", k8sutil.Wrap(err, k8sutil.KindHTTP, "fetch image")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, "", k8sutil.New(k8sutil.KindHTTP, "image fetch returned an error status")
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", k8sutil.Wrap(err, k8sutil.KindHTTP, "read image body")
	}
	if len(data) > maxImageBytes {
		return nil, "", k8sutil.New(k8sutil.KindImage, "image exceeds 256 KiB cap")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		if ext := path.Ext(url); ext != "" {
			contentType = mime.TypeByExtension(ext)
		}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

// fingerprint returns the SHA-256 hex digest of data, used to skip re-uploading
// an image that has not changed.
func fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
