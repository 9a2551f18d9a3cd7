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
	"sync"

	"golang.org/x/sync/singleflight"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	types "k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/pando85/kaniop-sub001/internal/k8sutil"
)

// cacheKey identifies one cached authenticated Client.
type cacheKey struct {
	Namespace string
	Name      string
	User      User
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Namespace, k.Name, k.User)
}

// Cache is the per-(namespace, name, user) authenticated client cache.
// Lookup is read-locked and optimistic: an AuthValid probe against an
// already-cached client avoids re-authenticating on every reconcile.
// Authentication itself runs through a singleflight.Group, so concurrent
// reconciles of distinct Kanidm clusters never block each other, while
// concurrent reconciles of the *same* cluster+user collapse onto a single
// in-flight authentication attempt and share its result.
type Cache struct {
	kube client.Client

	mu      sync.RWMutex
	clients map[cacheKey]*Client

	group singleflight.Group
}

// NewCache builds an empty Cache. kube is used to resolve each cluster's
// "<name>-admin-passwords" Secret on first use.
func NewCache(kube client.Client) *Cache {
	return &Cache{
		kube:    kube,
		clients: make(map[cacheKey]*Client),
	}
}

// Get returns an authenticated Client for (namespace, name, user), reusing a
// cached one if its token is still valid, otherwise constructing and
// authenticating a fresh one.
func (c *Cache) Get(ctx context.Context, namespace, name string, user User) (*Client, error) {
	key := cacheKey{Namespace: namespace, Name: name, User: user}

	if cl, ok := c.snapshot(key); ok && cl.AuthValid(ctx) {
		return cl, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		// Another caller may have refreshed this entry while we waited to
		// join the singleflight group.
		if cl, ok := c.snapshot(key); ok && cl.AuthValid(ctx) {
			return cl, nil
		}

		password, err := c.resolvePassword(ctx, namespace, name, user)
		if err != nil {
			return nil, err
		}

		cl := NewClient(name, namespace)
		if err := cl.Authenticate(ctx, user, password); err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.clients[key] = cl
		c.mu.Unlock()

		return cl, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Client), nil
}

// Remove evicts any cached client for (namespace, name), under both roles: a
// password rotation or cluster deletion invalidates Admin and IdmAdmin alike.
func (c *Cache) Remove(namespace, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.clients, cacheKey{Namespace: namespace, Name: name, User: UserAdmin})
	delete(c.clients, cacheKey{Namespace: namespace, Name: name, User: UserIdmAdmin})
}

func (c *Cache) snapshot(key cacheKey) (*Client, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cl, ok := c.clients[key]
	return cl, ok
}

// resolvePassword reads the admin-password Secret for a Kanidm cluster and
// extracts the entry keyed by user's name.
func (c *Cache) resolvePassword(ctx context.Context, namespace, name string, user User) (string, error) {
	secretName := fmt.Sprintf("%s-admin-passwords", name)
	var secret corev1.Secret
	err := c.kube.Get(ctx, types.NamespacedName{Namespace: namespace, Name: secretName}, &secret)
	if apierrors.IsNotFound(err) {
		return "", k8sutil.New(k8sutil.KindMissingObject, "admin password secret "+secretName+" not found")
	}
	if err != nil {
		return "", k8sutil.Wrap(err, k8sutil.KindKube, "get admin password secret")
	}
	data, ok := secret.Data[string(user)]
	if !ok || len(data) == 0 {
		return "", k8sutil.New(k8sutil.KindMissingData, "admin password secret missing key "+string(user))
	}
	return string(data), nil
}
