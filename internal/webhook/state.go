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

package webhook

import (
	"sync/atomic"

	"github.com/pando85/kaniop-sub001/internal/store"
)

// State bundles the four label-filtered stores the webhook validates
// against: one reflector Store per domain kind. It carries no Kanidm client
// or kube client field — the duplicate check never needs to reach either,
// it only compares against the in-memory stores.
type State struct {
	GroupStore          *store.Store
	PersonStore         *store.Store
	OAuth2Store         *store.Store
	ServiceAccountStore *store.Store

	ready atomic.Bool
}

// NewState builds a State with all four stores ready (empty) and marked Ready.
func NewState() *State {
	s := &State{
		GroupStore:          store.NewStore(nil),
		PersonStore:         store.NewStore(nil),
		OAuth2Store:         store.NewStore(nil),
		ServiceAccountStore: store.NewStore(nil),
	}
	s.ready.Store(true)
	return s
}

// SetReady flips the readyz flag; the server flips it false on SIGTERM
// before its graceful-shutdown wait.
func (s *State) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Ready reports the current readyz flag value.
func (s *State) Ready() bool {
	return s.ready.Load()
}
