/*
   Copyright 2025 The DIRPX Authors.

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

package prototype

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/ocx/apis"
	uref "dirpx.dev/ocx/utils/reflect"
)

var (
	// ErrNilPrototype is returned when a nil exemplar is provided.
	ErrNilPrototype = errors.New("ocx(prototype): nil prototype provided")
	// ErrConflictingRegistration indicates an attempt to re-register an
	// exemplar for an already covered type while overwrite is disallowed.
	ErrConflictingRegistration = errors.New("ocx(prototype): conflicting prototype registration")
	// ErrUnknownPrototype is returned when no exemplar covers the
	// requested type.
	ErrUnknownPrototype = errors.New("ocx(prototype): unknown prototype")
)

// New constructs a prototype registry. Types are normalized with
// cfg.MaxUnwrap/cfg.MapPreferElem before use as keys, so *T, []T and T all
// resolve to the same exemplar; cfg.AllowOverwrite governs re-registration.
func New(cfg apis.Config) *Registry {
	return &Registry{cfg: cfg, exemplars: make(map[reflect.Type]apis.Cloner)}
}

// Registry stores exemplar values keyed by their normalized type and hands
// out deep copies of them. Registered exemplars are never returned
// directly, so callers cannot mutate them.
type Registry struct {
	// cfg carries normalization and overwrite policy.
	cfg apis.Config
	// mu guards exemplars.
	mu sync.RWMutex
	// exemplars maps normalized type to its registered exemplar.
	exemplars map[reflect.Type]apis.Cloner
}

// Register stores p as the exemplar for its normalized type.
func (r *Registry) Register(p apis.Cloner) error {
	if p == nil {
		return ErrNilPrototype
	}

	key, err := uref.NearestNamed(reflect.TypeOf(p), r.cfg)
	if err != nil {
		return fmt.Errorf("ocx(prototype): %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exemplars[key]; ok && !r.cfg.AllowOverwrite {
		return fmt.Errorf("%w: %s", ErrConflictingRegistration, key)
	}
	r.exemplars[key] = p
	return nil
}

// CloneFor returns a deep copy of the exemplar registered for t.
func (r *Registry) CloneFor(t reflect.Type) (any, error) {
	key, err := uref.NearestNamed(t, r.cfg)
	if err != nil {
		return nil, fmt.Errorf("ocx(prototype): %w", err)
	}

	r.mu.RLock()
	p, ok := r.exemplars[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrototype, key)
	}
	return p.Clone(), nil
}

// CloneOf returns a deep copy of the exemplar covering v's type.
func (r *Registry) CloneOf(v any) (any, error) {
	if v == nil {
		return nil, ErrNilPrototype
	}
	return r.CloneFor(reflect.TypeOf(v))
}

// Types returns the normalized types with a registered exemplar
// (order is unspecified).
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]reflect.Type, 0, len(r.exemplars))
	for t := range r.exemplars {
		types = append(types, t)
	}
	return types
}

// Count returns the number of registered exemplars.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exemplars)
}

// Reset clears all registered exemplars.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exemplars = make(map[reflect.Type]apis.Cloner)
}
