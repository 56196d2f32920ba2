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

package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"dirpx.dev/ocx/apis"
)

var (
	// ErrEmptyKind is returned when an empty kind name is provided.
	ErrEmptyKind = errors.New("ocx(catalog): empty kind provided")
	// ErrNilCreator is returned when a nil creator is provided.
	ErrNilCreator = errors.New("ocx(catalog): nil creator provided")
	// ErrConflictingRegistration indicates an attempt to re-register an
	// existing kind while overwrite is disallowed.
	ErrConflictingRegistration = errors.New("ocx(catalog): conflicting kind registration")
	// ErrUnregisteredKind is returned by Create when no creator is
	// registered for the requested kind.
	ErrUnregisteredKind = errors.New("ocx(catalog): unregistered kind")
)

// New constructs a Catalog whose overwrite policy follows cfg.
func New(cfg apis.Config) apis.Catalog {
	return &catalog{
		allowOverwrite: cfg.AllowOverwrite,
		creators:       make(map[string]apis.Creator),
	}
}

// catalog is a mutex-guarded kind -> creator map.
type catalog struct {
	// allowOverwrite permits replacing an existing registration.
	allowOverwrite bool
	// mu guards creators.
	mu sync.RWMutex
	// creators maps kind name to its creator.
	creators map[string]apis.Creator
}

// Register associates kind with creator. Re-registering an existing kind is
// a conflict unless the catalog was configured with overwrite allowed.
func (c *catalog) Register(kind string, creator apis.Creator) error {
	// Validate inputs early.
	if kind == "" {
		return ErrEmptyKind
	}
	if creator == nil {
		return ErrNilCreator
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.creators[kind]; ok && !c.allowOverwrite {
		return fmt.Errorf("%w: %q", ErrConflictingRegistration, kind)
	}
	c.creators[kind] = creator
	return nil
}

// MustRegister is Register but panics on error.
func (c *catalog) MustRegister(kind string, creator apis.Creator) {
	if err := c.Register(kind, creator); err != nil {
		panic(err)
	}
}

// Create invokes the creator registered for kind and returns its product.
// Lookup falls through in order: the exact kind, then its case-folded form.
// A creator error propagates unchanged to the caller.
func (c *catalog) Create(kind string) (any, error) {
	if kind == "" {
		return nil, ErrEmptyKind
	}

	creator, ok := c.lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredKind, kind)
	}
	return creator()
}

// lookup resolves a creator for kind, falling through exact and folded forms.
func (c *catalog) lookup(kind string) (apis.Creator, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if creator, ok := c.creators[kind]; ok {
		return creator, true
	}
	if creator, ok := c.creators[strings.ToLower(kind)]; ok {
		return creator, true
	}
	return nil, false
}

// Deregister removes the creator for kind if present. Absent kinds are a no-op.
func (c *catalog) Deregister(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.creators, kind)
}

// Kinds returns the registered kind names (order is unspecified).
func (c *catalog) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	kinds := make([]string, 0, len(c.creators))
	for kind := range c.creators {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Count returns the number of registered creators.
func (c *catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.creators)
}

// Registrations returns a snapshot for diagnostics and migration
// (order is unspecified).
func (c *catalog) Registrations() []apis.Registration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	regs := make([]apis.Registration, 0, len(c.creators))
	for kind, creator := range c.creators {
		regs = append(regs, apis.Registration{Kind: kind, Creator: creator})
	}
	return regs
}

// Reset clears all registered creators.
func (c *catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creators = make(map[string]apis.Creator)
}

// CreateAs is a typed convenience wrapper around Catalog.Create.
func CreateAs[T any](c apis.Catalog, kind string) (T, error) {
	var zero T
	v, err := c.Create(kind)
	if err != nil {
		return zero, err
	}
	tv, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("ocx(catalog): kind %q produced %T, not the requested type", kind, v)
	}
	return tv, nil
}
