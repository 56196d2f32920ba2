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

package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/ocx/apis"
)

var (
	// ErrEmptyKey is returned when an empty key is provided.
	ErrEmptyKey = errors.New("ocx(registry): empty key provided")
	// ErrNilFactory is returned when a nil factory is provided.
	ErrNilFactory = errors.New("ocx(registry): nil factory provided")
	// ErrWrongType is returned by InstanceOf when the value stored under a
	// key does not have the requested type.
	ErrWrongType = errors.New("ocx(registry): stored instance has a different type")
)

// New constructs an empty Registry. The cfg parameter is accepted for
// builder symmetry; no current knob changes registry behavior.
func New(_ apis.Config) apis.Registry {
	return &registry{entries: make(map[string]*entry)}
}

// registry is a keyed store of lazily constructed singleton values.
type registry struct {
	// mu guards entries.
	mu sync.RWMutex
	// flight collapses concurrent construction of the same key into a
	// single factory invocation.
	flight singleflight.Group
	// entries maps key to the constructed instance and its identity data.
	entries map[string]*entry
}

// entry is one constructed instance together with its identity data.
type entry struct {
	value      any
	generation string
	createdAt  time.Time
}

// Instance returns the value stored under key, constructing it with factory
// on first access. For a fixed key, every call between resets returns the
// identical value. A factory error propagates to the caller and leaves the
// key unset.
func (r *registry) Instance(key string, factory apis.Factory) (any, error) {
	// Validate inputs early.
	if key == "" {
		return nil, ErrEmptyKey
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	// Fast read path: no locking beyond the read lock on a hit.
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()
	if ok {
		return e.value, nil
	}

	// Miss: concurrent callers for the same key share one factory run.
	// Only a successful run stores an entry, so a failed factory leaves
	// the key unset and a later call retries construction.
	v, err, _ := r.flight.Do(key, func() (any, error) {
		// Re-check under the flight: an earlier flight for this key may
		// have stored the entry after our read miss.
		r.mu.RLock()
		e, ok := r.entries[key]
		r.mu.RUnlock()
		if ok {
			return e.value, nil
		}

		value, ferr := factory()
		if ferr != nil {
			return nil, ferr
		}

		r.mu.Lock()
		r.entries[key] = &entry{
			value:      value,
			generation: uuid.NewString(),
			createdAt:  time.Now().UTC(),
		}
		r.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Has reports whether a value is stored under key, with no side effect.
func (r *registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Reset removes the entry for key if present. Absent keys are a no-op.
func (r *registry) Reset(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// ResetAll clears every entry.
func (r *registry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*entry)
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]apis.Entry, 0, len(r.entries))
	for key, e := range r.entries {
		entries = append(entries, apis.Entry{
			Key:        key,
			Generation: e.generation,
			CreatedAt:  e.createdAt,
		})
	}
	return entries
}

// Count returns the number of stored entries.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// InstanceOf is a typed convenience wrapper around Registry.Instance.
// It fails with ErrWrongType if the key already holds a value of another type.
func InstanceOf[T any](r apis.Registry, key string, factory func() (T, error)) (T, error) {
	var zero T
	v, err := r.Instance(key, func() (any, error) { return factory() })
	if err != nil {
		return zero, err
	}
	tv, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrWrongType, key, v)
	}
	return tv, nil
}
