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

package apis

import "time"

// Factory constructs the value stored under a registry key. It runs at most
// once per key between resets. A non-nil error leaves the key unset.
type Factory func() (any, error)

// Registry is a keyed store of lazily constructed singleton values.
// Keep it minimal so implementations can choose their own locking scheme.
type Registry interface {
	// Instance returns the value stored under key, constructing it with
	// factory on first access. Repeated calls between resets return the
	// identical value. Concurrent callers for the same key share a single
	// factory invocation.
	Instance(key string, factory Factory) (any, error)
	// Has reports whether a value is stored under key, with no side effect.
	Has(key string) bool
	// Reset removes the entry for key if present; absent keys are a no-op.
	Reset(key string)
	// ResetAll clears every entry.
	ResetAll()
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of stored entries.
	Count() int
}

// Entry is a single stored instance in a Registry snapshot.
type Entry struct {
	// Key is the registry key the instance is stored under.
	Key string
	// Generation uniquely identifies this construction of the instance.
	// A reset followed by re-construction yields a new Generation.
	Generation string
	// CreatedAt is when the instance was constructed.
	CreatedAt time.Time
}
