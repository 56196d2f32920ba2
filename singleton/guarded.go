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

package singleton

import (
	"errors"
	"sync"
)

var (
	// ErrConstructionForbidden is returned when the construction hook is
	// invoked while no authorized construction is in flight, i.e. any
	// attempt to build the instance other than through Instance.
	ErrConstructionForbidden = errors.New("ocx(singleton): construction outside the accessor is forbidden")
	// ErrNilConstructor is returned when a Guarded or Lazy singleton is
	// created without a constructor.
	ErrNilConstructor = errors.New("ocx(singleton): nil constructor provided")
)

// NewGuarded constructs a guarded singleton slot whose single instance is
// produced by ctor. The constructor runs at most once per lifecycle; Reset
// starts a new lifecycle.
func NewGuarded[T any](ctor func() (T, error)) *Guarded[T] {
	if ctor == nil {
		panic(ErrNilConstructor)
	}
	return &Guarded[T]{ctor: ctor}
}

// Guarded holds at most one instance of T and forbids construction outside
// its accessor. The mutex serializes the whole check-and-construct sequence,
// so parallel callers cannot both observe an empty slot and construct twice;
// the in-flight state is an authorization signal, not a locking mechanism.
type Guarded[T any] struct {
	// mu serializes all state transitions and the construction itself.
	mu sync.Mutex
	// state is the slot lifecycle state.
	state State
	// value is the stored instance, valid only while state is Initialized.
	value T
	// ctor produces the instance during an authorized construction.
	ctor func() (T, error)
}

// Instance returns the stored instance, constructing it on first access.
// Two consecutive calls with no intervening Reset return the identical
// instance. A constructor error propagates to the caller and leaves the
// slot empty, so a later call retries.
func (g *Guarded[T]) Instance() (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Initialized {
		return g.value, nil
	}

	// Authorize construction for the extent of this call only.
	g.state = ConstructionInFlight
	v, err := g.construct()
	if err != nil {
		g.state = Uninitialized
		var zero T
		return zero, err
	}

	g.value = v
	g.state = Initialized
	return v, nil
}

// NewInstance is the construction hook. Called from outside an Instance
// access it always fails with ErrConstructionForbidden: the slot is either
// empty (no construction authorized) or already occupied.
func (g *Guarded[T]) NewInstance() (T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.construct()
}

// construct runs the constructor if, and only if, a construction is in
// flight. Callers must hold mu.
func (g *Guarded[T]) construct() (T, error) {
	if g.state != ConstructionInFlight {
		var zero T
		return zero, ErrConstructionForbidden
	}
	return g.ctor()
}

// Reset discards the stored instance and returns the slot to Uninitialized.
// The next Instance call constructs a new, distinct instance.
func (g *Guarded[T]) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	var zero T
	g.value = zero
	g.state = Uninitialized
}

// State reports the current lifecycle state.
func (g *Guarded[T]) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
