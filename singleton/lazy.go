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

import "sync"

// NewLazy constructs a lazy singleton slot. The constructor runs on the
// first Instance call of each lifecycle, so it may capture first-access
// data such as a creation timestamp.
func NewLazy[T any](ctor func() T) *Lazy[T] {
	if ctor == nil {
		panic(ErrNilConstructor)
	}
	return &Lazy[T]{ctor: ctor}
}

// Lazy is the simpler singleton variant: lazy-init-on-first-access with an
// explicit reset hook and no construction guard. The constructor stays
// unexported to the slot's owner; callers only see the accessor.
//
// Unlike a bare sync.Once, the slot can be re-armed: Reset starts a new
// lifecycle whose first access constructs a fresh instance.
type Lazy[T any] struct {
	// mu serializes construction and reset.
	mu sync.Mutex
	// built reports whether value holds a constructed instance.
	built bool
	// value is the stored instance, valid only while built.
	value T
	// ctor produces the instance on first access.
	ctor func() T
}

// Instance returns the stored instance, constructing it on first access.
func (l *Lazy[T]) Instance() T {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.built {
		l.value = l.ctor()
		l.built = true
	}
	return l.value
}

// Initialized reports whether an instance has been constructed. Diagnostic
// only; it should never gate normal code flow.
func (l *Lazy[T]) Initialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.built
}

// Reset discards the stored instance. The next Instance call constructs a
// new, distinct one.
func (l *Lazy[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	l.value = zero
	l.built = false
}
