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

// Creator produces a fresh product value for a catalog kind.
// Each invocation must return a newly constructed value, never a shared one.
type Creator func() (any, error)

// Catalog dispatches product construction by kind name. It is the
// factory-method counterpart of Registry: Registry stores constructed
// instances, Catalog stores the creators themselves.
type Catalog interface {
	// Register associates kind with creator. Re-registering an existing kind
	// fails with a conflict error unless the configuration allows overwrite.
	Register(kind string, creator Creator) error
	// MustRegister is Register but panics on error. Intended for
	// package-level wiring where failure is a programming bug.
	MustRegister(kind string, creator Creator)
	// Create invokes the creator registered for kind. Unknown kinds fail
	// with an unregistered-kind error. Lookup falls through the exact kind
	// first, then its case-folded form.
	Create(kind string) (any, error)
	// Deregister removes the creator for kind if present.
	Deregister(kind string)
	// Kinds returns the registered kind names (order is unspecified).
	Kinds() []string
	// Count returns the number of registered creators.
	Count() int
	// Registrations returns a snapshot of the registered (kind, creator)
	// pairs, for diagnostics and for migration between catalogs
	// (order is unspecified).
	Registrations() []Registration
	// Reset clears all registered creators.
	Reset()
}

// Registration is a single (kind, creator) association in a Catalog snapshot.
type Registration struct {
	// Kind is the registered kind name.
	Kind string
	// Creator is the associated creator.
	Creator Creator
}
