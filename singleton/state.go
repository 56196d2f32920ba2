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

import "fmt"

// State describes the lifecycle of a guarded singleton slot.
//
// The slot moves Uninitialized -> ConstructionInFlight -> Initialized on
// first access, and back to Uninitialized on Reset. ConstructionInFlight
// exists only for the synchronous extent of an authorized construction;
// it is the signal that distinguishes the accessor's own construction
// call from an unauthorized direct one.
type State int

const (
	// Uninitialized means the slot holds no instance. The next access
	// will construct one.
	Uninitialized State = iota

	// ConstructionInFlight means the accessor is currently running the
	// construction hook. Only while in this state may the hook succeed.
	ConstructionInFlight

	// Initialized means the slot holds a constructed instance. Accesses
	// return it unchanged until Reset.
	Initialized
)

// String returns a short, stable identifier for the state, suitable for
// logs and diagnostics. Unknown values render as "Unknown(<n>)" rather
// than panicking, so corrupted values can still be surfaced safely.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case ConstructionInFlight:
		return "ConstructionInFlight"
	case Initialized:
		return "Initialized"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsValid reports whether s is one of the defined states.
func (s State) IsValid() bool {
	switch s {
	case Uninitialized, ConstructionInFlight, Initialized:
		return true
	default:
		return false
	}
}
