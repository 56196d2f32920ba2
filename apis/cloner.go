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

// Cloner produces independent copies of a prototype value.
//
// Clone MUST return a deep copy: the result shares no mutable state with
// the receiver, so mutating one never affects the other. Implementations
// MUST be safe to call from multiple goroutines concurrently and MUST NOT
// perform blocking operations or I/O.
//
// The dynamic type of the returned value is expected to match the
// receiver's concrete type; prototype registries rely on this to hand a
// caller the same kind of value the exemplar was registered with.
type Cloner interface {
	// Clone returns a deep copy of the receiver.
	Clone() any
}
