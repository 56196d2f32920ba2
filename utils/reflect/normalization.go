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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/ocx/apis"
	"dirpx.dev/ocx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping
	// containers) does not contain a named type (e.g., anonymous struct, func,
	// interface{}).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no named form")
)

// NearestNamed unwraps containers according to config (MaxUnwrap/MapPreferElem)
// and returns the nearest named inner type, or an error if none is found.
// Prototype registries use the result as a canonical key, so *T, []T and T
// all map to the same exemplar.
//
// Unwrapping policy:
//   - ptr/slice/array/chan  -> Elem()
//   - map[K]V: try the preferred side first (Elem if MapPreferElem; otherwise
//     Key); if the preferred side is named, return it; else try the other
//     side; if still unnamed, continue unwrapping Elem().
//   - default: if t.Name() != "", return t; otherwise ErrReflectTypeNotNamed.
//
// If MaxUnwrap <= 0, config.DefaultMaxUnwrap is used.
func NearestNamed(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t != nil && i < maxUnwrap; i++ {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()

		case reflect.Map:
			named, rest := mapSide(t, cfg.MapPreferElem)
			if named != nil {
				return named, nil
			}
			t = rest

		default:
			// Named, return; anonymous -> error
			if t.Name() != "" {
				return t, nil
			}
			return nil, ErrReflectTypeNotNamed
		}
	}

	// After reaching max depth, ensure we ended on a named type.
	if t != nil && t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}

// mapSide picks the named side of a map type, preferring the element side
// when preferElem is set. If neither side is named it returns (nil, elem)
// so the caller can keep unwrapping the element.
func mapSide(t reflect.Type, preferElem bool) (named, rest reflect.Type) {
	first, second := t.Key(), t.Elem()
	if preferElem {
		first, second = second, first
	}
	if first != nil && first.Name() != "" {
		return first, nil
	}
	if second != nil && second.Name() != "" {
		return second, nil
	}
	return nil, t.Elem()
}
