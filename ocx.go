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

package ocx

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/ocx/apis"
	"dirpx.dev/ocx/compose"
	"dirpx.dev/ocx/config"
)

// init initializes the global ocx state.
func init() {
	// Initialize state with default cfg, reg, and cat.
	s := &state{cfg: config.DefaultConfig()}
	b := compose.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.cat = b.BuildCatalog(s.cfg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("ocx: builder returned nil registry")
	// ErrNilCatalog is returned when a builder returns a nil catalog.
	ErrNilCatalog = errors.New("ocx: builder returned nil catalog")
)

// Instance returns the process-wide instance stored under key, constructing
// it with factory on first access.
// This is a convenience wrapper around the global reg.
func Instance(key string, factory apis.Factory) (any, error) {
	return st.Load().reg.Instance(key, factory)
}

// HasInstance reports whether an instance is stored under key.
// This is a convenience wrapper around the global reg.
func HasInstance(key string) bool {
	return st.Load().reg.Has(key)
}

// ResetInstance discards the instance stored under key, if any.
// Reserved for lifecycle hooks and test setup/teardown.
func ResetInstance(key string) {
	st.Load().reg.Reset(key)
}

// ResetInstances discards every stored instance.
// Reserved for lifecycle hooks and test setup/teardown.
func ResetInstances() {
	st.Load().reg.ResetAll()
}

// Create dispatches product construction for kind via the global cat.
// This is a convenience wrapper around the global cat.
func Create(kind string) (any, error) {
	return st.Load().cat.Create(kind)
}

// RegisterKind adds a kind-creator mapping to the global cat.
// This is a convenience wrapper around the global cat.
func RegisterKind(kind string, creator apis.Creator) error {
	return st.Load().cat.Register(kind, creator)
}

// SetAll explicitly sets all global ocx state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, cat apis.Catalog, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Catalog
	ncat := cat
	npcat := false
	if ncat == nil {
		ncat = nbld.BuildCatalog(ncfg, old.cat, next)
	} else {
		npcat = true
	}

	// Ensure non-nil reg and cat.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncat == nil {
		panic(ErrNilCatalog)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			reg:  nreg,
			cat:  ncat,
			bld:  nbld,
			preg: npreg,
			pcat: npcat,
		},
	)
}

// Config returns the global ocx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global ocx configuration to cfg.
// It rebuilds the global reg and cat using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and cat based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	ncat := old.cat
	if !old.pcat {
		ncat = b.BuildCatalog(cfg, old.cat, old.ext)
	}

	// Ensure non-nil reg and cat.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncat == nil {
		panic(ErrNilCatalog)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			reg:  nreg,
			cat:  ncat,
			bld:  b,
			preg: old.preg,
			pcat: old.pcat,
		},
	)
}

// Registry returns the global ocx reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global ocx reg to reg and pins it.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  reg,
			cat:  old.cat,
			bld:  old.bld,
			preg: true,
			pcat: old.pcat,
		},
	)
}

// Catalog returns the global ocx cat.
func Catalog() apis.Catalog {
	return st.Load().cat
}

// SetCatalog sets the global ocx cat to cat and pins it.
// This is a convenience wrapper around the global state.
func SetCatalog(cat apis.Catalog) {
	if cat == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			cat:  cat,
			bld:  old.bld,
			preg: old.preg,
			pcat: true,
		},
	)
}

// Builder returns the global ocx bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global ocx bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg and cat based on the new bld and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	ncat := old.cat
	if !old.pcat {
		ncat = b.BuildCatalog(old.cfg, old.cat, old.ext)
	}

	// Ensure non-nil reg and cat.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncat == nil {
		panic(ErrNilCatalog)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  nreg,
			cat:  ncat,
			bld:  b,
			preg: old.preg,
			pcat: old.pcat,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and cat based on the new ext and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	ncat := old.cat
	if !old.pcat {
		ncat = b.BuildCatalog(old.cfg, old.cat, ext)
	}

	// Ensure non-nil reg and cat.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncat == nil {
		panic(ErrNilCatalog)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			reg:  nreg,
			cat:  ncat,
			bld:  b,
			preg: old.preg,
			pcat: old.pcat,
		},
	)
}

// ExtAs returns the global ocx extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global ocx reg is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global ocx reg immutable.
func PinRegistry() {
	setRegistryPin(true)
}

// UnpinRegistry makes the global ocx reg mutable again.
func UnpinRegistry() {
	setRegistryPin(false)
}

// IsCatalogPinned returns whether the global ocx cat is pinned (immutable).
func IsCatalogPinned() bool {
	return st.Load().pcat
}

// PinCatalog makes the global ocx cat immutable.
func PinCatalog() {
	setCatalogPin(true)
}

// UnpinCatalog makes the global ocx cat mutable again.
func UnpinCatalog() {
	setCatalogPin(false)
}

// setRegistryPin publishes a snapshot identical to the current one except
// for the registry pin flag.
func setRegistryPin(pin bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			cat:  old.cat,
			bld:  old.bld,
			preg: pin,
			pcat: old.pcat,
		},
	)
}

// setCatalogPin publishes a snapshot identical to the current one except
// for the catalog pin flag.
func setCatalogPin(pin bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			cat:  old.cat,
			bld:  old.bld,
			preg: old.preg,
			pcat: pin,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global ocx state.
var st atomic.Pointer[state]

// state is the global ocx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global ocx configuration.
	cfg apis.Config
	// ext is the global ocx extension configuration.
	ext any
	// reg is the global ocx reg.
	reg apis.Registry
	// cat is the global ocx cat.
	cat apis.Catalog
	// bld is the global ocx bld.
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pcat indicates whether the cat is pinned (immutable).
	pcat bool
}
