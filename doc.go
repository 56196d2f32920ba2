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

// Package ocx provides a global, process-wide object construction and
// identity service.
//
// ocx is responsible for the lifecycle of "the one instance of X": keyed
// singleton instances created lazily and exactly once, factory-method
// dispatch of fresh product values by kind, guarded and lazy single slots,
// staged builders with validation, directors driving canonical
// construction recipes, and prototype cloning.
//
// # Design
//
// The core of ocx is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: policy knobs that control construction behavior (whether
//     catalogs may overwrite registrations, whether staged builders reset
//     after a successful build, how deep types are unwrapped when
//     normalized into prototype keys).
//
//   - Registry: a process-wide keyed store of lazily constructed
//     singleton instances. getInstance-style access constructs a value on
//     first use and returns the identical value on every later call until
//     the key is reset. Concurrent callers racing on a cold key share a
//     single factory invocation.
//
//   - Catalog: a process-wide factory-method dispatch table mapping kind
//     names to creators. Unlike the Registry, every Create call produces
//     a fresh value; the Catalog stores the creators, never the products.
//
//   - Builder: a pluggable factory that knows how to construct Registry
//     and Catalog instances for a given Config (and optional extension
//     data). The Builder is also allowed to reuse/migrate state from
//     previous Registry/Catalog instances.
//
// All of these live inside a single immutable struct called state.
// The package holds an atomic pointer to the current state. Readers load
// that pointer, use it, and never mutate it. Writers build a brand-new
// state and atomically swap it in.
//
// This means ocx lookups are lock-free on the hot path:
//
//	db, err := ocx.Instance("database", openDatabase)
//	doc, err := ocx.Create("document.pdf")
//
// and concurrent callers always see a consistent snapshot. Mutation of a
// particular instance slot is then serialized inside the Registry itself.
//
// # Global API
//
// The package exposes three groups of operations:
//
//  1. Read helpers:
//
//     Instance(key string, factory apis.Factory) (any, error)
//     HasInstance(key string) bool
//     Create(kind string) (any, error)
//     Registry() apis.Registry
//     Catalog() apis.Catalog
//
//     These are safe for concurrent use without additional locking.
//     They always read from the latest published snapshot.
//
//  2. Mutation helpers:
//
//     ResetInstance(key) / ResetInstances()
//     RegisterKind(kind, creator)
//     SetConfig(cfg), SetBuilder(b), SetExt(ext)
//     SetRegistry(reg), SetCatalog(cat)
//     Pin/Unpin Registry and Catalog
//     SetAll(...)
//
//     Each of the snapshot-level setters acquires an internal build lock,
//     derives a new snapshot (rebuilding or reusing Registry / Catalog as
//     needed), and then atomically publishes that snapshot.
//
//     Semantics in short:
//
//     - Config affects construction policy. Calling SetConfig() may
//     trigger a rebuild of Registry and/or Catalog, unless they are
//     explicitly "pinned". Live singleton instances survive a rebuild:
//     the default builder carries the registry forward.
//
//     - Builder controls how Registry and Catalog are constructed.
//     Swapping the Builder lets you replace construction logic at
//     runtime.
//
//     - Ext is an opaque extension payload. It is not interpreted by
//     ocx itself. It is simply passed down to the Builder so custom
//     builders (in other binaries) can carry extra policy/state.
//
//     - SetRegistry() / SetCatalog() directly overwrite the current
//     Registry / Catalog in the snapshot and "pin" them. Once a layer
//     is pinned, ocx stops rebuilding that layer automatically until
//     you call UnpinRegistry()/UnpinCatalog().
//
//     - SetAll(...) is the "hard reset" API. It lets a process replace
//     Builder, Config, Ext, Registry, Catalog in one shot. This is
//     mainly used by tests to get a clean deterministic state between
//     test cases.
//
//  3. Introspection:
//
//     ExtAs[T]() (T, bool)
//     // plus Registry().Entries(), Catalog().Kinds(), etc.
//
//     Registry entries carry identity data: each constructed instance
//     records a generation ID and construction timestamp, so operators
//     can tell a reconstructed instance from the original after a reset.
//
// # Concurrency model
//
// Reads (Instance, HasInstance, Create, Registry, Catalog) are wait-free
// at the snapshot level: they load the current *state atomically and never
// take the build lock. The Registry and Catalog inside the state are
// themselves concurrency-safe; in particular the Registry serializes the
// check-and-construct sequence per key, so duplicate construction cannot
// happen even when parallel goroutines race on a cold key.
//
// Writes (SetConfig, SetBuilder, SetExt, SetRegistry, SetCatalog, etc.)
// take a short build mutex, assemble a brand-new state struct, and then
// publish it via an atomic pointer swap. This gives the calling binary
// a predictable "last write wins" behavior without forcing per-lookup
// locking.
//
// # Standalone primitives
//
// The subpackages singleton, builder, director and prototype are usable
// without the global snapshot:
//
//   - singleton.Guarded[T]: one guarded slot whose construction hook
//     fails with ErrConstructionForbidden outside the accessor.
//   - singleton.Lazy[T]: lazy-init-on-first-access with an explicit
//     reset hook.
//   - builder.ComputerBuilder: staged construction with required-field
//     validation and explicit reset-for-reuse.
//   - director.Director: named recipes replaying fixed setter sequences
//     against a staged builder.
//   - prototype.Registry: exemplars cloned on demand, keyed by
//     normalized type.
//
// # Scope
//
// ocx is intentionally small. It does not try to be a general DI
// container, an object pool, or a cross-process coordination layer. It
// only solves one job:
//
//	"Construct objects with explicit, observable lifecycles: one
//	 instance when one is meant to exist, a fresh instance when one is
//	 requested, and a validated instance when construction is staged."
//
// Everything else (injection graphs, pooling, persistence, transport)
// belongs to higher layers.
package ocx
