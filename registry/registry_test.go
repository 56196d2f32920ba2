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

package registry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/ocx/config"
	"dirpx.dev/ocx/registry"
)

type service struct {
	name string
}

func TestInstance_ConstructsOnceAndReturnsIdentical(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	calls := 0
	factory := func() (any, error) {
		calls++
		return &service{name: "db"}, nil
	}

	first, err := reg.Instance("db", factory)
	require.NoError(t, err)
	second, err := reg.Instance("db", factory)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestInstance_KeyIsolation(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	// Structurally equal values under different keys stay distinct.
	a, err := reg.Instance("a", func() (any, error) { return &service{name: "x"}, nil })
	require.NoError(t, err)
	b, err := reg.Instance("b", func() (any, error) { return &service{name: "x"}, nil })
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, reg.Count())
}

func TestInstance_InvalidInputs(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	_, err := reg.Instance("", func() (any, error) { return 1, nil })
	assert.ErrorIs(t, err, registry.ErrEmptyKey)

	_, err = reg.Instance("k", nil)
	assert.ErrorIs(t, err, registry.ErrNilFactory)
}

func TestInstance_FactoryErrorLeavesNoEntry(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	boom := errors.New("boom")

	_, err := reg.Instance("svc", func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, reg.Has("svc"))

	// A later call retries construction and may succeed.
	v, err := reg.Instance("svc", func() (any, error) { return &service{name: "ok"}, nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v.(*service).name)
}

func TestReset_PerKeyAndAll(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	first, err := reg.Instance("svc", func() (any, error) { return &service{}, nil })
	require.NoError(t, err)

	reg.Reset("svc")
	assert.False(t, reg.Has("svc"))
	// Resetting an absent key is a no-op, not an error.
	reg.Reset("missing")

	second, err := reg.Instance("svc", func() (any, error) { return &service{}, nil })
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	_, err = reg.Instance("other", func() (any, error) { return &service{}, nil })
	require.NoError(t, err)
	reg.ResetAll()
	assert.Equal(t, 0, reg.Count())
	assert.False(t, reg.Has("svc"))
	assert.False(t, reg.Has("other"))
}

func TestEntries_IdentityData(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	_, err := reg.Instance("svc", func() (any, error) { return &service{}, nil })
	require.NoError(t, err)

	entries := reg.Entries()
	require.Len(t, entries, 1)
	gen := entries[0].Generation
	assert.Equal(t, "svc", entries[0].Key)
	assert.NotEmpty(t, gen)
	assert.False(t, entries[0].CreatedAt.IsZero())

	// Reconstruction after reset yields a new generation.
	reg.Reset("svc")
	_, err = reg.Instance("svc", func() (any, error) { return &service{}, nil })
	require.NoError(t, err)
	entries = reg.Entries()
	require.Len(t, entries, 1)
	assert.NotEqual(t, gen, entries[0].Generation)
}

func TestInstanceOf_Typed(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	svc, err := registry.InstanceOf(reg, "svc", func() (*service, error) {
		return &service{name: "typed"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "typed", svc.name)

	// The same key requested as a different type fails.
	_, err = registry.InstanceOf(reg, "svc", func() (int, error) { return 0, nil })
	assert.ErrorIs(t, err, registry.ErrWrongType)
}
