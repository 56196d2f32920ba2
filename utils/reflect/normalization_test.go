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

package reflect_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/ocx/config"
	uref "dirpx.dev/ocx/utils/reflect"
)

type widget struct{}

func TestNearestNamed_UnwrapsContainers(t *testing.T) {
	cfg := config.DefaultConfig()
	want := reflect.TypeOf(widget{})

	for _, v := range []any{
		widget{},
		&widget{},
		[]widget{},
		[]*widget{},
		[3]widget{},
		make(chan widget),
	} {
		got, err := uref.NearestNamed(reflect.TypeOf(v), cfg)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %T", v)
	}
}

func TestNearestNamed_NilType(t *testing.T) {
	_, err := uref.NearestNamed(nil, config.DefaultConfig())
	assert.ErrorIs(t, err, uref.ErrReflectNilType)
}

func TestNearestNamed_AnonymousNotNamed(t *testing.T) {
	anon := reflect.TypeOf(struct{ X int }{})
	_, err := uref.NearestNamed(anon, config.DefaultConfig())
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed)
}

func TestNearestNamed_MapPreference(t *testing.T) {
	mapType := reflect.TypeOf(map[string]widget{})

	// Prefer element (default): map[string]widget -> widget.
	got, err := uref.NearestNamed(mapType, config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(widget{}), got)

	// Prefer key: map[string]widget -> string (builtins are named by reflect).
	cfg := config.NewConfig(config.WithMapPreferElem(false))
	got, err = uref.NearestNamed(mapType, cfg)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), got)
}

func TestNearestNamed_MaxUnwrapLimit(t *testing.T) {
	deep := reflect.TypeOf([][][]widget{})

	// Depth 1 cannot reach the named inner type.
	cfg := config.NewConfig(config.WithMaxUnwrap(1))
	_, err := uref.NearestNamed(deep, cfg)
	assert.ErrorIs(t, err, uref.ErrReflectTypeNotNamed)

	// The default depth can.
	got, err := uref.NearestNamed(deep, config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(widget{}), got)
}
