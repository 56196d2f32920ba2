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

package builder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/ocx/builder"
	"dirpx.dev/ocx/config"
)

func TestBuild_AllRequiredSet(t *testing.T) {
	b := builder.New(config.DefaultConfig())

	got, err := b.
		SetProcessor("Intel i7-11700").
		SetMemory("16GB DDR4").
		SetStorage("512GB SSD").
		SetGraphicsCard("GTX 1660").
		SetBluetooth(true).
		Build()
	require.NoError(t, err)

	assert.Equal(t, builder.Computer{
		Processor:    "Intel i7-11700",
		Memory:       "16GB DDR4",
		Storage:      "512GB SSD",
		GraphicsCard: "GTX 1660",
		Bluetooth:    true,
	}, got)
	// Unset optional fields stay absent, not placeholder values.
	assert.Empty(t, got.AudioSystem)
}

func TestBuild_MissingRequiredField(t *testing.T) {
	b := builder.New(config.DefaultConfig())

	_, err := b.SetMemory("16GB DDR4").SetStorage("512GB SSD").Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, builder.ErrMissingRequiredField)

	var missing *builder.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "processor", missing.Field)
}

func TestBuild_FirstMissingFieldInDeclarationOrder(t *testing.T) {
	// Only storage set: processor is declared first, so it is reported.
	b := builder.New(config.DefaultConfig())
	_, err := b.SetStorage("512GB SSD").Build()

	var missing *builder.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "processor", missing.Field)

	// Processor set: memory is next in declaration order.
	b = builder.New(config.DefaultConfig())
	_, err = b.SetProcessor("Intel i5").Build()
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "memory", missing.Field)
}

func TestBuild_FailureLeavesStateUntouched(t *testing.T) {
	b := builder.New(config.DefaultConfig())
	b.SetProcessor("Intel i5").SetMemory("8GB DDR4")

	_, err := b.Build()
	require.Error(t, err)

	// Completing the missing field succeeds with no re-staging.
	got, err := b.SetStorage("256GB SSD").Build()
	require.NoError(t, err)
	assert.Equal(t, "Intel i5", got.Processor)
	assert.Equal(t, "8GB DDR4", got.Memory)
}

func TestBuild_StatePersistsWithoutReset(t *testing.T) {
	b := builder.New(config.DefaultConfig())
	b.SetProcessor("Intel i5").SetMemory("8GB DDR4").SetStorage("256GB SSD")

	first, err := b.Build()
	require.NoError(t, err)

	// Default policy: the builder keeps its state, a second Build yields a
	// value-equal but distinct product.
	second, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuild_AutoResetPolicy(t *testing.T) {
	b := builder.New(config.NewConfig(config.WithAutoResetBuilders(true)))
	b.SetProcessor("Intel i5").SetMemory("8GB DDR4").SetStorage("256GB SSD")

	_, err := b.Build()
	require.NoError(t, err)

	// With auto-reset, the second Build starts from a clean slate.
	_, err = b.Build()
	var missing *builder.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "processor", missing.Field)
}

func TestReset_ClearsAllFields(t *testing.T) {
	b := builder.New(config.DefaultConfig())

	// A set-then-reset sequence leaves nothing staged.
	_, err := b.SetProcessor("Intel i9").Reset().Build()
	var missing *builder.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "processor", missing.Field)
}

func TestProduct_IsSnapshot(t *testing.T) {
	b := builder.New(config.DefaultConfig())
	got, err := b.
		SetProcessor("Intel i5").
		SetMemory("8GB DDR4").
		SetStorage("256GB SSD").
		Build()
	require.NoError(t, err)

	// Later builder mutations never leak into the product.
	b.SetProcessor("AMD 5950X")
	assert.Equal(t, "Intel i5", got.Processor)
}
