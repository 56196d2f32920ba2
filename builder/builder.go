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

package builder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"dirpx.dev/ocx/apis"
)

// ErrMissingRequiredField is the sentinel every missing-field failure
// unwraps to. The concrete error is a *MissingFieldError naming the field.
var ErrMissingRequiredField = errors.New("ocx(builder): missing required field")

// MissingFieldError reports the first required field that was still unset
// when Build ran. Fields are checked in declaration order, so the reported
// name is stable for a given builder.
type MissingFieldError struct {
	// Field is the product field name, e.g. "processor".
	Field string
}

// Error implements error.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("ocx(builder): missing required field %q", e.Field)
}

// Unwrap lets errors.Is match ErrMissingRequiredField.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingRequiredField
}

// Computer is the immutable product assembled by the staged builder. Once
// built it holds no reference to the builder; mutating the builder or
// resetting it never changes an already built Computer.
type Computer struct {
	Processor    string
	Memory       string
	Storage      string
	GraphicsCard string
	AudioSystem  string
	Bluetooth    bool
}

// state is the mutable staging area. Required fields carry the validate
// tag; json tags give validation failures the exported field names.
// Declaration order fixes the order missing fields are reported in.
type state struct {
	Processor    string `json:"processor" validate:"required"`
	Memory       string `json:"memory" validate:"required"`
	Storage      string `json:"storage" validate:"required"`
	GraphicsCard string `json:"graphics_card"`
	AudioSystem  string `json:"audio_system"`
	Bluetooth    bool   `json:"bluetooth"`
}

// check validates staged state. Field names in errors come from json tags.
var check = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// New constructs an empty computer builder governed by cfg. Only
// AutoResetBuilders is consulted: when set, a successful Build clears the
// staged state; otherwise reuse requires an explicit Reset.
func New(cfg apis.Config) *ComputerBuilder {
	return &ComputerBuilder{autoReset: cfg.AutoResetBuilders}
}

// ComputerBuilder accumulates computer fields across chained calls and
// assembles an immutable Computer on Build. A builder is owned by a single
// caller; it is not safe for concurrent use.
type ComputerBuilder struct {
	autoReset bool
	staged    state
}

// SetProcessor stages the processor model. Required.
func (b *ComputerBuilder) SetProcessor(processor string) *ComputerBuilder {
	b.staged.Processor = processor
	return b
}

// SetMemory stages the memory configuration. Required.
func (b *ComputerBuilder) SetMemory(memory string) *ComputerBuilder {
	b.staged.Memory = memory
	return b
}

// SetStorage stages the storage configuration. Required.
func (b *ComputerBuilder) SetStorage(storage string) *ComputerBuilder {
	b.staged.Storage = storage
	return b
}

// SetGraphicsCard stages the graphics card. Optional.
func (b *ComputerBuilder) SetGraphicsCard(card string) *ComputerBuilder {
	b.staged.GraphicsCard = card
	return b
}

// SetAudioSystem stages the audio system. Optional.
func (b *ComputerBuilder) SetAudioSystem(audio string) *ComputerBuilder {
	b.staged.AudioSystem = audio
	return b
}

// SetBluetooth stages bluetooth support. Optional.
func (b *ComputerBuilder) SetBluetooth(enabled bool) *ComputerBuilder {
	b.staged.Bluetooth = enabled
	return b
}

// Build validates the staged state and assembles a Computer snapshot.
// If any required field is unset it fails with a *MissingFieldError naming
// the first one in declaration order, and the staged state is left
// untouched. On success the staged state is also left as-is unless the
// builder was configured with AutoResetBuilders.
func (b *ComputerBuilder) Build() (Computer, error) {
	if err := check.Struct(b.staged); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Computer{}, &MissingFieldError{Field: verrs[0].Field()}
		}
		return Computer{}, fmt.Errorf("ocx(builder): validate: %w", err)
	}

	product := Computer{
		Processor:    b.staged.Processor,
		Memory:       b.staged.Memory,
		Storage:      b.staged.Storage,
		GraphicsCard: b.staged.GraphicsCard,
		AudioSystem:  b.staged.AudioSystem,
		Bluetooth:    b.staged.Bluetooth,
	}
	if b.autoReset {
		b.Reset()
	}
	return product, nil
}

// Reset clears every staged field, required and optional, and returns the
// builder for chaining.
func (b *ComputerBuilder) Reset() *ComputerBuilder {
	b.staged = state{}
	return b
}
