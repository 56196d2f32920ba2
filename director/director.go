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

package director

import (
	"errors"
	"fmt"

	"dirpx.dev/ocx/builder"
	"dirpx.dev/ocx/config"
)

// Canonical recipe names shipped in the embedded catalog.
const (
	RecipeGaming = "gaming"
	RecipeOffice = "office"
	RecipeServer = "server"
)

// ErrUnknownRecipe is returned when no recipe exists under the given name.
var ErrUnknownRecipe = errors.New("ocx(director): unknown recipe")

// New constructs a Director driving b. A nil b gets a fresh builder with
// the default configuration.
func New(b *builder.ComputerBuilder) *Director {
	if b == nil {
		b = builder.New(config.DefaultConfig())
	}
	return &Director{b: b}
}

// Director drives a staged builder through fixed, named construction
// sequences. Every recipe runs reset, then its setter sequence, then build,
// so two invocations of the same recipe yield value-equal but distinct
// products regardless of what the builder held before.
//
// A Director shares its builder's ownership model: one caller at a time.
type Director struct {
	b *builder.ComputerBuilder
}

// Build assembles the named recipe. Unknown names fail with
// ErrUnknownRecipe; a builder failure propagates unchanged.
func (d *Director) Build(name string) (builder.Computer, error) {
	r, err := lookupRecipe(name)
	if err != nil {
		return builder.Computer{}, err
	}
	return d.apply(r)
}

// BuildGamingComputer assembles the canonical gaming configuration.
func (d *Director) BuildGamingComputer() (builder.Computer, error) {
	return d.Build(RecipeGaming)
}

// BuildOfficeComputer assembles the canonical office configuration.
func (d *Director) BuildOfficeComputer() (builder.Computer, error) {
	return d.Build(RecipeOffice)
}

// BuildServerComputer assembles the canonical server configuration.
func (d *Director) BuildServerComputer() (builder.Computer, error) {
	return d.Build(RecipeServer)
}

// apply replays the recipe against the builder: reset, setters, build.
// Optional fields without a recipe value are left unset.
func (d *Director) apply(r Recipe) (builder.Computer, error) {
	b := d.b.Reset().
		SetProcessor(r.Processor).
		SetMemory(r.Memory).
		SetStorage(r.Storage)
	if r.GraphicsCard != "" {
		b = b.SetGraphicsCard(r.GraphicsCard)
	}
	if r.AudioSystem != "" {
		b = b.SetAudioSystem(r.AudioSystem)
	}
	if r.Bluetooth {
		b = b.SetBluetooth(true)
	}

	product, err := b.Build()
	if err != nil {
		return builder.Computer{}, fmt.Errorf("ocx(director): recipe %q: %w", r.Name, err)
	}
	return product, nil
}
