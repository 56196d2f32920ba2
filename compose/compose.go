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

package compose

import (
	"dirpx.dev/ocx/apis"
	"dirpx.dev/ocx/catalog"
	"dirpx.dev/ocx/registry"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &composer{}
}

// composer is an empty struct to be used as a receiver for builder methods.
type composer struct{}

// BuildRegistry returns the registry for the given configuration. Live
// instances must survive reconfiguration and no current config knob alters
// registry behavior, so a pre-existing registry is reused as-is; otherwise
// a fresh one is constructed.
func (c *composer) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	if prev != nil {
		return prev
	}
	return registry.New(cfg)
}

// BuildCatalog builds and returns a new apis.Catalog based on the provided
// configuration. Catalogs embed their overwrite policy at construction, so
// a config change needs a rebuild; creators from the pre-existing catalog
// are migrated into the new one.
func (c *composer) BuildCatalog(cfg apis.Config, prev apis.Catalog, _ any) apis.Catalog {
	ncat := catalog.New(cfg)
	if prev != nil {
		for _, r := range prev.Registrations() {
			_ = ncat.Register(r.Kind, r.Creator)
		}
	}
	return ncat
}
