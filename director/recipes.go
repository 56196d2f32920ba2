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
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/recipes.yaml
var recipeData []byte

var (
	storeOnce   sync.Once
	cachedStore map[string]Recipe
	storeErr    error
)

// Recipe is one named, fixed construction sequence from the catalog.
type Recipe struct {
	Name         string `yaml:"name"`
	Processor    string `yaml:"processor"`
	Memory       string `yaml:"memory"`
	Storage      string `yaml:"storage"`
	GraphicsCard string `yaml:"graphics_card"`
	AudioSystem  string `yaml:"audio_system"`
	Bluetooth    bool   `yaml:"bluetooth"`
}

// store is the on-disk catalog layout.
type store struct {
	Recipes []Recipe `yaml:"recipes"`
}

// loadStore parses the embedded catalog once and indexes recipes by name.
func loadStore() (map[string]Recipe, error) {
	storeOnce.Do(func() {
		var s store
		if err := yaml.Unmarshal(recipeData, &s); err != nil {
			storeErr = fmt.Errorf("ocx(director): unmarshal recipe catalog: %w", err)
			return
		}
		indexed := make(map[string]Recipe, len(s.Recipes))
		for _, r := range s.Recipes {
			if _, ok := indexed[r.Name]; ok {
				storeErr = fmt.Errorf("ocx(director): duplicate recipe %q in catalog", r.Name)
				return
			}
			indexed[r.Name] = r
		}
		cachedStore = indexed
	})
	return cachedStore, storeErr
}

// lookupRecipe finds a recipe by name. Callers receive a copy; the cached
// store is never handed out for mutation.
func lookupRecipe(name string) (Recipe, error) {
	recipes, err := loadStore()
	if err != nil {
		return Recipe{}, err
	}
	r, ok := recipes[name]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %q", ErrUnknownRecipe, name)
	}
	return r, nil
}

// Names returns the catalog's recipe names in sorted order.
func Names() ([]string, error) {
	recipes, err := loadStore()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
