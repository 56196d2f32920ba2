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
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/ocx/config"
	"dirpx.dev/ocx/registry"
)

// TestConcurrentInstance_SingleConstruction verifies that parallel callers
// racing on the same cold key observe exactly one factory invocation and
// all receive the identical instance.
func TestConcurrentInstance_SingleConstruction(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	var calls atomic.Int32
	workers := runtime.GOMAXPROCS(0) * 4

	start := make(chan struct{})
	results := make([]any, workers)
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(i int) {
			defer wg.Done()
			<-start
			v, err := reg.Instance("shared", func() (any, error) {
				calls.Add(1)
				return &service{name: "shared"}, nil
			})
			if err != nil {
				t.Errorf("Instance(shared): %v", err)
				return
			}
			results[i] = v
		}(w)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i])
	}
}

// TestConcurrentInstanceAndReset hammers mixed readers, constructors and
// resetters to ensure the registry stays race-free and consistent.
func TestConcurrentInstanceAndReset(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	keys := []string{"a", "b", "c", "d", "e"}

	workers := runtime.GOMAXPROCS(0) * 2
	wg := sync.WaitGroup{}

	// Constructors and readers.
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				key := keys[(i+id)%len(keys)]
				if _, err := reg.Instance(key, func() (any, error) {
					return &service{name: key}, nil
				}); err != nil {
					t.Errorf("Instance(%q): %v", key, err)
					return
				}
				_ = reg.Has(key)
				_ = reg.Count()
				_ = reg.Entries()
			}
		}(w)
	}

	// Resetters.
	wg.Add(2)
	for w := 0; w < 2; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				reg.Reset(keys[(i+id)%len(keys)])
			}
		}(w)
	}

	wg.Wait()

	// Every surviving entry still resolves to a stable identical value.
	for _, key := range keys {
		first, err := reg.Instance(key, func() (any, error) { return &service{name: key}, nil })
		require.NoError(t, err)
		second, err := reg.Instance(key, func() (any, error) { return &service{name: key}, nil })
		require.NoError(t, err)
		assert.Same(t, first, second)
	}
}
