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

package singleton_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/ocx/singleton"
)

// TestGuarded_ParallelFirstAccess verifies the check-and-construct sequence
// is serialized: parallel cold-start callers observe exactly one
// construction and share the instance.
func TestGuarded_ParallelFirstAccess(t *testing.T) {
	var calls atomic.Int32
	g := singleton.NewGuarded(func() (*appConfig, error) {
		calls.Add(1)
		return &appConfig{env: "prod"}, nil
	})

	workers := runtime.GOMAXPROCS(0) * 4
	results := make([]*appConfig, workers)
	start := make(chan struct{})

	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(i int) {
			defer wg.Done()
			<-start
			v, err := g.Instance()
			if err != nil {
				t.Errorf("Instance: %v", err)
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

// TestGuarded_ParallelHookAttempts verifies unauthorized construction fails
// deterministically even while legitimate accesses run in parallel.
func TestGuarded_ParallelHookAttempts(t *testing.T) {
	g := singleton.NewGuarded(func() (*appConfig, error) {
		return &appConfig{}, nil
	})

	workers := runtime.GOMAXPROCS(0) * 2
	wg := sync.WaitGroup{}
	wg.Add(workers * 2)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if _, err := g.Instance(); err != nil {
					t.Errorf("Instance: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if _, err := g.NewInstance(); err == nil {
					t.Error("NewInstance succeeded outside an authorized construction")
					return
				}
			}
		}()
	}
	wg.Wait()
}

// TestLazy_ParallelAccessAndReset hammers a lazy slot with mixed accesses
// and resets to ensure it stays race-free.
func TestLazy_ParallelAccessAndReset(t *testing.T) {
	var generation atomic.Int64
	l := singleton.NewLazy(func() int64 {
		return generation.Add(1)
	})

	workers := runtime.GOMAXPROCS(0) * 2
	wg := sync.WaitGroup{}
	wg.Add(workers + 1)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if got := l.Instance(); got == 0 {
					t.Error("Instance returned the zero value")
					return
				}
				_ = l.Initialized()
			}
		}()
	}
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			l.Reset()
		}
	}()
	wg.Wait()

	// After the dust settles, access is stable again.
	assert.Equal(t, l.Instance(), l.Instance())
}
