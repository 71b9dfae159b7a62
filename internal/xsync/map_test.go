// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package xsync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestMap(t *testing.T) {
	t.Run("With basic operations", func(t *testing.T) {
		m := NewMap[string, int]()
		m.Set("a", 1)
		m.Set("b", 2)

		value, ok := m.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, value)
		assert.Equal(t, 2, m.Len())
		assert.ElementsMatch(t, []int{1, 2}, m.Values())

		m.Delete("a")
		_, ok = m.Get("a")
		assert.False(t, ok)

		old := m.Reset()
		assert.Equal(t, map[string]int{"b": 2}, old)
		assert.Zero(t, m.Len())
	})
	t.Run("With take acting once", func(t *testing.T) {
		m := NewMap[int, string]()
		m.Set(1, "one")

		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, ok := m.Take(1); ok {
					wins.Inc()
				}
			}()
		}
		wg.Wait()
		assert.EqualValues(t, 1, wins.Load())
	})
	t.Run("With get or set creating once", func(t *testing.T) {
		m := NewMap[int, *int]()
		var created atomic.Int32
		var wg sync.WaitGroup
		results := make([]*int, 10)
		for i := range 10 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = m.GetOrSet(7, func() *int {
					created.Inc()
					v := 7
					return &v
				})
			}(i)
		}
		wg.Wait()
		assert.EqualValues(t, 1, created.Load())
		for _, result := range results {
			assert.Same(t, results[0], result)
		}
	})
}
