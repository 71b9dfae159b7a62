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

package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

var errTimeout = errors.New("timeout")

func TestFuture(t *testing.T) {
	t.Run("With completion", func(t *testing.T) {
		f := New[string]()
		go func() { f.Complete("done") }()
		result := f.Await(context.Background(), time.Second, errTimeout)
		require.NoError(t, result.Failure())
		assert.Equal(t, "done", result.Success())
	})
	t.Run("With failure", func(t *testing.T) {
		f := New[string]()
		cause := errors.New("failed")
		require.True(t, f.Fail(cause))
		assert.ErrorIs(t, f.Await(context.Background(), 0, errTimeout).Failure(), cause)
	})
	t.Run("With timeout", func(t *testing.T) {
		f := New[int]()
		result := f.Await(context.Background(), 20*time.Millisecond, errTimeout)
		assert.ErrorIs(t, result.Failure(), errTimeout)
		select {
		case <-f.Done():
			t.Fatal("future must stay unresolved after a timeout")
		default:
		}
	})
	t.Run("With context cancellation", func(t *testing.T) {
		f := New[int]()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, f.Await(ctx, time.Second, errTimeout).Failure(), context.Canceled)
	})
	t.Run("With exactly one winner", func(t *testing.T) {
		f := New[int]()
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var won bool
				if i%2 == 0 {
					won = f.Complete(i)
				} else {
					won = f.Fail(errTimeout)
				}
				if won {
					wins.Inc()
				}
			}(i)
		}
		wg.Wait()
		assert.EqualValues(t, 1, wins.Load())
		assert.False(t, f.Complete(100))
		<-f.Done()
	})
}
