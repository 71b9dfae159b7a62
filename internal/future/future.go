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
	"sync"
	"time"
)

// Result holds the outcome of a Future
type Result[T any] struct {
	success T
	failure error
}

// Success returns the successful result of the future
func (x Result[T]) Success() T {
	return x.success
}

// Failure returns the error
func (x Result[T]) Failure() error {
	return x.failure
}

// Future is a write-once completion slot. The first Complete or Fail wins;
// later calls are no-ops and report false.
type Future[T any] struct {
	once   sync.Once
	wait   chan struct{}
	result Result[T]
}

// New creates an uncompleted Future
func New[T any]() *Future[T] {
	return &Future[T]{wait: make(chan struct{})}
}

// Complete resolves the future with value.
func (f *Future[T]) Complete(value T) bool {
	return f.resolve(Result[T]{success: value})
}

// Fail resolves the future with err.
func (f *Future[T]) Fail(err error) bool {
	return f.resolve(Result[T]{failure: err})
}

// Done is closed once the future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.wait
}

// Await blocks until the future is resolved, the timeout elapses or ctx is
// done. A non-positive timeout waits on ctx only. onTimeout is returned as
// the failure when the timeout wins; the future itself is left untouched so
// the owner decides whether to fail it.
func (f *Future[T]) Await(ctx context.Context, timeout time.Duration, onTimeout error) Result[T] {
	select {
	case <-f.wait:
		return f.result
	default:
	}

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case <-f.wait:
		return f.result
	case <-timer:
		return Result[T]{failure: onTimeout}
	case <-ctx.Done():
		return Result[T]{failure: ctx.Err()}
	}
}

func (f *Future[T]) resolve(result Result[T]) bool {
	won := false
	f.once.Do(func() {
		f.result = result
		close(f.wait)
		won = true
	})
	return won
}
