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

// Package component provides typed, independently scheduled behavior units
// and the Holder that owns them.
package component

import (
	"context"
	"time"

	"go.uber.org/atomic"
)

// MinInterval is the smallest update interval a component may declare.
const MinInterval = 10 * time.Millisecond

// Priority tells whether a component may be detached on its own.
type Priority int

const (
	// Removable components can be detached at any time.
	Removable Priority = iota
	// Protected components live as long as their holder.
	Protected
)

// String implements fmt.Stringer.
func (p Priority) String() string {
	if p == Protected {
		return "protected"
	}
	return "removable"
}

// Component is a behavior unit attached to a Holder.
//
// OnCreate runs synchronously inside Attach. OnUpdate runs at most once per
// scheduling pass, and only when the interval has elapsed since the last
// run. OnDestroy runs when the component is detached or its holder torn
// down. Implementations embed Base.
type Component interface {
	OnCreate(ctx context.Context) error
	OnUpdate(ctx context.Context) error
	OnDestroy(ctx context.Context) error
	Interval() time.Duration
	Priority() Priority

	base() *Base
}

// Base carries the bookkeeping every component needs and the default
// lifecycle methods. Embed it by value.
type Base struct {
	owner        any
	lastExecuted atomic.Int64
	attached     atomic.Bool
}

// OnCreate is a no-op by default.
func (b *Base) OnCreate(context.Context) error { return nil }

// OnUpdate is a no-op by default.
func (b *Base) OnUpdate(context.Context) error { return nil }

// OnDestroy is a no-op by default.
func (b *Base) OnDestroy(context.Context) error { return nil }

// Interval defaults to MinInterval.
func (b *Base) Interval() time.Duration { return MinInterval }

// Priority defaults to Removable.
func (b *Base) Priority() Priority { return Removable }

// Owner returns the value the holder was created for.
func (b *Base) Owner() any { return b.owner }

// LastExecuted returns when OnUpdate last started. The zero time means never.
func (b *Base) LastExecuted() time.Time {
	nanos := b.lastExecuted.Load()
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}

// Attached reports whether the component is currently held.
func (b *Base) Attached() bool { return b.attached.Load() }

func (b *Base) base() *Base { return b }

// due reports whether now > lastExecuted + interval.
func due(c Component, now time.Time) bool {
	last := c.base().lastExecuted.Load()
	return now.UnixNano() > last+int64(c.Interval())
}
