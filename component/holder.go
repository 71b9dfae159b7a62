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

package component

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"go.uber.org/multierr"

	gerrors "github.com/tochemey/goactor/errors"
)

// Holder owns at most one component per concrete type. Components are
// updated in the order they were attached.
type Holder struct {
	owner      any
	mu         sync.RWMutex
	components []Component
	byType     map[reflect.Type]Component
}

// NewHolder creates a Holder whose components report owner from Base.Owner.
func NewHolder(owner any) *Holder {
	return &Holder{
		owner:      owner,
		components: make([]Component, 0, 4),
		byType:     make(map[reflect.Type]Component, 4),
	}
}

// Attach binds c to h and runs its OnCreate before returning. It fails when
// the interval is below MinInterval, when a component of the same type is
// already attached, or when OnCreate fails; in every case h is unchanged.
func Attach[T Component](ctx context.Context, h *Holder, c T) (T, error) {
	if err := h.attach(ctx, c); err != nil {
		var zero T
		return zero, err
	}
	return c, nil
}

// Get returns the component of type T.
func Get[T Component](h *Holder) (T, bool) {
	h.mu.RLock()
	c, ok := h.byType[reflect.TypeFor[T]()]
	h.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return c.(T), true
}

// Detach removes the component of type T and runs its OnDestroy.
// Protected components are refused with ErrComponentProtected.
func Detach[T Component](ctx context.Context, h *Holder) error {
	typ := reflect.TypeFor[T]()

	h.mu.Lock()
	c, ok := h.byType[typ]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: type=(%s)", gerrors.ErrComponentNotFound, typ)
	}
	if c.Priority() == Protected {
		h.mu.Unlock()
		return fmt.Errorf("%w: type=(%s)", gerrors.ErrComponentProtected, typ)
	}
	h.remove(typ, c)
	h.mu.Unlock()

	return destroy(ctx, c)
}

// DetachAll removes every component, protected ones included, in reverse
// attach order. It is meant for tearing the holder down.
func (h *Holder) DetachAll(ctx context.Context) error {
	h.mu.Lock()
	components := h.components
	h.components = make([]Component, 0)
	h.byType = make(map[reflect.Type]Component)
	for _, c := range components {
		c.base().attached.Store(false)
	}
	h.mu.Unlock()

	var err error
	for _, c := range slices.Backward(components) {
		err = multierr.Append(err, destroy(ctx, c))
	}
	return err
}

// Components returns a snapshot of the attached components in attach order.
func (h *Holder) Components() []Component {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.components)
}

// Len returns the number of attached components.
func (h *Holder) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.components)
}

// Owner returns the value h was created for.
func (h *Holder) Owner() any {
	return h.owner
}

// Update runs OnUpdate on every due component once. The pass works on a
// snapshot and skips a component detached by an earlier update in the same
// pass, so removals during the pass are safe. Failures and panics are
// collected and returned; they never stop the pass.
func (h *Holder) Update(ctx context.Context, now time.Time) error {
	var err error
	for _, c := range h.Components() {
		if !c.base().attached.Load() || !due(c, now) {
			continue
		}
		c.base().lastExecuted.Store(now.UnixNano())
		err = multierr.Append(err, update(ctx, c))
	}
	return err
}

func (h *Holder) attach(ctx context.Context, c Component) error {
	if c == nil || reflect.ValueOf(c).IsNil() {
		return fmt.Errorf("%w: nil component", gerrors.ErrComponentNotFound)
	}

	typ := reflect.TypeOf(c)
	if c.Interval() < MinInterval {
		return fmt.Errorf("%w: type=(%s) interval=(%s) min=(%s)", gerrors.ErrIntervalTooSmall, typ, c.Interval(), MinInterval)
	}

	h.mu.RLock()
	_, exists := h.byType[typ]
	h.mu.RUnlock()
	if exists {
		return fmt.Errorf("%w: type=(%s)", gerrors.ErrComponentExists, typ)
	}

	c.base().owner = h.owner
	if err := guard(typ, func() error { return c.OnCreate(ctx) }); err != nil {
		return err
	}

	h.mu.Lock()
	if _, exists := h.byType[typ]; exists {
		h.mu.Unlock()
		_ = destroy(ctx, c)
		return fmt.Errorf("%w: type=(%s)", gerrors.ErrComponentExists, typ)
	}
	h.byType[typ] = c
	h.components = append(h.components, c)
	c.base().attached.Store(true)
	h.mu.Unlock()
	return nil
}

// remove must be called with the lock held.
func (h *Holder) remove(typ reflect.Type, c Component) {
	delete(h.byType, typ)
	h.components = slices.DeleteFunc(h.components, func(other Component) bool {
		return other == c
	})
	c.base().attached.Store(false)
}

func update(ctx context.Context, c Component) error {
	return guard(reflect.TypeOf(c), func() error { return c.OnUpdate(ctx) })
}

func destroy(ctx context.Context, c Component) error {
	return guard(reflect.TypeOf(c), func() error { return c.OnDestroy(ctx) })
}

func guard(typ reflect.Type, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = gerrors.NewErrComponentPanic(typ.String(), r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("component=(%s): %w", typ, err)
	}
	return nil
}
