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

package actor

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"sync/atomic"

	gerrors "github.com/tochemey/goactor/errors"
	"github.com/tochemey/goactor/message"
)

// Handler serves one request type. A nil result with a nil error makes the
// dispatcher answer with message.Error. A non-nil error is logged and no
// reply is sent, so the caller eventually times out.
type Handler interface {
	Handle(ctx context.Context, actor *Actor, request any) (any, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, actor *Actor, request any) (any, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, actor *Actor, request any) (any, error) {
	return f(ctx, actor, request)
}

// Typed adapts a function taking the concrete request pointer type.
// A payload of another type fails with ErrInvalidMessage.
func Typed[T any](fn func(ctx context.Context, actor *Actor, request *T) (any, error)) Handler {
	return typed[T](fn)
}

type typed[T any] func(ctx context.Context, actor *Actor, request *T) (any, error)

func (f typed[T]) Handle(ctx context.Context, actor *Actor, request any) (any, error) {
	req, ok := request.(*T)
	if !ok {
		return nil, fmt.Errorf("%w: expected=(%T) got=(%T)", gerrors.ErrInvalidMessage, new(T), request)
	}
	return f(ctx, actor, req)
}

// String names the handler after its request type.
func (f typed[T]) String() string {
	return fmt.Sprintf("handler[%T]", new(T))
}

// Handlers maps message ids to handlers. Lookups never lock; Register and
// Reload publish a new table atomically.
type Handlers struct {
	mu      sync.Mutex
	current atomic.Pointer[map[int32]Handler]
}

// NewHandlers creates an empty handler table.
func NewHandlers() *Handlers {
	h := &Handlers{}
	empty := make(map[int32]Handler)
	h.current.Store(&empty)
	return h
}

// Register binds handler to msgID, replacing any previous binding.
func (h *Handlers) Register(msgID int32, handler Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	next := maps.Clone(*h.current.Load())
	next[msgID] = handler
	h.current.Store(&next)
}

// RegisterFor binds handler to the id registry assigns to prototype.
func (h *Handlers) RegisterFor(registry *message.Registry, prototype any, handler Handler) error {
	msgID, ok := registry.ResolveID(prototype)
	if !ok {
		return fmt.Errorf("%w: type=(%T)", gerrors.ErrUnregisteredMessage, prototype)
	}
	h.Register(msgID, handler)
	return nil
}

// Reload replaces the whole table.
func (h *Handlers) Reload(handlers map[int32]Handler) {
	next := maps.Clone(handlers)
	if next == nil {
		next = make(map[int32]Handler)
	}
	h.mu.Lock()
	h.current.Store(&next)
	h.mu.Unlock()
}

// Lookup returns the handler bound to msgID.
func (h *Handlers) Lookup(msgID int32) (Handler, bool) {
	handler, ok := (*h.current.Load())[msgID]
	return handler, ok
}

// Len returns the number of bound handlers.
func (h *Handlers) Len() int {
	return len(*h.current.Load())
}

func handlerName(handler Handler) string {
	if s, ok := handler.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", handler)
}

// invoke runs handler and turns a panic into an error.
func invoke(ctx context.Context, handler Handler, actor *Actor, request any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = gerrors.NewErrHandlerPanic(handlerName(handler), r)
		}
	}()
	result, err = handler.Handle(ctx, actor, request)
	if err != nil {
		return nil, fmt.Errorf("%w: handler=(%s): %w", gerrors.ErrHandlerFailed, handlerName(handler), err)
	}
	return result, nil
}
