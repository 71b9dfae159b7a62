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
	"reflect"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/goactor/component"
	gerrors "github.com/tochemey/goactor/errors"
	"github.com/tochemey/goactor/internal/framer"
	"github.com/tochemey/goactor/internal/queue"
	"github.com/tochemey/goactor/log"
	"github.com/tochemey/goactor/message"
)

// Actor is the server side state of one connected peer. It owns a set of
// components and a FIFO of inbound calls waiting for the request component.
type Actor struct {
	*component.Holder

	id        int64
	system    *System
	createdAt time.Time
	logger    log.Logger
	inbox     *queue.Mpsc[*message.RemoteCall]
	stopped   atomic.Bool

	sessionMu sync.RWMutex
	session   Session
}

func newActor(id int64, system *System, session Session) *Actor {
	a := &Actor{
		id:        id,
		system:    system,
		createdAt: time.Now(),
		inbox:     queue.NewMpsc[*message.RemoteCall](),
		session:   session,
	}
	a.Holder = component.NewHolder(a)
	a.logger = system.logger.With("actor", id)
	return a
}

// ID returns the actor identifier. Ids are never reused within a process.
func (a *Actor) ID() int64 {
	return a.id
}

// System returns the owning actor system.
func (a *Actor) System() *System {
	return a.system
}

// Logger returns a logger tagged with the actor id.
func (a *Actor) Logger() log.Logger {
	return a.logger
}

// Session returns the session currently bound to the actor.
func (a *Actor) Session() Session {
	a.sessionMu.RLock()
	defer a.sessionMu.RUnlock()
	return a.session
}

// Online returns how long the actor has existed.
func (a *Actor) Online() time.Duration {
	return time.Since(a.createdAt)
}

// Stopped reports whether the actor has been removed from its system.
func (a *Actor) Stopped() bool {
	return a.stopped.Load()
}

// Enqueue adds an inbound call for the request component. It is safe to call
// from any goroutine.
func (a *Actor) Enqueue(call *message.RemoteCall) {
	a.inbox.Push(call)
}

// Pending returns the number of calls waiting in the inbox.
func (a *Actor) Pending() int64 {
	return a.inbox.Len()
}

// ChangeSession binds the actor to session, typically after a reconnect.
// The new session is installed before the old one is closed.
func (a *Actor) ChangeSession(session Session) error {
	if a.stopped.Load() {
		return gerrors.ErrActorNotFound
	}

	a.sessionMu.Lock()
	old := a.session
	a.session = session
	a.sessionMu.Unlock()

	a.system.rebind(a, old, session)
	if old != nil && old != session {
		if err := old.Close(); err != nil {
			a.logger.Warnf("failed to close replaced session=(%s): %v", old.Name(), err)
		}
	}
	return nil
}

// Respond sends result as the reply to requestID. A nil result, including a
// typed nil pointer, is replaced with message.Error so the caller learns that
// the request failed.
func (a *Actor) Respond(requestID int32, result any) error {
	if isNil(result) {
		result = &message.Error{}
	}
	return a.send(requestID, result)
}

// Push sends msg with no correlation id. The peer expects no reply.
func (a *Actor) Push(msg any) error {
	if msg == nil {
		return gerrors.ErrInvalidMessage
	}
	return a.send(0, msg)
}

func (a *Actor) send(requestID int32, msg any) error {
	session := a.Session()
	if session == nil || !session.IsConnected() {
		return gerrors.ErrSessionClosed
	}

	blob, err := a.system.codec.Encode(requestID, msg)
	if err != nil {
		return err
	}
	return session.Send(framer.Encode(blob))
}

// String implements fmt.Stringer.
func (a *Actor) String() string {
	session := a.Session()
	if session == nil {
		return fmt.Sprintf("Actor{ID: %d}", a.id)
	}
	return fmt.Sprintf("Actor{ID: %d, Session: %s}", a.id, session.Name())
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}

func (a *Actor) destroy(ctx context.Context) error {
	return a.DetachAll(ctx)
}
