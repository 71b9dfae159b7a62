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
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/goactor/component"
	"github.com/tochemey/goactor/internal/metric"
	"github.com/tochemey/goactor/message"
)

func attach(ctx context.Context, actor *Actor, c component.Component) error {
	_, err := component.Attach(ctx, actor.Holder, c)
	return err
}

// SessionComponent removes its actor once the session is no longer
// connected.
type SessionComponent struct {
	component.Base
	interval time.Duration
}

func newSessionComponent(interval time.Duration) *SessionComponent {
	return &SessionComponent{interval: interval}
}

// Interval implements component.Component.
func (c *SessionComponent) Interval() time.Duration { return c.interval }

// Priority implements component.Component.
func (c *SessionComponent) Priority() component.Priority { return component.Protected }

// OnUpdate implements component.Component.
func (c *SessionComponent) OnUpdate(ctx context.Context) error {
	actor := c.Owner().(*Actor)
	session := actor.Session()
	if session != nil && session.IsConnected() {
		return nil
	}
	actor.logger.Infof("session disconnected, removing actor")
	actor.system.RemoveActor(ctx, actor)
	return nil
}

// RequestComponent drains the actor inbox and dispatches every call to its
// handler. Replies are sent from the execution goroutine once the handler
// returns.
type RequestComponent struct {
	component.Base
	inflight mapset.Set[int32]
}

func newRequestComponent() *RequestComponent {
	return &RequestComponent{inflight: mapset.NewSet[int32]()}
}

// Priority implements component.Component.
func (c *RequestComponent) Priority() component.Priority { return component.Protected }

// InFlight returns the number of requests whose handler has not returned.
func (c *RequestComponent) InFlight() int { return c.inflight.Cardinality() }

// OnUpdate implements component.Component.
func (c *RequestComponent) OnUpdate(context.Context) error {
	actor := c.Owner().(*Actor)
	for _, call := range actor.inbox.Drain() {
		c.dispatch(actor, call)
	}
	return nil
}

// OnDestroy implements component.Component.
func (c *RequestComponent) OnDestroy(context.Context) error {
	if n := c.inflight.Cardinality(); n > 0 {
		c.Owner().(*Actor).logger.Warnf("dropping replies of %d in-flight request(s)", n)
	}
	c.inflight.Clear()
	return nil
}

func (c *RequestComponent) dispatch(actor *Actor, call *message.RemoteCall) {
	sys := actor.system
	handler, ok := sys.handlers.Lookup(call.MsgID)
	if !ok {
		sys.record((*metric.SystemMetric).Dropped)
		actor.logger.Debugf("no handler for msgID=(%d), dropping %s", call.MsgID, call)
		if sys.unhandled != nil {
			sys.unhandled(actor, call)
		}
		return
	}

	if !call.IsPush() {
		if c.inflight.Contains(call.RequestID) {
			actor.logger.Warnf("requestID=(%d) is already in flight, dropping %s", call.RequestID, call)
			return
		}
		c.inflight.Add(call.RequestID)
	}

	sys.record((*metric.SystemMetric).Dispatched)
	ctx := sys.ctx
	go func() {
		result, err := invoke(ctx, handler, actor, call.Payload)
		sys.post(func() {
			if !call.IsPush() {
				c.inflight.Remove(call.RequestID)
			}
			c.complete(actor, handler, call, result, err)
		})
	}()
}

func (c *RequestComponent) complete(actor *Actor, handler Handler, call *message.RemoteCall, result any, err error) {
	if err != nil {
		actor.system.record((*metric.SystemMetric).Failed)
		actor.logger.Errorf("handler=(%s) failed for %s: %v", handlerName(handler), call, err)
		return
	}
	if call.IsPush() || actor.Stopped() {
		return
	}
	if err := actor.Respond(call.RequestID, result); err != nil {
		actor.logger.Warnf("failed to reply to requestID=(%d): %v", call.RequestID, err)
	}
}
