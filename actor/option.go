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
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/goactor/component"
	"github.com/tochemey/goactor/log"
	"github.com/tochemey/goactor/message"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(sys *System)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*System)

// Apply implements Option.
func (f OptionFunc) Apply(sys *System) {
	f(sys)
}

// ComponentFactory builds an application component for a new actor.
type ComponentFactory func(actor *Actor) component.Component

// UnhandledFunc observes an inbound call that had no handler.
type UnhandledFunc func(actor *Actor, call *message.RemoteCall)

// WithLogger sets the actor system custom log
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(sys *System) {
		sys.logger = logger
	})
}

// WithTick sets the interval between two scheduling passes.
// Values below component.MinInterval are raised to it.
func WithTick(tick time.Duration) Option {
	return OptionFunc(func(sys *System) {
		sys.tick = max(tick, component.MinInterval)
	})
}

// WithSessionCheckInterval sets how often an actor checks its session.
func WithSessionCheckInterval(interval time.Duration) Option {
	return OptionFunc(func(sys *System) {
		sys.sessionCheckInterval = max(interval, component.MinInterval)
	})
}

// WithComponents registers factories whose components are attached to every
// new actor after the built-in ones, in the given order.
func WithComponents(factories ...ComponentFactory) Option {
	return OptionFunc(func(sys *System) {
		sys.factories = append(sys.factories, factories...)
	})
}

// WithUnhandled sets a hook called for every call dropped for lack of a
// handler. By default such calls are dropped silently.
func WithUnhandled(fn UnhandledFunc) Option {
	return OptionFunc(func(sys *System) {
		sys.unhandled = fn
	})
}

// WithMeter enables metrics recorded on meter.
func WithMeter(meter otelmetric.Meter) Option {
	return OptionFunc(func(sys *System) {
		sys.meter = meter
	})
}
