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

package server

import (
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/goactor/actor"
	"github.com/tochemey/goactor/codec"
	"github.com/tochemey/goactor/log"
)

// Option configures a Server.
type Option interface {
	// Apply sets the Option value of a server.
	Apply(srv *Server)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Server)

// Apply implements Option.
func (f OptionFunc) Apply(srv *Server) {
	f(srv)
}

// WithLogger sets the server logger. It is handed to the actor system too.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(srv *Server) {
		srv.logger = logger
	})
}

// WithSerializer sets the payload serializer. Defaults to CBOR.
func WithSerializer(serializer codec.Serializer) Option {
	return OptionFunc(func(srv *Server) {
		srv.serializer = serializer
	})
}

// WithMeter enables the actor system metrics.
func WithMeter(meter otelmetric.Meter) Option {
	return OptionFunc(func(srv *Server) {
		srv.actorOptions = append(srv.actorOptions, actor.WithMeter(meter))
	})
}

// WithActorOptions passes extra options to the actor system, for instance
// actor.WithComponents.
func WithActorOptions(opts ...actor.Option) Option {
	return OptionFunc(func(srv *Server) {
		srv.actorOptions = append(srv.actorOptions, opts...)
	})
}
