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

package client

import (
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/goactor/codec"
	"github.com/tochemey/goactor/log"
)

// PushHandler receives the payload of every push sent by the server.
// It runs on the client read loop and must not block.
type PushHandler func(payload any)

// Option configures a Client.
type Option interface {
	// Apply sets the Option value of a client.
	Apply(c *Client)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Client)

// Apply implements Option.
func (f OptionFunc) Apply(c *Client) {
	f(c)
}

// WithLogger sets the client logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(c *Client) {
		c.logger = logger
	})
}

// WithTimeout sets the default reply timeout used by Request and by the
// pending request reaper.
func WithTimeout(timeout time.Duration) Option {
	return OptionFunc(func(c *Client) {
		c.timeout = timeout
	})
}

// WithDialRetries sets how many times Dial attempts to connect.
func WithDialRetries(retries int) Option {
	return OptionFunc(func(c *Client) {
		c.dialRetries = max(retries, 1)
	})
}

// WithCompression sets the transport compression. It must match the
// server's.
func WithCompression(compression string) Option {
	return OptionFunc(func(c *Client) {
		c.compression = compression
	})
}

// WithPushHandler sets the handler receiving server pushes.
func WithPushHandler(handler PushHandler) Option {
	return OptionFunc(func(c *Client) {
		c.pushHandler = handler
	})
}

// WithSerializer sets the payload serializer. Defaults to CBOR.
func WithSerializer(serializer codec.Serializer) Option {
	return OptionFunc(func(c *Client) {
		c.serializer = serializer
	})
}

// WithMaxFrameSize sets the largest frame accepted from the server.
func WithMaxFrameSize(size uint32) Option {
	return OptionFunc(func(c *Client) {
		c.maxFrameSize = size
	})
}

// WithMeter enables the client metrics.
func WithMeter(meter otelmetric.Meter) Option {
	return OptionFunc(func(c *Client) {
		c.meter = meter
	})
}
