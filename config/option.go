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

package config

import "time"

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *Config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Config)

// Apply implements Option.
func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithAddress sets the listen or dial address
func WithAddress(address string) Option {
	return OptionFunc(func(config *Config) {
		config.Address = address
	})
}

// WithTick sets the scheduling pass interval
func WithTick(tick time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.Tick = tick
	})
}

// WithRequestTimeout sets the client reply timeout
func WithRequestTimeout(timeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.RequestTimeout = timeout
	})
}

// WithSessionCheckInterval sets how often sessions are checked
func WithSessionCheckInterval(interval time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.SessionCheckInterval = interval
	})
}

// WithShutdownTimeout sets how long the server drains connections
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.ShutdownTimeout = timeout
	})
}

// WithMaxFrameSize sets the largest accepted frame
func WithMaxFrameSize(size uint32) Option {
	return OptionFunc(func(config *Config) {
		config.MaxFrameSize = size
	})
}

// WithLogLevel sets the log level name
func WithLogLevel(level string) Option {
	return OptionFunc(func(config *Config) {
		config.LogLevel = level
	})
}

// WithCompression sets the transport compression
func WithCompression(compression string) Option {
	return OptionFunc(func(config *Config) {
		config.Compression = compression
	})
}
