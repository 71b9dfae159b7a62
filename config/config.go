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

// Package config holds the settings shared by the server and client
// binaries. A Config is built from defaults and options, optionally loaded
// from a YAML file with environment overrides, and can be watched for
// changes at runtime.
package config

import (
	"fmt"
	"time"

	"github.com/tochemey/goactor/internal/framer"
	"github.com/tochemey/goactor/internal/transport"
	"github.com/tochemey/goactor/internal/validation"
	"github.com/tochemey/goactor/log"
)

const (
	DefaultAddress              = "0.0.0.0:9999"
	DefaultTick                 = 10 * time.Millisecond
	DefaultRequestTimeout       = time.Second
	DefaultSessionCheckInterval = time.Second
	DefaultShutdownTimeout      = 5 * time.Second
)

// Config represents the process configuration
type Config struct {
	// Specifies the TCP listen address of the server, or the address the
	// client dials. example: 127.0.0.1:9999
	Address string `yaml:"address"`
	// Specifies the interval between two scheduling passes. It cannot be
	// lower than 10ms.
	Tick time.Duration `yaml:"tick"`
	// Specifies how long a client waits for a reply
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// Specifies how often an actor checks that its session is connected
	SessionCheckInterval time.Duration `yaml:"session_check_interval"`
	// Specifies how long the server waits for connections to drain on stop
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Specifies the largest frame accepted on the wire, in bytes
	MaxFrameSize uint32 `yaml:"max_frame_size"`
	// Specifies the log level name: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	// Specifies the transport compression: none, zstd or brotli
	Compression string `yaml:"compression"`
}

// New creates a Config with the defaults, then applies the options.
func New(options ...Option) *Config {
	config := &Config{
		Address:              DefaultAddress,
		Tick:                 DefaultTick,
		RequestTimeout:       DefaultRequestTimeout,
		SessionCheckInterval: DefaultSessionCheckInterval,
		ShutdownTimeout:      DefaultShutdownTimeout,
		MaxFrameSize:         framer.DefaultMaxFrameSize,
		LogLevel:             log.InfoLevel.String(),
		Compression:          transport.CompressionNone,
	}
	for _, opt := range options {
		opt.Apply(config)
	}
	return config
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	return log.ParseLevel(c.LogLevel)
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Validate checks the config and returns the first problem found.
func (c *Config) Validate() error {
	return validation.New(validation.FailFast()).
		AddValidator(validation.NewTCPAddressValidator(c.Address)).
		AddValidator(validation.NewDurationValidator("tick", c.Tick, DefaultTick)).
		AddValidator(validation.NewDurationValidator("request timeout", c.RequestTimeout, time.Millisecond)).
		AddValidator(validation.NewDurationValidator("session check interval", c.SessionCheckInterval, DefaultTick)).
		AddValidator(validation.NewDurationValidator("shutdown timeout", c.ShutdownTimeout, 0)).
		AddAssertion(c.MaxFrameSize > framer.HeaderSize, fmt.Sprintf("max frame size must exceed %d bytes", framer.HeaderSize)).
		AddAssertion(c.Level() != log.InvalidLevel, fmt.Sprintf("invalid log level %q", c.LogLevel)).
		AddAssertion(validCompression(c.Compression), fmt.Sprintf("invalid compression %q", c.Compression)).
		Validate()
}

func validCompression(name string) bool {
	switch name {
	case transport.CompressionNone, transport.CompressionZstd, transport.CompressionBrotli:
		return true
	default:
		return false
	}
}
