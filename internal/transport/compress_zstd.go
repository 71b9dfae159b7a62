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

package transport

import (
	"errors"
	"net"

	"github.com/klauspost/compress/zstd"
)

// ZstdConnWrapper compresses a connection with Zstandard.
type ZstdConnWrapper struct {
	encoderOpts []zstd.EOption
	decoderOpts []zstd.DOption
}

// NewZstdConnWrapper validates the options by building one encoder and one
// decoder, then returns the wrapper.
func NewZstdConnWrapper(opts ...ZstdOption) (*ZstdConnWrapper, error) {
	cfg := zstdConfig{
		level:  zstd.SpeedDefault,
		window: 512 << 10,
		maxMem: 64 << 20,
	}
	for _, o := range opts {
		o(&cfg)
	}

	encOpts := []zstd.EOption{
		zstd.WithEncoderLevel(cfg.level),
		zstd.WithWindowSize(cfg.window),
		zstd.WithEncoderConcurrency(1),
		zstd.WithLowerEncoderMem(true),
	}
	decOpts := []zstd.DOption{
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(cfg.maxMem),
	}

	enc, err := zstd.NewWriter(nil, encOpts...)
	if err != nil {
		return nil, errors.Join(ErrZstdInvalidEncoderOpts, err)
	}
	_ = enc.Close()

	dec, err := zstd.NewReader(nil, decOpts...)
	if err != nil {
		return nil, errors.Join(ErrZstdInvalidDecoderOpts, err)
	}
	dec.Close()

	return &ZstdConnWrapper{encoderOpts: encOpts, decoderOpts: decOpts}, nil
}

// Wrap implements ConnWrapper.
func (z *ZstdConnWrapper) Wrap(conn net.Conn) (net.Conn, error) {
	enc, err := zstd.NewWriter(conn, z.encoderOpts...)
	if err != nil {
		return nil, errors.Join(ErrZstdInvalidEncoderOpts, err)
	}
	dec, err := zstd.NewReader(conn, z.decoderOpts...)
	if err != nil {
		_ = enc.Close()
		return nil, errors.Join(ErrZstdInvalidDecoderOpts, err)
	}
	return newCompressedConn(conn, dec, enc), nil
}

type zstdConfig struct {
	level  zstd.EncoderLevel
	window int
	maxMem uint64
}

// ZstdOption configures NewZstdConnWrapper.
type ZstdOption func(*zstdConfig)

// WithZstdLevel sets the Zstandard compression level.
func WithZstdLevel(level zstd.EncoderLevel) ZstdOption {
	return func(c *zstdConfig) { c.level = level }
}

// WithZstdWindow sets the maximum window size for the encoder.
func WithZstdWindow(size int) ZstdOption {
	return func(c *zstdConfig) { c.window = size }
}

// WithZstdDecoderMaxMemory sets the decoder memory limit.
func WithZstdDecoderMaxMemory(n uint64) ZstdOption {
	return func(c *zstdConfig) { c.maxMem = n }
}

var _ ConnWrapper = (*ZstdConnWrapper)(nil)
var _ flushWriter = (*zstd.Encoder)(nil)
