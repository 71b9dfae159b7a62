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
	"net"

	"github.com/andybalholm/brotli"
)

// BrotliConnWrapper compresses a connection with Brotli.
type BrotliConnWrapper struct {
	level int
}

// NewBrotliConnWrapper returns a wrapper using brotli.DefaultCompression
// unless overridden.
func NewBrotliConnWrapper(opts ...BrotliOption) *BrotliConnWrapper {
	cfg := brotliConfig{level: brotli.DefaultCompression}
	for _, o := range opts {
		o(&cfg)
	}
	return &BrotliConnWrapper{level: cfg.level}
}

// Wrap implements ConnWrapper.
func (b *BrotliConnWrapper) Wrap(conn net.Conn) (net.Conn, error) {
	return newCompressedConn(conn, brotli.NewReader(conn), brotli.NewWriterLevel(conn, b.level)), nil
}

type brotliConfig struct {
	level int
}

// BrotliOption configures NewBrotliConnWrapper.
type BrotliOption func(*brotliConfig)

// WithBrotliLevel sets the compression level, from brotli.BestSpeed to
// brotli.BestCompression.
func WithBrotliLevel(level int) BrotliOption {
	return func(c *brotliConfig) { c.level = level }
}

var _ ConnWrapper = (*BrotliConnWrapper)(nil)
var _ flushWriter = (*brotli.Writer)(nil)
