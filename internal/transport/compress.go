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
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// ConnWrapper decorates a raw connection, for instance with compression.
// Both peers must use the same wrapper.
type ConnWrapper interface {
	Wrap(conn net.Conn) (net.Conn, error)
}

// NewConnWrapper returns the wrapper registered under name. The none
// compression returns a nil wrapper.
func NewConnWrapper(name string) (ConnWrapper, error) {
	switch name {
	case "", CompressionNone:
		return nil, nil
	case CompressionZstd:
		return NewZstdConnWrapper()
	case CompressionBrotli:
		return NewBrotliConnWrapper(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

type flushWriter interface {
	io.Writer
	Flush() error
	Close() error
}

// compressedConn compresses writes and decompresses reads. Every Write is
// flushed so that a frame never waits behind the compressor's buffer.
type compressedConn struct {
	raw    net.Conn
	reader io.Reader

	writeMu sync.Mutex
	writer  flushWriter

	closeOnce sync.Once
	closeErr  error
}

func newCompressedConn(raw net.Conn, r io.Reader, w flushWriter) *compressedConn {
	return &compressedConn{raw: raw, reader: r, writer: w}
}

func (c *compressedConn) Read(p []byte) (int, error) {
	return c.reader.Read(p)
}

func (c *compressedConn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	n, err := c.writer.Write(p)
	if err != nil {
		return n, err
	}
	if err := c.writer.Flush(); err != nil {
		return n, err
	}
	return n, nil
}

// Close closes the raw connection first so a blocked Write returns, then
// releases the compressor.
func (c *compressedConn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.raw.Close()
		c.writeMu.Lock()
		_ = c.writer.Close()
		c.writeMu.Unlock()
	})
	return c.closeErr
}

func (c *compressedConn) LocalAddr() net.Addr                { return c.raw.LocalAddr() }
func (c *compressedConn) RemoteAddr() net.Addr               { return c.raw.RemoteAddr() }
func (c *compressedConn) SetDeadline(t time.Time) error      { return c.raw.SetDeadline(t) }
func (c *compressedConn) SetReadDeadline(t time.Time) error  { return c.raw.SetReadDeadline(t) }
func (c *compressedConn) SetWriteDeadline(t time.Time) error { return c.raw.SetWriteDeadline(t) }

var _ net.Conn = (*compressedConn)(nil)
