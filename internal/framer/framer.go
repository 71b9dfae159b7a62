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

// Package framer splits a byte stream into length-prefixed frames.
//
// A frame is a 4-byte little-endian length followed by the payload. The
// length counts the prefix itself, so the smallest valid frame is 4 bytes
// long and carries an empty payload.
package framer

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gerrors "github.com/tochemey/goactor/errors"
)

const (
	// HeaderSize is the size of the length prefix
	HeaderSize = 4
	// DefaultMaxFrameSize bounds a single frame unless configured otherwise
	DefaultMaxFrameSize = 16 << 20
)

// Framer accumulates bytes read from a connection and yields complete
// payloads. It is not safe for concurrent use; each connection read loop
// owns its own Framer.
type Framer struct {
	buf     []byte
	start   int
	maxSize uint32
}

// New creates a Framer rejecting frames larger than maxSize.
// A zero maxSize selects DefaultMaxFrameSize.
func New(maxSize uint32) *Framer {
	if maxSize == 0 {
		maxSize = DefaultMaxFrameSize
	}
	return &Framer{maxSize: maxSize}
}

// Write appends received bytes to the pending buffer.
func (f *Framer) Write(p []byte) (int, error) {
	if f.start > 0 && f.start == len(f.buf) {
		f.buf = f.buf[:0]
		f.start = 0
	}
	f.buf = append(f.buf, p...)
	return len(p), nil
}

// Buffered returns the number of bytes not yet consumed.
func (f *Framer) Buffered() int {
	return len(f.buf) - f.start
}

// Next returns the payload of the next complete frame. It returns nil and
// no error when the buffered bytes do not hold a complete frame yet; those
// bytes are kept for the next call. The returned slice is a copy and stays
// valid after subsequent writes.
func (f *Framer) Next() ([]byte, error) {
	pending := f.buf[f.start:]
	if len(pending) < HeaderSize {
		f.compact()
		return nil, nil
	}

	length := binary.LittleEndian.Uint32(pending)
	if err := checkLength(length, f.maxSize); err != nil {
		return nil, err
	}

	if uint32(len(pending)) < length {
		f.compact()
		return nil, nil
	}

	payload := make([]byte, length-HeaderSize)
	copy(payload, pending[HeaderSize:length])
	f.start += int(length)
	return payload, nil
}

// Reset drops every buffered byte.
func (f *Framer) Reset() {
	f.buf = f.buf[:0]
	f.start = 0
}

// compact moves the unconsumed tail to the front of the buffer so the
// backing array does not grow without bound on long-lived connections.
func (f *Framer) compact() {
	if f.start == 0 {
		return
	}
	n := copy(f.buf, f.buf[f.start:])
	f.buf = f.buf[:n]
	f.start = 0
}

// Encode prefixes payload with its frame length.
func Encode(payload []byte) []byte {
	frame := make([]byte, HeaderSize+len(payload))
	binary.LittleEndian.PutUint32(frame, uint32(HeaderSize+len(payload)))
	copy(frame[HeaderSize:], payload)
	return frame
}

// ReadFrame reads exactly one frame from r and returns its payload.
// io.EOF is returned untouched when r is exhausted on a frame boundary.
func ReadFrame(r *bufio.Reader, maxSize uint32) ([]byte, error) {
	if maxSize == 0 {
		maxSize = DefaultMaxFrameSize
	}

	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}

	length := binary.LittleEndian.Uint32(header[:])
	if err := checkLength(length, maxSize); err != nil {
		return nil, err
	}

	payload := make([]byte, length-HeaderSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return payload, nil
}

func checkLength(length, maxSize uint32) error {
	if length < HeaderSize {
		return fmt.Errorf("%w: length=(%d)", gerrors.ErrInvalidFrameLength, length)
	}
	if length > maxSize {
		return fmt.Errorf("%w: length=(%d) max=(%d)", gerrors.ErrFrameTooLarge, length, maxSize)
	}
	return nil
}
