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

// Package codec turns message values into bytes and back.
//
// A Serializer never sees type information on the wire: the envelope
// carries the message id and the registry resolves the Go type, so
// Deserialize always decodes into a value the caller allocated.
package codec

import "errors"

var (
	// ErrNilMessage is returned when serializing a nil message.
	ErrNilMessage = errors.New("codec: message is nil")
	// ErrSerializeFailed wraps the underlying library error on encode.
	ErrSerializeFailed = errors.New("codec: failed to serialize message")
	// ErrDeserializeFailed wraps the underlying library error on decode.
	ErrDeserializeFailed = errors.New("codec: failed to deserialize message")
	// ErrUnsupportedMessage is returned when a value does not fit the serializer.
	ErrUnsupportedMessage = errors.New("codec: unsupported message type")
)

// Serializer encodes and decodes message payloads. Implementations must be
// deterministic and safe for concurrent use, and Deserialize must accept
// anything Serialize produced.
type Serializer interface {
	// Serialize encodes message.
	Serialize(message any) ([]byte, error)
	// Deserialize decodes data into target, which must be a non-nil pointer.
	Deserialize(data []byte, target any) error
}
