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

import "errors"

var (
	// ErrNoListener is returned by Serve when Listen was not called.
	ErrNoListener = errors.New("transport: listener not initialized")
	// ErrInvalidListener is returned when the listener is not a TCP one.
	ErrInvalidListener = errors.New("transport: listener is not a TCP listener")
	// ErrNoHandler is returned by Serve when no connection handler is set.
	ErrNoHandler = errors.New("transport: connection handler not set")
	// ErrUnknownCompression is returned for an unsupported compression name.
	ErrUnknownCompression = errors.New("transport: unknown compression")
	// ErrZstdInvalidEncoderOpts is returned when the zstd encoder options are invalid.
	ErrZstdInvalidEncoderOpts = errors.New("transport: invalid zstd encoder options")
	// ErrZstdInvalidDecoderOpts is returned when the zstd decoder options are invalid.
	ErrZstdInvalidDecoderOpts = errors.New("transport: invalid zstd decoder options")
)
