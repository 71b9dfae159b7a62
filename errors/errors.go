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

// Package errors holds the sentinel errors shared by the server and the client.
// Callers compare with errors.Is; wrapped causes are attached with errors.Join.
package errors

import (
	"errors"
	"fmt"
)

// Framing errors. They are fatal to the connection that produced them.
var (
	// ErrInvalidFrameLength is returned when a length prefix is smaller than the prefix itself.
	ErrInvalidFrameLength = errors.New("frame length is smaller than its prefix")
	// ErrFrameTooLarge is returned when a length prefix exceeds the configured maximum.
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
)

// Registry errors.
var (
	// ErrUnknownMessageID is returned when an envelope carries a MsgId that is not registered.
	ErrUnknownMessageID = errors.New("unknown message id")
	// ErrUnregisteredMessage is returned when encoding a message whose type is not registered.
	ErrUnregisteredMessage = errors.New("message type is not registered")
	// ErrDuplicateMessageID is returned when an id is registered twice.
	ErrDuplicateMessageID = errors.New("message id already registered")
	// ErrDuplicateMessageType is returned when a type is registered twice.
	ErrDuplicateMessageType = errors.New("message type already registered")
	// ErrInvalidMessage is returned for nil messages or non-struct prototypes.
	ErrInvalidMessage = errors.New("invalid message")
)

// Request errors.
var (
	// ErrHandlerFailed wraps the error returned by a request handler.
	ErrHandlerFailed = errors.New("request handler failed")
	// ErrHandlerPanic is returned when a request handler panics.
	ErrHandlerPanic = errors.New("request handler panicked")
	// ErrEmptyResponse is returned to a caller whose request was answered with the error shape.
	ErrEmptyResponse = errors.New("request failed with an empty response")
	// ErrRequestTimeout indicates that a request timed out while waiting for a response.
	ErrRequestTimeout = errors.New("request timed out")
)

// Component errors.
var (
	// ErrComponentExists is returned when attaching a second component of the same type.
	ErrComponentExists = errors.New("component already attached")
	// ErrComponentNotFound is returned when detaching a component that is not attached.
	ErrComponentNotFound = errors.New("component not found")
	// ErrComponentProtected is returned when detaching a protected component.
	ErrComponentProtected = errors.New("component is protected")
	// ErrIntervalTooSmall is returned when a component declares an interval below the floor.
	ErrIntervalTooSmall = errors.New("component interval is below the minimum")
	// ErrComponentPanic is returned when a component lifecycle method panics.
	ErrComponentPanic = errors.New("component panicked")
)

// Lifecycle errors.
var (
	// ErrSystemNotStarted is returned when using an actor system before Start.
	ErrSystemNotStarted = errors.New("actor system has not started")
	// ErrActorNotFound indicates that the specified actor could not be found in the system.
	ErrActorNotFound = errors.New("actor not found")
	// ErrSessionClosed is returned when sending on a closed session.
	ErrSessionClosed = errors.New("session is closed")
	// ErrClientClosed is returned when using a client that has been closed.
	ErrClientClosed = errors.New("client is closed")
	// ErrServerClosed is returned when starting a server that has been stopped.
	ErrServerClosed = errors.New("server is closed")
)

// NewErrHandlerPanic wraps a recovered value from a handler named handler.
func NewErrHandlerPanic(handler string, recovered any) error {
	return fmt.Errorf("%w: handler=(%s) cause=(%v)", ErrHandlerPanic, handler, recovered)
}

// NewErrComponentPanic wraps a recovered value from a component named component.
func NewErrComponentPanic(component string, recovered any) error {
	return fmt.Errorf("%w: component=(%s) cause=(%v)", ErrComponentPanic, component, recovered)
}
