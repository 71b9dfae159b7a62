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

package server

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/tochemey/goactor/actor"
	gerrors "github.com/tochemey/goactor/errors"
)

const writeTimeout = 5 * time.Second

// session is one accepted connection. Writes are serialized; reads happen
// only on the connection's read loop.
type session struct {
	id        uint32
	name      string
	conn      net.Conn
	createdAt time.Time
	connected *atomic.Bool

	writeMu   sync.Mutex
	closeOnce sync.Once
}

var _ actor.Session = (*session)(nil)

func newSession(id uint32, conn net.Conn) *session {
	return &session{
		id:        id,
		name:      uuid.NewString(),
		conn:      conn,
		createdAt: time.Now(),
		connected: atomic.NewBool(true),
	}
}

// ID implements actor.Session.
func (s *session) ID() uint32 { return s.id }

// Name implements actor.Session.
func (s *session) Name() string { return s.name }

// IsConnected implements actor.Session.
func (s *session) IsConnected() bool { return s.connected.Load() }

// RemoteAddr implements actor.Session.
func (s *session) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

// Send implements actor.Session. A failed write closes the session.
func (s *session) Send(frame []byte) error {
	if !s.connected.Load() {
		return gerrors.ErrSessionClosed
	}

	s.writeMu.Lock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err := s.conn.Write(frame)
	s.writeMu.Unlock()

	if err != nil {
		_ = s.Close()
		return fmt.Errorf("%w: %w", gerrors.ErrSessionClosed, err)
	}
	return nil
}

// Close implements actor.Session.
func (s *session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.connected.Store(false)
		err = s.conn.Close()
	})
	return err
}

func (s *session) String() string {
	return fmt.Sprintf("Session{ID: %d, Name: %s}", s.id, s.name)
}
