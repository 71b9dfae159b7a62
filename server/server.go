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

// Package server accepts TCP connections, turns each of them into a
// session and feeds the decoded calls to the actor system.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/goactor/actor"
	"github.com/tochemey/goactor/codec"
	"github.com/tochemey/goactor/config"
	gerrors "github.com/tochemey/goactor/errors"
	"github.com/tochemey/goactor/internal/framer"
	"github.com/tochemey/goactor/internal/transport"
	"github.com/tochemey/goactor/internal/xsync"
	"github.com/tochemey/goactor/log"
	"github.com/tochemey/goactor/message"
)

const readBufferSize = 64 << 10

// Server binds the configured address and serves the actor system.
type Server struct {
	config       *config.Config
	logger       log.Logger
	serializer   codec.Serializer
	actorOptions []actor.Option

	codec     *message.Codec
	system    *actor.System
	transport *transport.Server

	sessions *xsync.Map[uint32, *session]
	nextID   *atomic.Uint32

	mu      sync.Mutex
	started *atomic.Bool
	stopped *atomic.Bool
	serveCh chan error
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a Server. registry must already hold every message the
// handlers exchange.
func New(cfg *config.Config, registry *message.Registry, handlers *actor.Handlers, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	srv := &Server{
		config:   cfg,
		logger:   log.DefaultLogger,
		sessions: xsync.NewMap[uint32, *session](),
		nextID:   atomic.NewUint32(0),
		started:  atomic.NewBool(false),
		stopped:  atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(srv)
	}

	wrapper, err := transport.NewConnWrapper(cfg.Compression)
	if err != nil {
		return nil, err
	}

	srv.transport, err = transport.NewServer(cfg.Address,
		transport.WithHandler(srv.serveConn),
		transport.WithConnWrapper(wrapper))
	if err != nil {
		return nil, err
	}

	srv.codec = message.NewCodec(registry, srv.serializer)
	srv.system = actor.NewSystem(srv.codec, handlers, append([]actor.Option{
		actor.WithLogger(srv.logger),
		actor.WithTick(cfg.Tick),
		actor.WithSessionCheckInterval(cfg.SessionCheckInterval),
	}, srv.actorOptions...)...)
	return srv, nil
}

// Start starts the actor system, then begins accepting connections.
func (srv *Server) Start(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.stopped.Load() {
		return gerrors.ErrServerClosed
	}
	if srv.started.Load() {
		return nil
	}

	if err := srv.system.Start(ctx); err != nil {
		return err
	}
	if err := srv.transport.Listen(); err != nil {
		return errors.Join(err, srv.system.Stop(ctx))
	}

	srv.ctx, srv.cancel = context.WithCancel(context.WithoutCancel(ctx))
	srv.serveCh = make(chan error, 1)
	go func() { srv.serveCh <- srv.transport.Serve() }()
	srv.started.Store(true)

	bindIP, err := transport.GetBindIP(srv.Addr())
	if err != nil {
		bindIP = srv.Addr()
	}
	srv.logger.Infof("server listening on %s (advertised ip=%s, compression=%s)", srv.Addr(), bindIP, srv.config.Compression)
	return nil
}

// Stop closes the listener and every session, waits for the read loops
// within the configured shutdown timeout and stops the actor system.
// A stopped server cannot be restarted.
func (srv *Server) Stop(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if !srv.started.Load() || srv.stopped.Load() {
		return nil
	}
	srv.stopped.Store(true)

	err := srv.transport.Shutdown(srv.config.ShutdownTimeout)

	eg, _ := errgroup.WithContext(ctx)
	for _, s := range srv.sessions.Values() {
		eg.Go(s.Close)
	}
	_ = eg.Wait()

	select {
	case serveErr := <-srv.serveCh:
		err = errors.Join(err, serveErr)
	case <-ctx.Done():
		err = errors.Join(err, ctx.Err())
	}

	srv.cancel()
	err = errors.Join(err, srv.system.Stop(ctx))
	srv.started.Store(false)
	srv.logger.Info("server stopped")
	return err
}

// Addr returns the address the server listens on.
func (srv *Server) Addr() string {
	addr := srv.transport.ListenAddr()
	if addr == nil {
		return srv.config.Address
	}
	return addr.String()
}

// System returns the actor system.
func (srv *Server) System() *actor.System {
	return srv.system
}

// Codec returns the envelope codec.
func (srv *Server) Codec() *message.Codec {
	return srv.codec
}

// Sessions returns the number of open sessions, with or without an actor.
func (srv *Server) Sessions() int {
	return srv.sessions.Len()
}

// OnlineSessions returns the ids of the open sessions.
func (srv *Server) OnlineSessions() []uint32 {
	sessions := srv.sessions.Values()
	ids := make([]uint32, 0, len(sessions))
	for _, s := range sessions {
		if s.IsConnected() {
			ids = append(ids, s.id)
		}
	}
	return ids
}

// Kick disconnects a session. Its actor, if any, is removed by the next
// session check.
func (srv *Server) Kick(sessionID uint32) error {
	s, ok := srv.sessions.Get(sessionID)
	if !ok {
		return fmt.Errorf("%w: session=(%d)", gerrors.ErrSessionClosed, sessionID)
	}
	srv.logger.Infof("kicking %s", s)
	return s.Close()
}

func (srv *Server) serveConn(conn net.Conn) {
	s := newSession(srv.nextID.Inc(), conn)
	srv.sessions.Set(s.id, s)
	defer func() {
		srv.sessions.Delete(s.id)
		_ = s.Close()
	}()

	srv.logger.Debugf("%s opened from %s", s, s.RemoteAddr())
	if srv.stopped.Load() {
		return
	}

	frames := framer.New(srv.config.MaxFrameSize)
	buf := make([]byte, readBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			_, _ = frames.Write(buf[:n])
			if ferr := srv.drain(s, frames); ferr != nil {
				srv.logReadError(s, ferr)
				return
			}
		}
		if err != nil {
			srv.logReadError(s, err)
			return
		}
	}
}

// drain hands every complete frame buffered in frames to the session actor.
// Partial frames stay buffered until the next read completes them.
func (srv *Server) drain(s *session, frames *framer.Framer) error {
	for {
		payload, err := frames.Next()
		if err != nil || payload == nil {
			return err
		}

		call, err := srv.codec.Decode(payload)
		if err != nil {
			if call != nil {
				srv.logger.Warnf("%s: dropping %s: %v", s, call, err)
			} else {
				srv.logger.Warnf("%s: dropping undecodable frame: %v", s, err)
			}
			continue
		}

		a, err := srv.system.AddActor(srv.ctx, s)
		if err != nil {
			return fmt.Errorf("failed to create actor: %w", err)
		}
		a.Enqueue(call)
	}
}

func (srv *Server) logReadError(s *session, err error) {
	switch {
	case errors.Is(err, gerrors.ErrInvalidFrameLength), errors.Is(err, gerrors.ErrFrameTooLarge):
		srv.logger.Warnf("%s: closing on framing error: %v", s, err)
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed), !s.IsConnected():
		srv.logger.Debugf("%s closed", s)
	default:
		srv.logger.Warnf("%s: read failed: %v", s, err)
	}
}
