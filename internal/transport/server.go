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
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// HandlerFunc serves one accepted connection. The connection is closed
// once the handler returns.
type HandlerFunc func(conn net.Conn)

// ServerOption configures a Server before it is started.
type ServerOption func(*Server)

// Server is a TCP server that hands every accepted connection to a
// HandlerFunc running on its own goroutine. Optional ConnWrapper layers are
// applied before the handler sees the connection.
//
// Create a Server with NewServer, call Listen then Serve. Shutdown stops
// accepting and waits for the handlers.
type Server struct {
	listenAddr     *net.TCPAddr
	listener       *net.TCPListener
	handler        HandlerFunc
	ctx            context.Context
	connWrappers   []ConnWrapper
	connWaitGroup  sync.WaitGroup
	listenConfig   net.ListenConfig
	maxAcceptConns int32

	shutdownTimeout   time.Duration
	activeConnections *atomic.Int32
	acceptedConns     *atomic.Int32
	shutdown          *atomic.Bool
	mu                sync.Mutex
}

// NewServer creates a Server bound to the given address (host:port).
func NewServer(listenAddr string, opts ...ServerOption) (*Server, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("resolving address %q: %w", listenAddr, err)
	}

	s := &Server{
		listenAddr:        tcpAddr,
		ctx:               context.Background(),
		listenConfig:      net.ListenConfig{KeepAlive: 15 * time.Second},
		activeConnections: atomic.NewInt32(0),
		acceptedConns:     atomic.NewInt32(0),
		shutdown:          atomic.NewBool(false),
	}

	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// WithHandler sets the callback invoked for every accepted connection.
func WithHandler(f HandlerFunc) ServerOption {
	return func(s *Server) { s.handler = f }
}

// WithConnWrapper appends a ConnWrapper to the wrapping pipeline. A nil
// wrapper is ignored. Wrappers are applied in the order they were added.
func WithConnWrapper(w ConnWrapper) ServerOption {
	return func(s *Server) {
		if w != nil {
			s.connWrappers = append(s.connWrappers, w)
		}
	}
}

// WithServerContext sets the context used to create the listener.
func WithServerContext(ctx context.Context) ServerOption {
	return func(s *Server) { s.ctx = ctx }
}

// WithMaxAcceptConnections sets the maximum number of connections the
// server will accept in total. Zero (the default) means unlimited.
// Connections past the limit are closed immediately.
func WithMaxAcceptConnections(limit int32) ServerOption {
	return func(s *Server) { s.maxAcceptConns = limit }
}

// ActiveConnections returns the number of connections currently being
// served.
func (s *Server) ActiveConnections() int32 {
	return s.activeConnections.Load()
}

// AcceptedConnections returns the total number of connections accepted
// since the server started.
func (s *Server) AcceptedConnections() int32 {
	return s.acceptedConns.Load()
}

// ListenAddr returns the address the server listens on, which is useful
// when the server was started on port 0. It returns nil before Listen.
func (s *Server) ListenAddr() *net.TCPAddr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	addr, _ := s.listener.Addr().(*net.TCPAddr)
	return addr
}

// Listen creates the TCP listener.
func (s *Server) Listen() error {
	network := "tcp4"
	if isIPv6Addr(s.listenAddr) {
		network = "tcp6"
	}

	listener, err := s.listenConfig.Listen(s.ctx, network, s.listenAddr.String())
	if err != nil {
		return err
	}

	tcpListener, ok := listener.(*net.TCPListener)
	if !ok {
		return errors.Join(listener.Close(), ErrInvalidListener)
	}

	s.mu.Lock()
	s.listener = tcpListener
	s.mu.Unlock()
	return nil
}

// Serve accepts connections until Shutdown is called, then waits for the
// running handlers as configured by Shutdown.
func (s *Server) Serve() error {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()

	if listener == nil {
		return ErrNoListener
	}
	if s.handler == nil {
		return ErrNoHandler
	}

	if err := s.acceptLoop(listener); err != nil {
		return err
	}
	return s.awaitConnections()
}

// Shutdown stops accepting connections. The behaviour depends on d:
//   - d > 0: Serve waits up to d for running handlers.
//   - d == 0: Serve waits indefinitely.
//   - d < 0: Serve returns without waiting.
//
// Shutdown is idempotent.
func (s *Server) Shutdown(d time.Duration) error {
	if !s.shutdown.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdownTimeout = d
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) acceptLoop(listener *net.TCPListener) error {
	for {
		if s.shutdown.Load() {
			return nil
		}

		tcpConn, err := listener.AcceptTCP()
		if err != nil {
			if s.shutdown.Load() {
				return nil
			}

			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return err
		}

		count := s.acceptedConns.Inc()
		if s.maxAcceptConns > 0 && count > s.maxAcceptConns {
			s.acceptedConns.Dec()
			_ = tcpConn.Close()
			continue
		}

		s.connWaitGroup.Add(1)
		s.activeConnections.Inc()
		go s.serveConn(tcpConn)
	}
}

func (s *Server) serveConn(tcpConn *net.TCPConn) {
	defer func() {
		s.activeConnections.Dec()
		s.connWaitGroup.Done()
	}()

	_ = tcpConn.SetNoDelay(true)
	conn, err := Wrap(tcpConn, s.connWrappers...)
	if err != nil {
		_ = tcpConn.Close()
		return
	}

	s.handler(conn)
	_ = conn.Close()
}

func (s *Server) awaitConnections() error {
	s.mu.Lock()
	timeout := s.shutdownTimeout
	s.mu.Unlock()

	if timeout < 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		s.connWaitGroup.Wait()
		close(done)
	}()

	if timeout == 0 {
		<-done
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
	}
	return nil
}

// Wrap applies wrappers to conn in order.
func Wrap(conn net.Conn, wrappers ...ConnWrapper) (net.Conn, error) {
	for _, w := range wrappers {
		if w == nil {
			continue
		}
		wrapped, err := w.Wrap(conn)
		if err != nil {
			return nil, err
		}
		conn = wrapped
	}
	return conn, nil
}

func isIPv6Addr(addr *net.TCPAddr) bool {
	return addr.IP.To4() == nil && len(addr.IP) == net.IPv6len
}
