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

// Package client connects to a server and correlates replies with the
// requests that produced them.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/goactor/codec"
	gerrors "github.com/tochemey/goactor/errors"
	"github.com/tochemey/goactor/internal/framer"
	"github.com/tochemey/goactor/internal/future"
	"github.com/tochemey/goactor/internal/metric"
	"github.com/tochemey/goactor/internal/ticker"
	"github.com/tochemey/goactor/internal/transport"
	"github.com/tochemey/goactor/internal/xsync"
	"github.com/tochemey/goactor/log"
	"github.com/tochemey/goactor/message"
)

const (
	// DefaultTimeout is the reply timeout when none is configured
	DefaultTimeout = time.Second

	defaultDialRetries = 5
	reapInterval       = 100 * time.Millisecond
	readBufferSize     = 64 << 10
)

// pendingCall is the completion slot of one request.
type pendingCall struct {
	id       int32
	future   *future.Future[any]
	deadline time.Time
	awaiting *atomic.Bool
}

// Client is a connection to a server.
//
// Replies are matched to requests by RequestID. Every request gets exactly
// one outcome: the reply, a timeout, or a failure when the connection is
// lost or the client closed. The pending entry is removed with it.
type Client struct {
	address      string
	logger       log.Logger
	timeout      time.Duration
	dialRetries  int
	compression  string
	pushHandler  PushHandler
	serializer   codec.Serializer
	maxFrameSize uint32
	meter        otelmetric.Meter

	codec   *message.Codec
	conn    net.Conn
	writeMu sync.Mutex

	nextID  *atomic.Int32
	pending *xsync.Map[int32, *pendingCall]
	closed  *atomic.Bool

	reaper       *ticker.Ticker
	stopCh       chan struct{}
	eg           *errgroup.Group
	closeOnce    sync.Once
	metrics      *metric.ClientMetric
	registration otelmetric.Registration
}

// Dial connects to address. The connection is attempted up to the
// configured number of retries with a backoff.
func Dial(ctx context.Context, address string, registry *message.Registry, opts ...Option) (*Client, error) {
	c := &Client{
		address:     address,
		logger:      log.DefaultLogger,
		timeout:     DefaultTimeout,
		dialRetries: defaultDialRetries,
		compression: transport.CompressionNone,
		nextID:      atomic.NewInt32(0),
		pending:     xsync.NewMap[int32, *pendingCall](),
		closed:      atomic.NewBool(false),
		stopCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt.Apply(c)
	}
	c.codec = message.NewCodec(registry, c.serializer)

	wrapper, err := transport.NewConnWrapper(c.compression)
	if err != nil {
		return nil, err
	}

	var raw net.Conn
	dialer := &net.Dialer{KeepAlive: 15 * time.Second}
	retrier := retry.NewRetrier(c.dialRetries, 100*time.Millisecond, time.Second)
	if err := retrier.Run(func() error {
		if ctx.Err() != nil {
			return nil
		}
		raw, err = dialer.DialContext(ctx, "tcp", address)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", address, err)
	}
	if raw == nil {
		return nil, ctx.Err()
	}

	if tcpConn, ok := raw.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	if c.conn, err = transport.Wrap(raw, wrapper); err != nil {
		_ = raw.Close()
		return nil, err
	}

	if c.meter != nil {
		if err := c.registerMetrics(); err != nil {
			_ = c.conn.Close()
			return nil, err
		}
	}

	c.reaper = ticker.New(reapInterval)
	c.reaper.Start()
	c.eg = new(errgroup.Group)
	c.eg.Go(c.readLoop)
	c.eg.Go(c.reapLoop)

	c.logger.Debugf("connected to %s", address)
	return c, nil
}

// Send writes msg as a request and returns its RequestID. The reply is
// collected with Await. A message type that is not registered fails before
// anything is written.
func (c *Client) Send(ctx context.Context, msg any) (int32, error) {
	if c.closed.Load() {
		return 0, gerrors.ErrClientClosed
	}

	id := c.nextRequestID()
	blob, err := c.codec.Encode(id, msg)
	if err != nil {
		return 0, err
	}

	call := &pendingCall{
		id:       id,
		future:   future.New[any](),
		deadline: time.Now().Add(c.timeout),
		awaiting: atomic.NewBool(false),
	}
	c.pending.Set(id, call)

	if err := c.write(ctx, framer.Encode(blob)); err != nil {
		c.pending.Delete(id)
		return 0, err
	}
	return id, nil
}

// Await waits for the reply to id. It returns ErrRequestTimeout when the
// timeout elapses first and ErrEmptyResponse when the server answered with
// message.Error. A non-positive timeout uses the client default. The
// pending entry is gone once Await returns.
func (c *Client) Await(ctx context.Context, id int32, timeout time.Duration) (any, error) {
	call, ok := c.pending.Get(id)
	if !ok {
		if c.closed.Load() {
			return nil, gerrors.ErrClientClosed
		}
		return nil, fmt.Errorf("%w: request=(%d) is not pending", gerrors.ErrRequestTimeout, id)
	}
	call.awaiting.Store(true)
	defer c.pending.Delete(id)

	if timeout <= 0 {
		timeout = c.timeout
	}

	result := call.future.Await(ctx, timeout, gerrors.ErrRequestTimeout)
	if err := result.Failure(); errors.Is(err, gerrors.ErrRequestTimeout) {
		result = c.expire(call, err)
	}
	if err := result.Failure(); err != nil {
		return nil, err
	}

	if reply, ok := result.Success().(*message.Error); ok {
		if reply.Reason != "" {
			return nil, fmt.Errorf("%w: %s", gerrors.ErrEmptyResponse, reply.Reason)
		}
		return nil, gerrors.ErrEmptyResponse
	}
	return result.Success(), nil
}

// Request sends msg and waits for its reply.
func (c *Client) Request(ctx context.Context, msg any, timeout time.Duration) (any, error) {
	id, err := c.Send(ctx, msg)
	if err != nil {
		return nil, err
	}
	return c.Await(ctx, id, timeout)
}

// Notify sends msg as a push. The server sends no reply.
func (c *Client) Notify(ctx context.Context, msg any) error {
	if c.closed.Load() {
		return gerrors.ErrClientClosed
	}
	blob, err := c.codec.Encode(0, msg)
	if err != nil {
		return err
	}
	return c.write(ctx, framer.Encode(blob))
}

// Pending returns the number of requests without an outcome yet.
func (c *Client) Pending() int {
	return c.pending.Len()
}

// Close disconnects and fails every pending request with ErrClientClosed.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.failAll(gerrors.ErrClientClosed)
		err = c.conn.Close()
		close(c.stopCh)
		c.reaper.Stop()
		_ = c.eg.Wait()
		if c.registration != nil {
			err = errors.Join(err, c.registration.Unregister())
		}
		c.logger.Debugf("disconnected from %s", c.address)
	})
	return err
}

func (c *Client) nextRequestID() int32 {
	for {
		id := c.nextID.Inc()
		if id <= 0 {
			c.nextID.CompareAndSwap(id, 0)
			continue
		}
		if _, taken := c.pending.Get(id); !taken {
			return id
		}
	}
}

func (c *Client) write(ctx context.Context, frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	_ = c.conn.SetWriteDeadline(deadline)
	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrSessionClosed, err)
	}
	return nil
}

func (c *Client) readLoop() error {
	reader := bufio.NewReaderSize(c.conn, readBufferSize)
	for {
		payload, err := framer.ReadFrame(reader, c.maxFrameSize)
		if err != nil {
			if !c.closed.Load() && !errors.Is(err, io.EOF) {
				c.logger.Warnf("connection to %s lost: %v", c.address, err)
			}
			c.closed.Store(true)
			c.failAll(gerrors.ErrSessionClosed)
			return nil
		}

		call, err := c.codec.Decode(payload)
		if err != nil {
			if call != nil {
				c.logger.Warnf("dropping %s: %v", call, err)
			} else {
				c.logger.Warnf("dropping undecodable frame: %v", err)
			}
			continue
		}

		if call.IsPush() {
			if c.pushHandler != nil {
				c.pushHandler(call.Payload)
			}
			continue
		}

		pending, ok := c.pending.Get(call.RequestID)
		if !ok || !pending.future.Complete(call.Payload) {
			c.logger.Debugf("dropping late reply %s", call)
		}
	}
}

// reapLoop drops requests nobody awaits once their deadline has passed.
func (c *Client) reapLoop() error {
	for {
		select {
		case <-c.stopCh:
			return nil
		case now := <-c.reaper.Ticks:
			for _, call := range c.pending.Values() {
				if call.awaiting.Load() || now.Before(call.deadline) {
					continue
				}
				if _, ok := c.pending.Take(call.id); ok && call.future.Fail(gerrors.ErrRequestTimeout) {
					c.recordTimeout()
				}
			}
		}
	}
}

func (c *Client) failAll(err error) {
	for _, call := range c.pending.Reset() {
		call.future.Fail(err)
	}
}

func (c *Client) registerMetrics() error {
	metrics, err := metric.NewClientMetric(c.meter)
	if err != nil {
		return err
	}
	registration, err := c.meter.RegisterCallback(func(_ context.Context, observer otelmetric.Observer) error {
		observer.ObserveInt64(metrics.Pending(), int64(c.pending.Len()))
		return nil
	}, metrics.Pending())
	if err != nil {
		return err
	}
	c.metrics = metrics
	c.registration = registration
	return nil
}

// expire fails call with err. When a reply resolved the future first, the
// reply wins and is returned instead.
func (c *Client) expire(call *pendingCall, err error) future.Result[any] {
	if call.future.Fail(err) {
		c.recordTimeout()
	}
	return call.future.Await(context.Background(), 0, err)
}

func (c *Client) recordTimeout() {
	if c.metrics != nil {
		c.metrics.Timeouts().Add(context.Background(), 1)
	}
}
