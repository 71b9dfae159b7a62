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
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travisjeffery/go-dynaport"
	"go.uber.org/goleak"

	"github.com/tochemey/goactor/actor"
	"github.com/tochemey/goactor/config"
	gerrors "github.com/tochemey/goactor/errors"
	"github.com/tochemey/goactor/internal/framer"
	"github.com/tochemey/goactor/internal/lib"
	"github.com/tochemey/goactor/log"
	"github.com/tochemey/goactor/message"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type unknown struct {
	Value int `cbor:"1,keyasint"`
}

const unknownID int32 = 999

func newRegistry(t *testing.T) *message.Registry {
	t.Helper()
	registry := message.NewRegistry()
	require.NoError(t, message.RegisterBuiltins(registry))
	return registry
}

func testHandlers() *actor.Handlers {
	handlers := actor.NewHandlers()
	handlers.Register(message.TestRequestID, actor.Typed(func(_ context.Context, _ *actor.Actor, req *message.TestRequest) (any, error) {
		return &message.TestResponse{Txt: "response:" + req.Txt}, nil
	}))
	return handlers
}

func startServer(t *testing.T, opts ...config.Option) *Server {
	t.Helper()
	ports := dynaport.Get(1)
	cfg := config.New(append([]config.Option{
		config.WithAddress(fmt.Sprintf("127.0.0.1:%d", ports[0])),
		config.WithSessionCheckInterval(10 * time.Millisecond),
		config.WithShutdownTimeout(time.Second),
	}, opts...)...)

	srv, err := New(cfg, newRegistry(t), testHandlers(), WithLogger(log.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(func() { require.NoError(t, srv.Stop(context.Background())) })
	return srv
}

// peer speaks the wire protocol over a plain connection.
type peer struct {
	conn   net.Conn
	reader *bufio.Reader
	codec  *message.Codec
}

func dial(t *testing.T, srv *Server) *peer {
	t.Helper()
	conn, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	registry := newRegistry(t)
	require.NoError(t, registry.Register(unknownID, new(unknown)))
	return &peer{conn: conn, reader: bufio.NewReader(conn), codec: message.NewCodec(registry, nil)}
}

func (p *peer) frame(t *testing.T, requestID int32, msg any) []byte {
	t.Helper()
	blob, err := p.codec.Encode(requestID, msg)
	require.NoError(t, err)
	return framer.Encode(blob)
}

func (p *peer) read(t *testing.T) *message.RemoteCall {
	t.Helper()
	require.NoError(t, p.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	payload, err := framer.ReadFrame(p.reader, 0)
	require.NoError(t, err)
	call, err := p.codec.Decode(payload)
	require.NoError(t, err)
	return call
}

func TestServer(t *testing.T) {
	t.Run("With request and response", func(t *testing.T) {
		srv := startServer(t)
		p := dial(t, srv)

		_, err := p.conn.Write(p.frame(t, 1, &message.TestRequest{Txt: "hello"}))
		require.NoError(t, err)

		reply := p.read(t)
		assert.EqualValues(t, 1, reply.RequestID)
		assert.Equal(t, message.TestResponseID, reply.MsgID)
		assert.Equal(t, "response:hello", reply.Payload.(*message.TestResponse).Txt)
		assert.Equal(t, 1, srv.System().Len())
	})
	t.Run("With concatenated frames in one write", func(t *testing.T) {
		srv := startServer(t)
		p := dial(t, srv)

		batch := append(p.frame(t, 1, &message.TestRequest{Txt: "a"}), p.frame(t, 2, &message.TestRequest{Txt: "b"})...)
		_, err := p.conn.Write(batch)
		require.NoError(t, err)

		first := p.read(t)
		second := p.read(t)
		assert.EqualValues(t, 1, first.RequestID)
		assert.Equal(t, "response:a", first.Payload.(*message.TestResponse).Txt)
		assert.EqualValues(t, 2, second.RequestID)
		assert.Equal(t, "response:b", second.Payload.(*message.TestResponse).Txt)
	})
	t.Run("With frame split across writes", func(t *testing.T) {
		srv := startServer(t)
		p := dial(t, srv)

		frame := p.frame(t, 5, &message.TestRequest{Txt: "split"})
		for _, chunk := range [][]byte{frame[:2], frame[2:7], frame[7:]} {
			_, err := p.conn.Write(chunk)
			require.NoError(t, err)
			lib.Pause(5 * time.Millisecond)
		}
		assert.EqualValues(t, 5, p.read(t).RequestID)
	})
	t.Run("With a frame tail carried into the next read", func(t *testing.T) {
		srv := startServer(t)
		p := dial(t, srv)

		first := p.frame(t, 6, &message.TestRequest{Txt: "head"})
		second := p.frame(t, 7, &message.TestRequest{Txt: "tail"})
		cut := len(first) + 3
		stream := append(first, second...)

		_, err := p.conn.Write(stream[:cut])
		require.NoError(t, err)
		assert.EqualValues(t, 6, p.read(t).RequestID)

		_, err = p.conn.Write(stream[cut:])
		require.NoError(t, err)
		reply := p.read(t)
		assert.EqualValues(t, 7, reply.RequestID)
		assert.Equal(t, "response:tail", reply.Payload.(*message.TestResponse).Txt)
	})
	t.Run("With unknown message id dropped", func(t *testing.T) {
		srv := startServer(t)
		p := dial(t, srv)

		_, err := p.conn.Write(p.frame(t, 1, &unknown{Value: 1}))
		require.NoError(t, err)
		_, err = p.conn.Write(p.frame(t, 2, &message.TestRequest{Txt: "still open"}))
		require.NoError(t, err)

		reply := p.read(t)
		assert.EqualValues(t, 2, reply.RequestID)
	})
	t.Run("With framing error closing the connection", func(t *testing.T) {
		srv := startServer(t)
		p := dial(t, srv)

		var header [framer.HeaderSize]byte
		binary.LittleEndian.PutUint32(header[:], 2)
		_, err := p.conn.Write(header[:])
		require.NoError(t, err)

		require.NoError(t, p.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, err = p.reader.ReadByte()
		require.ErrorIs(t, err, io.EOF)
		assert.Eventually(t, func() bool { return srv.Sessions() == 0 }, time.Second, 10*time.Millisecond)
	})
	t.Run("With kick removing the actor", func(t *testing.T) {
		srv := startServer(t)
		p := dial(t, srv)
		_, err := p.conn.Write(p.frame(t, 1, &message.TestRequest{Txt: "hello"}))
		require.NoError(t, err)
		p.read(t)

		online := srv.OnlineSessions()
		require.Len(t, online, 1)
		require.NoError(t, srv.Kick(online[0]))

		assert.Eventually(t, func() bool { return srv.System().Len() == 0 }, time.Second, 10*time.Millisecond)
		assert.Eventually(t, func() bool { return srv.Sessions() == 0 }, time.Second, 10*time.Millisecond)
		require.ErrorIs(t, srv.Kick(online[0]), gerrors.ErrSessionClosed)
	})
	t.Run("With zstd compression", func(t *testing.T) {
		srv := startServer(t, config.WithCompression("zstd"))
		assert.NotEmpty(t, srv.Addr())
		assert.NotNil(t, srv.Codec())
	})
	t.Run("With lifecycle", func(t *testing.T) {
		ports := dynaport.Get(1)
		cfg := config.New(config.WithAddress(fmt.Sprintf("127.0.0.1:%d", ports[0])))
		srv, err := New(cfg, newRegistry(t), testHandlers(), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		ctx := context.Background()
		require.NoError(t, srv.Stop(ctx))
		require.NoError(t, srv.Start(ctx))
		require.NoError(t, srv.Start(ctx))
		require.NoError(t, srv.Stop(ctx))
		require.NoError(t, srv.Stop(ctx))
		require.ErrorIs(t, srv.Start(ctx), gerrors.ErrServerClosed)
	})
	t.Run("With invalid config", func(t *testing.T) {
		_, err := New(config.New(config.WithCompression("lz4")), newRegistry(t), testHandlers())
		require.Error(t, err)
	})
}
