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

package message

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/goactor/errors"
)

type ping struct {
	Seq int64 `cbor:"1,keyasint"`
}

type pong struct {
	Seq int64 `cbor:"1,keyasint"`
}

func TestRegistry(t *testing.T) {
	t.Run("With happy path", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, RegisterBuiltins(registry))
		assert.Equal(t, 4, registry.Len())

		id, ok := registry.ResolveID(new(TestRequest))
		require.True(t, ok)
		assert.Equal(t, TestRequestID, id)

		id, ok = registry.ResolveID(TestResponse{})
		require.True(t, ok)
		assert.Equal(t, TestResponseID, id)

		typ, ok := registry.ResolveType(TestRequestID)
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf(TestRequest{}), typ)

		instance, ok := registry.New(ErrorID)
		require.True(t, ok)
		assert.IsType(t, new(Error), instance)
	})
	t.Run("With every registered type resolving back to itself", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, RegisterBuiltins(registry))
		for _, entry := range registry.Entries() {
			id, ok := registry.ResolveID(reflect.New(entry.Type).Interface())
			require.True(t, ok)
			typ, ok := registry.ResolveType(id)
			require.True(t, ok)
			assert.Equal(t, entry.Type, typ)
		}
	})
	t.Run("With duplicate id", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.Register(1, new(ping)))
		err := registry.Register(1, new(pong))
		require.ErrorIs(t, err, gerrors.ErrDuplicateMessageID)

		_, ok := registry.ResolveID(new(pong))
		assert.False(t, ok)
	})
	t.Run("With duplicate type", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.Register(1, new(ping)))
		require.ErrorIs(t, registry.Register(2, ping{}), gerrors.ErrDuplicateMessageType)
	})
	t.Run("With nil prototype", func(t *testing.T) {
		registry := NewRegistry()
		require.ErrorIs(t, registry.Register(1, nil), gerrors.ErrInvalidMessage)
		assert.Panics(t, func() { registry.MustRegister(1, nil) })
	})
	t.Run("With unknown lookups", func(t *testing.T) {
		registry := NewRegistry()
		_, ok := registry.ResolveID(new(ping))
		assert.False(t, ok)
		_, ok = registry.ResolveID(nil)
		assert.False(t, ok)
		_, ok = registry.ResolveType(42)
		assert.False(t, ok)
		_, ok = registry.New(42)
		assert.False(t, ok)
	})
}

func TestRegistryReload(t *testing.T) {
	t.Run("With invalid table keeping the current one", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.Register(1, new(ping)))
		before := registry.Fingerprint()

		err := registry.Reload([]Entry{
			{ID: 5, Type: reflect.TypeOf(ping{})},
			{ID: 5, Type: reflect.TypeOf(pong{})},
		})
		require.ErrorIs(t, err, gerrors.ErrDuplicateMessageID)

		err = registry.Reload([]Entry{
			{ID: 5, Type: reflect.TypeOf(ping{})},
			{ID: 6, Type: reflect.TypeOf(ping{})},
		})
		require.ErrorIs(t, err, gerrors.ErrDuplicateMessageType)

		err = registry.Reload([]Entry{{ID: 5}})
		require.ErrorIs(t, err, gerrors.ErrInvalidMessage)

		assert.Equal(t, before, registry.Fingerprint())
		id, ok := registry.ResolveID(new(ping))
		require.True(t, ok)
		assert.EqualValues(t, 1, id)
	})
	t.Run("With readers never observing a partial table", func(t *testing.T) {
		first := mustEntries(t, map[int32]any{1: new(ping), 2: new(pong)})
		second := mustEntries(t, map[int32]any{3: new(ping), 4: new(pong)})

		registry := NewRegistry()
		require.NoError(t, registry.Reload(first))

		var wg sync.WaitGroup
		stop := make(chan struct{})
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					select {
					case <-stop:
						return
					default:
					}
					pingID, ok1 := registry.ResolveID(new(ping))
					pongID, ok2 := registry.ResolveID(new(pong))
					if !ok1 || !ok2 {
						continue
					}
					// both ids come from the same generation unless a swap
					// happened between the two lookups
					assert.Contains(t, []int32{1, 3}, pingID)
					assert.Contains(t, []int32{2, 4}, pongID)
				}
			}()
		}

		for i := range 200 {
			if i%2 == 0 {
				require.NoError(t, registry.Reload(second))
			} else {
				require.NoError(t, registry.Reload(first))
			}
			assert.Equal(t, 2, registry.Len())
		}
		close(stop)
		wg.Wait()
	})
}

func TestRegistryFingerprint(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	require.NoError(t, RegisterBuiltins(a))
	require.NoError(t, RegisterBuiltins(b))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	require.NoError(t, b.Register(99, new(ping)))
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, "message.ping", TypeName(reflect.TypeOf(new(ping))))
}

func mustEntries(t *testing.T, prototypes map[int32]any) []Entry {
	t.Helper()
	entries := make([]Entry, 0, len(prototypes))
	for id, prototype := range prototypes {
		entry, err := NewEntry(id, prototype)
		require.NoError(t, err)
		entries = append(entries, entry)
	}
	return entries
}
