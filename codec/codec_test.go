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

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type greeting struct {
	Txt   string `cbor:"1,keyasint"`
	Count int32  `cbor:"2,keyasint,omitempty"`
}

func TestCBOR(t *testing.T) {
	serializer := NewCBOR()

	t.Run("With happy path", func(t *testing.T) {
		data, err := serializer.Serialize(&greeting{Txt: "hello", Count: 2})
		require.NoError(t, err)

		actual := new(greeting)
		require.NoError(t, serializer.Deserialize(data, actual))
		assert.Equal(t, &greeting{Txt: "hello", Count: 2}, actual)
	})
	t.Run("With deterministic output", func(t *testing.T) {
		first, err := serializer.Serialize(map[string]int{"b": 2, "a": 1, "c": 3})
		require.NoError(t, err)
		second, err := serializer.Serialize(map[string]int{"c": 3, "a": 1, "b": 2})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
	t.Run("With nil message", func(t *testing.T) {
		var msg *greeting
		_, err := serializer.Serialize(msg)
		assert.ErrorIs(t, err, ErrNilMessage)
	})
	t.Run("With non pointer target", func(t *testing.T) {
		err := serializer.Deserialize([]byte{0xa0}, greeting{})
		assert.ErrorIs(t, err, ErrUnsupportedMessage)
	})
	t.Run("With garbage input", func(t *testing.T) {
		err := serializer.Deserialize([]byte{0xff, 0x00, 0x13}, new(greeting))
		assert.ErrorIs(t, err, ErrDeserializeFailed)
	})
}

func TestProto(t *testing.T) {
	serializer := NewProto()

	t.Run("With happy path", func(t *testing.T) {
		data, err := serializer.Serialize(wrapperspb.String("hello"))
		require.NoError(t, err)

		actual := new(wrapperspb.StringValue)
		require.NoError(t, serializer.Deserialize(data, actual))
		assert.Equal(t, "hello", actual.GetValue())
	})
	t.Run("With non proto message", func(t *testing.T) {
		_, err := serializer.Serialize(&greeting{Txt: "hello"})
		assert.ErrorIs(t, err, ErrUnsupportedMessage)

		err = serializer.Deserialize(nil, new(greeting))
		assert.ErrorIs(t, err, ErrUnsupportedMessage)
	})
	t.Run("With nil message", func(t *testing.T) {
		var msg *wrapperspb.StringValue
		_, err := serializer.Serialize(msg)
		assert.ErrorIs(t, err, ErrNilMessage)
	})
	t.Run("With garbage input", func(t *testing.T) {
		err := serializer.Deserialize([]byte{0xff, 0xff, 0xff}, new(wrapperspb.StringValue))
		assert.ErrorIs(t, err, ErrDeserializeFailed)
	})
}

func TestChain(t *testing.T) {
	serializer := NewChain(NewProto(), NewCBOR())

	t.Run("With proto message", func(t *testing.T) {
		data, err := serializer.Serialize(wrapperspb.Int32(7))
		require.NoError(t, err)
		actual := new(wrapperspb.Int32Value)
		require.NoError(t, serializer.Deserialize(data, actual))
		assert.EqualValues(t, 7, actual.GetValue())
	})
	t.Run("With plain struct", func(t *testing.T) {
		data, err := serializer.Serialize(&greeting{Txt: "hi"})
		require.NoError(t, err)
		actual := new(greeting)
		require.NoError(t, serializer.Deserialize(data, actual))
		assert.Equal(t, "hi", actual.Txt)
	})
	t.Run("With nothing accepting", func(t *testing.T) {
		_, err := NewChain(NewProto()).Serialize(&greeting{})
		assert.ErrorIs(t, err, ErrUnsupportedMessage)
	})
}
