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
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/tochemey/goactor/codec"
	gerrors "github.com/tochemey/goactor/errors"
)

var envelopeEncOpts = cbor.EncOptions{
	Sort:        cbor.SortCoreDeterministic,
	IndefLength: cbor.IndefLengthForbidden,
}

var envelopeDecOpts = cbor.DecOptions{
	MaxNestedLevels: 4,
	IndefLength:     cbor.IndefLengthForbidden,
}

// Codec encodes RemoteCall envelopes and resolves their payloads through a
// Registry. The envelope itself is always CBOR; the payload uses the
// configured codec.Serializer.
type Codec struct {
	registry   *Registry
	serializer codec.Serializer
	encMode    cbor.EncMode
	decMode    cbor.DecMode
}

// NewCodec creates a Codec. A nil serializer selects codec.NewCBOR.
func NewCodec(registry *Registry, serializer codec.Serializer) *Codec {
	if serializer == nil {
		serializer = codec.NewCBOR()
	}
	encMode, _ := envelopeEncOpts.EncMode()
	decMode, _ := envelopeDecOpts.DecMode()
	return &Codec{
		registry:   registry,
		serializer: serializer,
		encMode:    encMode,
		decMode:    decMode,
	}
}

// Registry returns the registry used to resolve message types.
func (c *Codec) Registry() *Registry {
	return c.registry
}

// Encode serializes msg under requestID. An unregistered message type is
// reported before any serialization work happens.
func (c *Codec) Encode(requestID int32, msg any) ([]byte, error) {
	msgID, ok := c.registry.ResolveID(msg)
	if !ok {
		return nil, fmt.Errorf("%w: type=(%T)", gerrors.ErrUnregisteredMessage, msg)
	}

	payload, err := c.serializer.Serialize(msg)
	if err != nil {
		return nil, err
	}

	blob, err := c.encMode.Marshal(&RemoteCall{
		MsgID:        msgID,
		RequestID:    requestID,
		PayloadBytes: payload,
	})
	if err != nil {
		return nil, errors.Join(codec.ErrSerializeFailed, err)
	}
	return blob, nil
}

// Decode parses an envelope blob and decodes its payload into a fresh
// instance of the registered type. When MsgID is unknown the envelope is
// returned along with ErrUnknownMessageID so callers can log its ids.
func (c *Codec) Decode(blob []byte) (*RemoteCall, error) {
	call := new(RemoteCall)
	if err := c.decMode.Unmarshal(blob, call); err != nil {
		return nil, errors.Join(codec.ErrDeserializeFailed, err)
	}

	payload, ok := c.registry.New(call.MsgID)
	if !ok {
		return call, fmt.Errorf("%w: id=(%d)", gerrors.ErrUnknownMessageID, call.MsgID)
	}

	if err := c.serializer.Deserialize(call.PayloadBytes, payload); err != nil {
		return call, err
	}
	call.Payload = payload
	return call, nil
}
