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
	"errors"

	"google.golang.org/protobuf/proto"
)

// Proto serializes protocol buffer messages. Values that do not implement
// proto.Message are rejected with ErrUnsupportedMessage.
type Proto struct {
	marshal   proto.MarshalOptions
	unmarshal proto.UnmarshalOptions
}

var _ Serializer = (*Proto)(nil)

// NewProto returns a Proto serializer with deterministic marshaling.
func NewProto() *Proto {
	return &Proto{
		marshal:   proto.MarshalOptions{Deterministic: true},
		unmarshal: proto.UnmarshalOptions{DiscardUnknown: true},
	}
}

// Serialize implements Serializer.
func (p *Proto) Serialize(message any) ([]byte, error) {
	if isNil(message) {
		return nil, ErrNilMessage
	}
	msg, ok := message.(proto.Message)
	if !ok {
		return nil, ErrUnsupportedMessage
	}
	data, err := p.marshal.Marshal(msg)
	if err != nil {
		return nil, errors.Join(ErrSerializeFailed, err)
	}
	return data, nil
}

// Deserialize implements Serializer.
func (p *Proto) Deserialize(data []byte, target any) error {
	msg, ok := target.(proto.Message)
	if !ok || isNil(target) {
		return ErrUnsupportedMessage
	}
	if err := p.unmarshal.Unmarshal(data, msg); err != nil {
		return errors.Join(ErrDeserializeFailed, err)
	}
	return nil
}
