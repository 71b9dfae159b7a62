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

import "errors"

// Chain tries each serializer in order and uses the first one that accepts
// the value. A serializer declines a value by returning ErrUnsupportedMessage.
// The choice depends only on the Go type, so encode and decode always agree.
type Chain struct {
	serializers []Serializer
}

var _ Serializer = (*Chain)(nil)

// NewChain creates a Chain over serializers.
func NewChain(serializers ...Serializer) *Chain {
	return &Chain{serializers: serializers}
}

// Serialize implements Serializer.
func (c *Chain) Serialize(message any) ([]byte, error) {
	for _, serializer := range c.serializers {
		data, err := serializer.Serialize(message)
		if errors.Is(err, ErrUnsupportedMessage) {
			continue
		}
		return data, err
	}
	return nil, ErrUnsupportedMessage
}

// Deserialize implements Serializer.
func (c *Chain) Deserialize(data []byte, target any) error {
	for _, serializer := range c.serializers {
		err := serializer.Deserialize(data, target)
		if errors.Is(err, ErrUnsupportedMessage) {
			continue
		}
		return err
	}
	return ErrUnsupportedMessage
}
