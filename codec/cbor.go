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
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	cborEncOpts = cbor.EncOptions{
		Sort:        cbor.SortCoreDeterministic,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeUnixDynamic,
	}
	cborDecOpts = cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8DecodeInvalid,
	}
)

// CBOR is the default Serializer. It is stateless and can be shared.
type CBOR struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

var _ Serializer = (*CBOR)(nil)

// NewCBOR returns a ready-to-use CBOR serializer.
func NewCBOR() *CBOR {
	encMode, _ := cborEncOpts.EncMode()
	decMode, _ := cborDecOpts.DecMode()
	return &CBOR{encMode: encMode, decMode: decMode}
}

// Serialize implements Serializer.
func (s *CBOR) Serialize(message any) ([]byte, error) {
	if isNil(message) {
		return nil, ErrNilMessage
	}
	data, err := s.encMode.Marshal(message)
	if err != nil {
		return nil, errors.Join(ErrSerializeFailed, err)
	}
	return data, nil
}

// Deserialize implements Serializer.
func (s *CBOR) Deserialize(data []byte, target any) error {
	if isNil(target) || reflect.TypeOf(target).Kind() != reflect.Pointer {
		return ErrUnsupportedMessage
	}
	if err := s.decMode.Unmarshal(data, target); err != nil {
		return errors.Join(ErrDeserializeFailed, err)
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
