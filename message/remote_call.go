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

import "fmt"

// RemoteCall is the unit exchanged on the wire.
//
// A RequestID of zero marks a push that expects no reply. A positive
// RequestID marks a request, or the reply to the request carrying the same
// id. Payload is filled by Codec.Decode from PayloadBytes and is never sent.
type RemoteCall struct {
	MsgID        int32  `cbor:"1,keyasint"`
	RequestID    int32  `cbor:"2,keyasint"`
	PayloadBytes []byte `cbor:"3,keyasint"`
	Payload      any    `cbor:"-"`
}

// IsPush reports whether the call expects no reply.
func (rc *RemoteCall) IsPush() bool {
	return rc.RequestID == 0
}

// IsError reports whether the call carries the distinguished error shape.
func (rc *RemoteCall) IsError() bool {
	return rc.MsgID == ErrorID
}

// String implements fmt.Stringer for logging.
func (rc *RemoteCall) String() string {
	return fmt.Sprintf("RemoteCall{MsgID: %d, RequestID: %d, Size: %d}", rc.MsgID, rc.RequestID, len(rc.PayloadBytes))
}
