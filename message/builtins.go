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

// Reserved ids of the messages every peer understands.
const (
	ErrorID        int32 = 1
	VoidID         int32 = 2
	TestRequestID  int32 = 10001
	TestResponseID int32 = 10002
)

// Error is the distinguished reply sent when a handler produced no result.
// Callers treat it as a failed request, not as a transport failure.
type Error struct {
	Reason string `cbor:"1,keyasint,omitempty"`
}

// Void acknowledges a request that has nothing to return.
type Void struct{}

// TestRequest is a probe request used by the sample binaries and tests.
type TestRequest struct {
	Txt string `cbor:"1,keyasint"`
}

// TestResponse answers a TestRequest.
type TestResponse struct {
	Txt string `cbor:"1,keyasint"`
}

// RegisterBuiltins adds the reserved messages to registry.
func RegisterBuiltins(registry *Registry) error {
	for id, prototype := range map[int32]any{
		ErrorID:        new(Error),
		VoidID:         new(Void),
		TestRequestID:  new(TestRequest),
		TestResponseID: new(TestResponse),
	} {
		if err := registry.Register(id, prototype); err != nil {
			return err
		}
	}
	return nil
}
