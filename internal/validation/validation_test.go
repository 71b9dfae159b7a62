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

package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	t.Run("With no violations", func(t *testing.T) {
		err := New().
			AddAssertion(true, "never").
			AddValidator(NewTCPAddressValidator("127.0.0.1:9999")).
			AddValidator(NewDurationValidator("tick", 10*time.Millisecond, 10*time.Millisecond)).
			Validate()
		require.NoError(t, err)
	})
	t.Run("With all errors", func(t *testing.T) {
		err := New(AllErrors()).
			AddAssertion(false, "first").
			AddAssertion(false, "second").
			Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "first")
		assert.Contains(t, err.Error(), "second")
	})
	t.Run("With fail fast", func(t *testing.T) {
		err := New(FailFast()).
			AddAssertion(false, "first").
			AddAssertion(false, "second").
			Validate()
		require.EqualError(t, err, "first")
	})
}

func TestTCPAddressValidator(t *testing.T) {
	testCases := []struct {
		name    string
		address string
		valid   bool
	}{
		{name: "valid", address: "0.0.0.0:9999", valid: true},
		{name: "missing port", address: "127.0.0.1", valid: false},
		{name: "missing host", address: ":9999", valid: false},
		{name: "port out of range", address: "127.0.0.1:70000", valid: false},
		{name: "non numeric port", address: "127.0.0.1:abc", valid: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewTCPAddressValidator(tc.address).Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}

func TestDurationValidator(t *testing.T) {
	require.Error(t, NewDurationValidator("tick", time.Millisecond, 10*time.Millisecond).Validate())
	require.NoError(t, NewDurationValidator("tick", time.Second, 10*time.Millisecond).Validate())
}
