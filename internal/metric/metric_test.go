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

package metric

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var errBoom = errors.New("boom")

type failingMeter struct {
	metric.Meter
	failKey string
}

func (m failingMeter) Int64Counter(name string, opts ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	if name == m.failKey {
		return nil, errBoom
	}
	return m.Meter.Int64Counter(name, opts...)
}

func (m failingMeter) Int64ObservableGauge(name string, opts ...metric.Int64ObservableGaugeOption) (metric.Int64ObservableGauge, error) {
	if name == m.failKey {
		return nil, errBoom
	}
	return m.Meter.Int64ObservableGauge(name, opts...)
}

func TestProvider(t *testing.T) {
	require.NotNil(t, NewProvider().Meter())
	meter := noop.NewMeterProvider().Meter("test")
	require.Equal(t, meter, NewProviderWithMeter(meter).Meter())
}

func TestSystemMetric(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	instruments, err := NewSystemMetric(meter)
	require.NoError(t, err)
	require.NotNil(t, instruments.ActorsCount())
	require.NotNil(t, instruments.Dispatched())
	require.NotNil(t, instruments.Dropped())
	require.NotNil(t, instruments.Failed())

	for _, key := range []string{
		"actorsystem.actors.count",
		"actorsystem.requests.dispatched",
		"actorsystem.requests.dropped",
		"actorsystem.requests.failed",
	} {
		t.Run(key, func(t *testing.T) {
			instruments, err := NewSystemMetric(failingMeter{Meter: meter, failKey: key})
			require.ErrorIs(t, err, errBoom)
			require.Nil(t, instruments)
		})
	}
}

func TestClientMetric(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	instruments, err := NewClientMetric(meter)
	require.NoError(t, err)
	require.NotNil(t, instruments.Pending())
	require.NotNil(t, instruments.Timeouts())

	for _, key := range []string{"client.requests.pending", "client.requests.timeouts"} {
		t.Run(key, func(t *testing.T) {
			instruments, err := NewClientMetric(failingMeter{Meter: meter, failKey: key})
			require.ErrorIs(t, err, errBoom)
			require.Nil(t, instruments)
		})
	}
}
