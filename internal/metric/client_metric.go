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

import "go.opentelemetry.io/otel/metric"

// ClientMetric groups the instruments of a client connection.
//
// Instruments:
//   - client.requests.pending  (Int64ObservableGauge)
//   - client.requests.timeouts (Int64Counter)
type ClientMetric struct {
	pending  metric.Int64ObservableGauge
	timeouts metric.Int64Counter
}

// NewClientMetric creates the client instruments.
func NewClientMetric(meter metric.Meter) (*ClientMetric, error) {
	var instruments ClientMetric
	var err error

	if instruments.pending, err = meter.Int64ObservableGauge(
		"client.requests.pending",
		metric.WithDescription("Number of requests waiting for a reply"),
	); err != nil {
		return nil, err
	}

	if instruments.timeouts, err = meter.Int64Counter(
		"client.requests.timeouts",
		metric.WithDescription("Number of requests that timed out"),
	); err != nil {
		return nil, err
	}
	return &instruments, nil
}

// Pending returns the pending requests gauge.
func (x *ClientMetric) Pending() metric.Int64ObservableGauge {
	return x.pending
}

// Timeouts returns the timeouts counter.
func (x *ClientMetric) Timeouts() metric.Int64Counter {
	return x.timeouts
}
