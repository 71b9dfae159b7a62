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

// SystemMetric groups the instruments of the actor system.
//
// Instruments:
//   - actorsystem.actors.count        (Int64ObservableGauge)
//   - actorsystem.requests.dispatched (Int64Counter)
//   - actorsystem.requests.dropped    (Int64Counter)
//   - actorsystem.requests.failed     (Int64Counter)
type SystemMetric struct {
	actorsCount metric.Int64ObservableGauge
	dispatched  metric.Int64Counter
	dropped     metric.Int64Counter
	failed      metric.Int64Counter
}

// NewSystemMetric creates the actor system instruments. It returns an error
// if any instrument cannot be created.
func NewSystemMetric(meter metric.Meter) (*SystemMetric, error) {
	var instruments SystemMetric
	var err error

	if instruments.actorsCount, err = meter.Int64ObservableGauge(
		"actorsystem.actors.count",
		metric.WithDescription("Number of live actors"),
	); err != nil {
		return nil, err
	}

	if instruments.dispatched, err = meter.Int64Counter(
		"actorsystem.requests.dispatched",
		metric.WithDescription("Number of inbound calls handed to a handler"),
	); err != nil {
		return nil, err
	}

	if instruments.dropped, err = meter.Int64Counter(
		"actorsystem.requests.dropped",
		metric.WithDescription("Number of inbound calls without a handler"),
	); err != nil {
		return nil, err
	}

	if instruments.failed, err = meter.Int64Counter(
		"actorsystem.requests.failed",
		metric.WithDescription("Number of handler invocations that failed or panicked"),
	); err != nil {
		return nil, err
	}

	return &instruments, nil
}

// ActorsCount returns the gauge observed with the number of live actors.
func (x *SystemMetric) ActorsCount() metric.Int64ObservableGauge {
	return x.actorsCount
}

// Dispatched returns the dispatched calls counter.
func (x *SystemMetric) Dispatched() metric.Int64Counter {
	return x.dispatched
}

// Dropped returns the dropped calls counter.
func (x *SystemMetric) Dropped() metric.Int64Counter {
	return x.dropped
}

// Failed returns the failed handler counter.
func (x *SystemMetric) Failed() metric.Int64Counter {
	return x.failed
}
