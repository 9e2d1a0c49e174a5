// SPDX-License-Identifier: EPL-2.0

// Package observe holds the OpenTelemetry instruments recorded while
// acquiring waveform data.
//
// Tests should build a Metrics with NewMetrics and their own
// metric.MeterProvider; DefaultMetrics uses the global provider.
package observe

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ik5/audwave"

// Metrics holds every instrument. All fields are safe for concurrent use.
type Metrics struct {
	// Acquisitions counts finished calls. Attributes: strategy, outcome.
	Acquisitions metric.Int64Counter

	// InFlight tracks calls that have started but not yet completed.
	InFlight metric.Int64UpDownCounter

	// FetchDuration tracks transport round trips. Attributes: format, status.
	FetchDuration metric.Float64Histogram

	// FetchBytes counts response body bytes. Attribute: format.
	FetchBytes metric.Int64Counter
}

var fetchBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Acquisitions, err = m.Int64Counter("audwave.acquisitions",
		metric.WithDescription("Finished waveform acquisitions by strategy and outcome."),
	); err != nil {
		return nil, err
	}
	if met.InFlight, err = m.Int64UpDownCounter("audwave.acquisitions.in_flight",
		metric.WithDescription("Acquisitions that have not completed yet."),
	); err != nil {
		return nil, err
	}
	if met.FetchDuration, err = m.Float64Histogram("audwave.fetch.duration",
		metric.WithDescription("Latency of remote fetches by format and HTTP status."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(fetchBuckets...),
	); err != nil {
		return nil, err
	}
	if met.FetchBytes, err = m.Int64Counter("audwave.fetch.bytes",
		metric.WithDescription("Response bytes received by format."),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level instance built on
// otel.GetMeterProvider.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Start marks a call as in flight.
func (m *Metrics) Start(ctx context.Context, strategy string) {
	m.InFlight.Add(ctx, 1, metric.WithAttributes(attribute.String("strategy", strategy)))
}

// RecordAcquisition closes a call started with Start.
func (m *Metrics) RecordAcquisition(ctx context.Context, strategy, outcome string) {
	m.InFlight.Add(ctx, -1, metric.WithAttributes(attribute.String("strategy", strategy)))
	m.Acquisitions.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("strategy", strategy),
			attribute.String("outcome", outcome),
		),
	)
}

// RecordFetch records one completed transport exchange. status is 0 when
// no response was received.
func (m *Metrics) RecordFetch(ctx context.Context, format string, status int, d time.Duration, n int) {
	m.FetchDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(
			attribute.String("format", format),
			attribute.String("status", strconv.Itoa(status)),
		),
	)
	if n > 0 {
		m.FetchBytes.Add(ctx, int64(n), metric.WithAttributes(attribute.String("format", format)))
	}
}
