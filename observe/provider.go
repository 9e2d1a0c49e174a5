// SPDX-License-Identifier: EPL-2.0

package observe

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Provider is an in-process meter provider whose readings are pulled on
// demand, used by short-lived commands that have no scrape endpoint.
type Provider struct {
	mp     *sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
}

// InitProvider creates a Provider and installs it as the global meter
// provider.
func InitProvider() *Provider {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)

	return &Provider{mp: mp, reader: reader}
}

func (p *Provider) MeterProvider() *sdkmetric.MeterProvider { return p.mp }

// LogSummary collects the current readings and logs one line per data
// point at info level.
func (p *Provider) LogSummary(ctx context.Context, logger *slog.Logger) error {
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("collect metrics: %w", err)
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					logger.Info("metric", "name", m.Name, "value", dp.Value, "attrs", dp.Attributes.Encoded(attribute.DefaultEncoder()))
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					logger.Info("metric", "name", m.Name, "count", dp.Count, "sum", dp.Sum, "attrs", dp.Attributes.Encoded(attribute.DefaultEncoder()))
				}
			}
		}
	}

	return nil
}

func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown meter provider: %w", err)
	}

	return nil
}
