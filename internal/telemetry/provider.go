package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const defaultExportInterval = 30 * time.Second

// MetricsConfig holds the metric export configuration.
type MetricsConfig struct {
	Enabled     bool
	ServiceName string
	Interval    time.Duration // Export period, defaults to 30s
	Writer      io.Writer     // Receives JSON snapshots (required when enabled)
}

// Provider owns the SDK meter provider. A disabled Provider hands out
// no-op meters.
type Provider struct {
	mp *sdkmetric.MeterProvider
}

// NewProvider creates a provider that periodically exports every
// instrument to cfg.Writer.
func NewProvider(cfg MetricsConfig) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}
	if cfg.Writer == nil {
		return nil, errors.New("metrics enabled but no writer configured")
	}

	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(cfg.Writer))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultExportInterval
	}
	return newProvider(cfg.ServiceName, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
}

func newProvider(serviceName string, reader sdkmetric.Reader) (*Provider, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	return &Provider{mp: mp}, nil
}

// Meter returns the meter the Recorder's instruments are created on.
func (p *Provider) Meter() metric.Meter {
	if p.mp == nil {
		return noop.NewMeterProvider().Meter(instrumentationName)
	}
	return p.mp.Meter(instrumentationName)
}

// Enabled reports whether metrics are exported.
func (p *Provider) Enabled() bool {
	return p.mp != nil
}

// Shutdown exports pending data and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.mp == nil {
		return nil
	}
	if err := p.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("metric shutdown failed: %w", err)
	}
	return nil
}
