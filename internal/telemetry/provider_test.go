package telemetry

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/tomz197/hyperspace/internal/game"
)

func sumOf(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not collected", name)
	return 0
}

func TestProviderCollectsSessionMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	p, err := newProvider("hyperspace-test", reader)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(ctx) })

	rec, err := NewRecorder(p.Meter())
	require.NoError(t, err)

	s := NewSession(ctx, "id", "bob", rec, nil, nil)
	s.ObserveFrame(ctx, &game.Frame{Tick: 1, Delta: 16 * time.Millisecond, Damage: make([]game.Damage, 1), Phase: game.PhasePlaying})
	s.ObserveFrame(ctx, &game.Frame{Tick: 2, Delta: 16 * time.Millisecond, Damage: make([]game.Damage, 2), Destroyed: 1, Phase: game.PhasePlaying})

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	assert.Equal(t, int64(2), sumOf(t, rm, "hyperspace.ticks"))
	assert.Equal(t, int64(3), sumOf(t, rm, "hyperspace.ship.hits"))
	assert.Equal(t, int64(1), sumOf(t, rm, "hyperspace.asteroids.destroyed"))
	assert.Equal(t, int64(1), sumOf(t, rm, "hyperspace.sessions.active"))

	s.End(ctx)
	rm = metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(ctx, &rm))
	assert.Equal(t, int64(0), sumOf(t, rm, "hyperspace.sessions.active"))
}

func TestNewProviderExportsOnShutdown(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	p, err := NewProvider(MetricsConfig{Enabled: true, ServiceName: "hyperspace-test", Writer: &buf})
	require.NoError(t, err)
	assert.True(t, p.Enabled())

	rec, err := NewRecorder(p.Meter())
	require.NoError(t, err)
	rec.Hits(ctx, 2)

	require.NoError(t, p.Shutdown(ctx))
	assert.Contains(t, buf.String(), "hyperspace.ship.hits")
}

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(MetricsConfig{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Meter())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProviderRequiresWriter(t *testing.T) {
	_, err := NewProvider(MetricsConfig{Enabled: true})
	assert.Error(t, err)
}
