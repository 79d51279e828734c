// Package telemetry exports gameplay metrics through OpenTelemetry and
// writes per-session summaries to an optional sink.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tomz197/hyperspace/internal/game"
)

const instrumentationName = "github.com/tomz197/hyperspace/internal/telemetry"

// Recorder holds the metric instruments. A nil *Recorder records nothing.
type Recorder struct {
	ticks     metric.Int64Counter
	frameTime metric.Float64Histogram
	destroyed metric.Int64Counter
	damage    metric.Int64Counter
	games     metric.Int64Counter
	sessions  metric.Int64UpDownCounter
}

// NewRecorder creates the instruments on m, or on the global meter when m
// is nil (a no-op unless a provider is installed).
func NewRecorder(m metric.Meter) (*Recorder, error) {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}
	r := &Recorder{}
	var err error

	r.ticks, err = m.Int64Counter(
		"hyperspace.ticks",
		metric.WithDescription("Simulation ticks advanced"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}

	r.frameTime, err = m.Float64Histogram(
		"hyperspace.frame.duration",
		metric.WithDescription("Real time between simulated frames"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frame duration histogram: %w", err)
	}

	r.destroyed, err = m.Int64Counter(
		"hyperspace.asteroids.destroyed",
		metric.WithDescription("Asteroids destroyed by torpedoes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating destroyed counter: %w", err)
	}

	r.damage, err = m.Int64Counter(
		"hyperspace.ship.hits",
		metric.WithDescription("Asteroid collisions with the ship"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	r.games, err = m.Int64Counter(
		"hyperspace.games.finished",
		metric.WithDescription("Games that reached a win or loss"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating games counter: %w", err)
	}

	r.sessions, err = m.Int64UpDownCounter(
		"hyperspace.sessions.active",
		metric.WithDescription("Connected player sessions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions counter: %w", err)
	}

	return r, nil
}

// Tick records one simulated frame of duration dt.
func (r *Recorder) Tick(ctx context.Context, dt time.Duration) {
	if r == nil {
		return
	}
	r.ticks.Add(ctx, 1)
	r.frameTime.Record(ctx, float64(dt)/float64(time.Millisecond))
}

// Destroyed records asteroids destroyed in one tick.
func (r *Recorder) Destroyed(ctx context.Context, main, fragments int) {
	if r == nil {
		return
	}
	if main > 0 {
		r.destroyed.Add(ctx, int64(main), metric.WithAttributes(attribute.String("kind", "main")))
	}
	if fragments > 0 {
		r.destroyed.Add(ctx, int64(fragments), metric.WithAttributes(attribute.String("kind", "fragment")))
	}
}

// Hits records ship collisions in one tick.
func (r *Recorder) Hits(ctx context.Context, n int) {
	if r == nil || n == 0 {
		return
	}
	r.damage.Add(ctx, int64(n))
}

// GameOver records a finished game.
func (r *Recorder) GameOver(ctx context.Context, outcome game.Phase) {
	if r == nil {
		return
	}
	r.games.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome.String())))
}

// SessionStarted and SessionEnded track connected sessions.
func (r *Recorder) SessionStarted(ctx context.Context) {
	if r == nil {
		return
	}
	r.sessions.Add(ctx, 1)
}

func (r *Recorder) SessionEnded(ctx context.Context) {
	if r == nil {
		return
	}
	r.sessions.Add(ctx, -1)
}
