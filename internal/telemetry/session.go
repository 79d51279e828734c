package telemetry

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/hyperspace/internal/game"
)

// Summary describes one player session.
type Summary struct {
	Session   string
	User      string
	Started   time.Time
	Duration  time.Duration
	Games     int
	Wins      int
	Losses    int
	BestScore int
	Destroyed int // Main asteroids
	Fragments int
	Hits      int
	Ticks     uint64
}

// SummarySink stores session summaries.
type SummarySink interface {
	WriteSummary(ctx context.Context, s Summary) error
}

// Session aggregates frames of one player session into a Summary and
// forwards per-tick counts to a Recorder. Not safe for concurrent use.
type Session struct {
	rec      *Recorder
	sink     SummarySink
	log      *log.Logger
	now      func() time.Time
	summary  Summary
	lastTick uint64
	ended    bool
}

// NewSession starts tracking a session. rec and sink may be nil.
func NewSession(ctx context.Context, id, user string, rec *Recorder, sink SummarySink, logger *log.Logger) *Session {
	s := &Session{
		rec:  rec,
		sink: sink,
		log:  logger,
		now:  time.Now,
	}
	s.summary = Summary{Session: id, User: user, Started: s.now()}
	rec.SessionStarted(ctx)
	return s
}

// ObserveFrame folds one frame into the session.
func (s *Session) ObserveFrame(ctx context.Context, f *game.Frame) {
	if f.Tick != 0 && f.Tick != s.lastTick {
		s.summary.Ticks++
		s.rec.Tick(ctx, f.Delta)
	}
	s.lastTick = f.Tick

	s.summary.Destroyed += f.Destroyed
	s.summary.Fragments += f.FragmentsDestroyed
	s.summary.Hits += len(f.Damage)
	s.rec.Destroyed(ctx, f.Destroyed, f.FragmentsDestroyed)
	s.rec.Hits(ctx, len(f.Damage))

	if f.PhaseChanged && f.Phase.Terminal() {
		s.summary.Games++
		if f.Phase == game.PhaseWon {
			s.summary.Wins++
		} else {
			s.summary.Losses++
		}
		s.rec.GameOver(ctx, f.Phase)
	}
	s.summary.BestScore = max(s.summary.BestScore, f.Score)
}

// Summary returns the session so far.
func (s *Session) Summary() Summary {
	sum := s.summary
	sum.Duration = s.now().Sub(sum.Started)
	return sum
}

// End closes the session and writes its summary to the sink. Sink errors
// are logged, not returned. Calling End again is a no-op.
func (s *Session) End(ctx context.Context) Summary {
	sum := s.Summary()
	if s.ended {
		return sum
	}
	s.ended = true
	s.rec.SessionEnded(ctx)

	if s.sink != nil {
		if err := s.sink.WriteSummary(ctx, sum); err != nil && s.log != nil {
			s.log.Error("failed to write session summary", "session", sum.Session, "err", err)
		}
	}
	return sum
}
