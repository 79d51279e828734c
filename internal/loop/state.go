package loop

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/hyperspace/internal/draw"
	"github.com/tomz197/hyperspace/internal/game"
	"github.com/tomz197/hyperspace/internal/input"
	"github.com/tomz197/hyperspace/internal/object"
)

// screen is the session's presentation state.
type screen int

const (
	screenTitle    screen = iota // Title screen
	screenPlaying                // Game running
	screenOver                   // Won or lost, waiting for restart
	screenShutdown               // Server is shutting down
)

// Session is one player's game and terminal.
type Session struct {
	game    *game.Game
	stars   *object.Starfield
	effects effects
	rng     *rand.Rand // Presentation-only randomness

	canvas       *draw.Canvas
	camera       *draw.Camera
	cw           *draw.ChunkWriter
	writer       io.Writer
	termSizeFunc draw.TermSizeFunc
	frameTime    time.Duration

	stream        *input.Stream
	fire, confirm input.Edge

	log      *log.Logger
	observer FrameObserver
	shutdown <-chan struct{}

	screen     screen
	prevScreen screen
	running    bool

	// Presentation clock: real time since the first frame.
	lastFrame     time.Time
	clock         time.Duration
	lastInput     time.Duration
	overAt        time.Duration // When the end screen appeared
	shutdownUntil time.Duration
	inactive      bool
	wasInactive   bool

	order []int // Reusable draw order for asteroids
}

// update advances the session by one frame.
func (s *Session) update(ctx context.Context, in input.Input, now time.Time) {
	var dt time.Duration
	if !s.lastFrame.IsZero() {
		dt = now.Sub(s.lastFrame)
	}
	s.lastFrame = now
	s.clock += dt

	if in.Quit || in.Closed {
		s.running = false
		return
	}

	idle := s.clock - s.lastInput
	switch {
	case len(in.Pressed) > 0:
		s.lastInput = s.clock
		s.inactive = false
	case idle > InactivityDisconnect:
		s.log.Info("disconnecting inactive session", "idle", idle.Round(time.Second))
		s.running = false
		return
	case idle > InactivityWarn:
		s.inactive = true
	}

	if s.screen != screenShutdown && s.shuttingDown() {
		s.log.Info("showing shutdown notice")
		s.screen = screenShutdown
		s.shutdownUntil = s.clock + ShutdownDisplay
	}

	fire := s.fire.Rising(in.Space)
	confirm := s.confirm.Rising(in.Confirm())

	s.stars.Update()
	s.effects.update(s.clock)

	switch s.screen {
	case screenTitle:
		if confirm {
			s.startGame(ctx)
		}
	case screenPlaying:
		s.updatePlaying(ctx, in, dt, fire)
	case screenOver:
		if confirm && s.clock-s.overAt >= RestartDelay {
			s.startGame(ctx)
		}
	case screenShutdown:
		if s.clock >= s.shutdownUntil {
			s.running = false
		}
	}
}

func (s *Session) shuttingDown() bool {
	if s.shutdown == nil {
		return false
	}
	select {
	case <-s.shutdown:
		return true
	default:
		return false
	}
}

// updatePlaying ticks the game with this frame's controls.
func (s *Session) updatePlaying(ctx context.Context, in input.Input, dt time.Duration, fire bool) {
	x, y := in.Steer()
	f := s.game.Tick(dt, game.Input{SteerX: x, SteerY: y, Fire: fire})
	s.observe(ctx, f)
	s.effects.apply(f, s.rng, s.clock)

	if f.Destroyed > 0 {
		s.log.Debug("asteroid destroyed", "score", f.Score, "speed", f.SpeedMultiplier, "spawnInterval", f.SpawnInterval)
	}
	for _, d := range f.Damage {
		s.log.Debug("ship hit", "health", d.Health)
	}

	if f.PhaseChanged && f.Phase.Terminal() {
		s.screen = screenOver
		s.overAt = s.clock
		s.log.Info("game over", "outcome", f.Phase, "score", f.Score, "health", f.Health, "ticks", f.Tick)
	}
}

// startGame starts or restarts the game.
func (s *Session) startGame(ctx context.Context) {
	if s.stream != nil {
		s.stream.Reset()
	}
	restart := s.screen == screenOver
	s.game.Reset()
	s.effects.reset()
	s.observe(ctx, s.game.Frame())
	s.screen = screenPlaying
	s.log.Info("game started", "restart", restart)
}

func (s *Session) observe(ctx context.Context, f *game.Frame) {
	if s.observer != nil {
		s.observer.ObserveFrame(ctx, f)
	}
}
