// Package loop runs one player's terminal session: it samples keys, drives
// a game.Game once per frame and renders the result with package draw.
package loop

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/hyperspace/internal/draw"
	"github.com/tomz197/hyperspace/internal/game"
	"github.com/tomz197/hyperspace/internal/input"
	"github.com/tomz197/hyperspace/internal/logging"
	"github.com/tomz197/hyperspace/internal/object"
)

// FrameObserver receives every frame the session produces.
type FrameObserver interface {
	ObserveFrame(ctx context.Context, f *game.Frame)
}

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	FrameTime    time.Duration // Target frame duration, defaults to 1/DefaultFPS
	Seed         int64         // 0 seeds from the clock
	Logger       *log.Logger
	Observer     FrameObserver
	// Shutdown, when closed, shows the shutdown notice and ends the
	// session after ShutdownDisplay.
	Shutdown <-chan struct{}
}

// Run plays one session until the player quits, input ends or ctx is done.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run(ctx)
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r io.Reader, w io.Writer, opts Options) *Session {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	frameTime := opts.FrameTime
	if frameTime <= 0 {
		frameTime = time.Second / DefaultFPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed + 1))

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	s := &Session{
		game:         game.New(game.WithSeed(seed)),
		stars:        object.NewStarfield(rng, object.StarCount),
		rng:          rng,
		canvas:       canvas,
		camera:       draw.NewCamera(canvas.Width(), canvas.Height()),
		cw:           draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		termSizeFunc: termSizeFunc,
		frameTime:    frameTime,
		log:          logger,
		observer:     opts.Observer,
		shutdown:     opts.Shutdown,
		running:      true,
		prevScreen:   -1,
	}
	if r != nil {
		s.stream = input.StartStream(r)
	}
	return s
}

// Run starts the frame loop. Blocks until the session ends.
func (s *Session) Run(ctx context.Context) error {
	draw.EnterAltScreen(s.writer)
	draw.HideCursor(s.writer)
	defer func() {
		draw.ShowCursor(s.writer)
		draw.ExitAltScreen(s.writer)
	}()
	draw.ClearScreen(s.writer)

	s.log.Info("session started")

	for s.running && ctx.Err() == nil {
		frameStart := time.Now()

		s.updateScreen()

		var in input.Input
		if s.stream != nil {
			in = input.ReadInput(s.stream)
		}
		s.update(ctx, in, frameStart)
		if !s.running {
			break
		}

		if err := s.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		if elapsed := time.Since(frameStart); elapsed < s.frameTime {
			time.Sleep(s.frameTime - elapsed)
		}
	}

	draw.ClearScreen(s.writer)
	st := s.game.State()
	s.log.Info("session ended", "score", st.Score, "health", st.Health, "phase", st.Phase)
	return nil
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.cw.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.cw.SetOffset(offsetCol, offsetRow)
	s.camera.Resize(s.canvas.Width(), s.canvas.Height())
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 0), MaxTermWidth)
	renderHeight = min(max(termHeight, 0), MaxTermHeight)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
