package loop

import (
	"fmt"
	"strings"

	"github.com/tomz197/hyperspace/internal/draw"
	"github.com/tomz197/hyperspace/internal/game"
)

// healthBarWidth is the number of cells in the hull bar.
const healthBarWidth = 20

var titleArt = []string{
	`  _  ___   _____ ___ ___  ___ ___  _   ___ ___  `,
	` | || \ \ / / _ \ __| _ \/ __| _ \/_\ / __| __| `,
	` | __ |\ V /|  _/ _||   /\__ \  _/ _ \ (__| _|  `,
	` |_||_| |_| |_| |___|_|_\|___/_|/_/ \_\___|___| `,
}

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	if s.screen != s.prevScreen || s.inactive != s.wasInactive {
		s.cw.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
		s.prevScreen = s.screen
		s.wasInactive = s.inactive
	}

	s.canvas.Clear()
	s.drawScene()

	if err := s.canvas.Render(s.cw); err != nil {
		return err
	}
	s.canvas.RenderBorder(s.cw)
	s.drawUI()

	return s.cw.Flush()
}

// drawUI draws the text overlay.
func (s *Session) drawUI() {
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if s.screen == screenShutdown {
		s.drawShutdownScreen(centerX, centerY)
		return
	}
	if s.inactive {
		s.drawInactivityScreen(centerX, centerY)
		return
	}

	switch s.screen {
	case screenTitle:
		s.drawTitleScreen(centerX, centerY)
	case screenPlaying:
		s.drawPlayingHUD(termWidth, termHeight)
	case screenOver:
		s.drawPlayingHUD(termWidth, termHeight)
		s.drawOverScreen(centerX, centerY)
	}
}

// writeCentered writes text centred on centerX and marks it for repaint.
func (s *Session) writeCentered(centerX, row int, style, text string) {
	col := centerX - len([]rune(text))/2 + 1
	if style == "" {
		s.cw.WriteAt(col, row, text)
	} else {
		s.cw.WriteStyledAt(col, row, style, text)
	}
	s.canvas.MarkTextDirty(col, row, len([]rune(text)))
}

// blinkCentered writes text in its on phase and blanks it otherwise.
func (s *Session) blinkCentered(centerX, row int, text string) {
	if s.blinkOn() {
		s.writeCentered(centerX, row, draw.ColorBold, text)
		return
	}
	s.writeCentered(centerX, row, "", strings.Repeat(" ", len([]rune(text))))
}

func (s *Session) blinkOn() bool {
	return (s.clock/promptBlinkEvery)%2 == 0
}

// drawTitleScreen draws the title screen.
func (s *Session) drawTitleScreen(centerX, centerY int) {
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	top := centerY - 7
	for i, line := range titleArt {
		s.cw.WriteStyledAt(centerX-titleWidth/2+1, top+i, draw.ColorBrightCyan, line)
	}

	s.writeCentered(centerX, top+len(titleArt)+1, "", "~ Asteroid run through hyperspace ~")

	controlsY := top + len(titleArt) + 3
	s.writeCentered(centerX, controlsY, draw.ColorBold, "Controls")
	controlLines := []string{
		"W A S D / Arrows . . . Steer",
		"J L I K  . . . . . . . Steer",
		"U / O  . . . Steer diagonally",
		"SPACE  . . . . . . . . . Fire",
		"Q  . . . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		s.writeCentered(centerX, controlsY+1+i, "", line)
	}

	s.blinkCentered(centerX, controlsY+len(controlLines)+2, ">>  Press SPACE to Start  <<")
}

// drawPlayingHUD draws score, hull and difficulty. Fields are fixed width
// so shrinking values don't leave residual characters on screen.
func (s *Session) drawPlayingHUD(termWidth, termHeight int) {
	f := s.game.Frame()

	scoreText := fmt.Sprintf("Score: %2d/%-2d", f.Score, f.TargetScore)
	s.cw.WriteStyledAt(2, 1, draw.ColorBold, scoreText)

	hull := healthBar(f.Health)
	hullText := fmt.Sprintf("Hull %s %3d", hull, f.Health)
	col := termWidth - len([]rune(hullText))
	s.cw.MoveCursor(col, 1)
	s.cw.WriteString("Hull ")
	s.cw.WriteString(healthColor(f.Health))
	s.cw.WriteString(hull)
	s.cw.WriteString(draw.ColorReset)
	s.cw.WriteString(fmt.Sprintf(" %3d", f.Health))

	diffText := fmt.Sprintf("Speed x%-4.1f Spawn %-4.1fs", f.SpeedMultiplier, f.SpawnInterval.Seconds())
	s.cw.WriteAt(2, termHeight, diffText)

	countText := fmt.Sprintf("Asteroids: %-4d", len(f.Asteroids))
	s.cw.WriteAt(termWidth-len(countText), termHeight, countText)
}

// healthBar renders health as a fixed-width bar.
func healthBar(health int) string {
	filled := health * healthBarWidth / game.InitialHealth
	filled = min(max(filled, 0), healthBarWidth)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", healthBarWidth-filled) + "]"
}

// healthColor is green when healthy, yellow at half and red when critical.
func healthColor(health int) string {
	switch {
	case health <= 25:
		return draw.ColorRed
	case health <= 50:
		return draw.ColorYellow
	default:
		return draw.ColorGreen
	}
}

// drawOverScreen draws the win or game over screen.
func (s *Session) drawOverScreen(centerX, centerY int) {
	f := s.game.Frame()

	title, style := "G A M E   O V E R", draw.ColorBold+draw.ColorRed
	if f.Phase == game.PhaseWon {
		title, style = "Y O U   W I N", draw.ColorBold+draw.ColorGreen
	}
	s.writeCentered(centerX, centerY-3, style, title)

	s.writeCentered(centerX, centerY-1, "", fmt.Sprintf("Score: %d/%d", f.Score, f.TargetScore))
	s.writeCentered(centerX, centerY, "", fmt.Sprintf("Hull: %d", f.Health))

	if s.clock-s.overAt >= RestartDelay {
		s.blinkCentered(centerX, centerY+2, ">>  Press SPACE to Restart  <<")
	}
	s.writeCentered(centerX, centerY+3, draw.ColorDim, "Q to quit")
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen(centerX, centerY int) {
	s.writeCentered(centerX, centerY-2, draw.ColorBold+draw.ColorYellow, "INACTIVITY WARNING")

	left := (InactivityDisconnect - (s.clock - s.lastInput)).Seconds()
	msg := fmt.Sprintf("You have been inactive for too long. You will be disconnected in %3d seconds.", int(max(left, 0)))
	s.writeCentered(centerX, centerY, "", msg)

	s.writeCentered(centerX, centerY+2, "", "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (s *Session) drawShutdownScreen(centerX, centerY int) {
	s.writeCentered(centerX, centerY-3, draw.ColorBold+draw.ColorYellow, "SERVER SHUTTING DOWN")
	s.writeCentered(centerX, centerY-1, "", "The server is restarting for maintenance.")
	s.writeCentered(centerX, centerY, "", "Please reconnect in a moment.")

	remaining := int((s.shutdownUntil - s.clock).Seconds()) + 1
	s.writeCentered(centerX, centerY+2, "", fmt.Sprintf("Disconnecting in %2d seconds...", max(remaining, 0)))
	s.writeCentered(centerX, centerY+4, "", "Press Q to disconnect now")
}
