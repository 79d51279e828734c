package loop

import "time"

// Frame pacing.
const (
	DefaultFPS       = 60
	MaxTermWidth     = 240 // Wider terminals get a centred, bordered canvas
	MaxTermHeight    = 80
	promptBlinkEvery = 600 * time.Millisecond
)

// Session lifecycle.
const (
	InactivityWarn       = 90 * time.Second
	InactivityDisconnect = 120 * time.Second
	ShutdownDisplay      = 10 * time.Second // Shutdown notice shown before disconnecting
	RestartDelay         = time.Second      // End screen ignores restart keys this long
)

// Fragments blink once fading; the period in ticks shrinks with the fade.
const (
	fragmentBlinkMin   = 2
	fragmentBlinkRange = 10
)
