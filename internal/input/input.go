package input

import (
	"bufio"
	"io"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// KeySteer is the steering magnitude of a digital direction key. The ship
// moves 0.1 units per tick while one is held.
const KeySteer = 0.5

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	UpLeft  bool
	UpRight bool
	Up      bool
	Down    bool
	Space   bool
	Enter   bool
	Escape  bool
	Closed  bool // The underlying reader is exhausted
	Pressed []byte
}

// Steer folds the direction keys into a steering vector of ±KeySteer per axis.
func (in Input) Steer() (x, y float64) {
	if in.Left || in.UpLeft {
		x--
	}
	if in.Right || in.UpRight {
		x++
	}
	if in.Up || in.UpLeft || in.UpRight {
		y++
	}
	if in.Down {
		y--
	}
	return clampUnit(x) * KeySteer, clampUnit(y) * KeySteer
}

// Confirm reports whether a start/restart key is held.
func (in Input) Confirm() bool {
	return in.Space || in.Enter
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	upLeft  time.Time
	upRight time.Time
	up      time.Time
	down    time.Time
	space   time.Time
	enter   time.Time
	escape  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Reset forgets every held key, so a key held across a screen change
// must be pressed again.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool {
		return !t.IsZero() && now.Sub(t) < keyHoldDuration
	}
	return Input{
		Quit:    held(s.state.quit),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		UpLeft:  held(s.state.upLeft),
		UpRight: held(s.state.upRight),
		Up:      held(s.state.up),
		Down:    held(s.state.down),
		Space:   held(s.state.space),
		Enter:   held(s.state.enter),
		Escape:  held(s.state.escape),
		Closed:  s.closed,
		Pressed: buf,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 's', 'S', 'k', 'K':
		state.down = now
	case 'u', 'U':
		state.upLeft = now
	case 'o', 'O':
		state.upRight = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}

// Edge detects the rising edge of a held key.
type Edge struct {
	prev bool
}

// Rising reports whether down is true now but was false on the previous call.
func (e *Edge) Rising(down bool) bool {
	r := down && !e.prev
	e.prev = down
	return r
}

// Reset makes the next held key count as a fresh press.
func (e *Edge) Reset() {
	e.prev = false
}
