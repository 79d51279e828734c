package draw

import "strconv"

// ANSI attribute sequences for text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorRed        = "\033[31m"
	ColorGreen      = "\033[32m"
	ColorYellow     = "\033[33m"
	ColorBrightCyan = "\033[96m"
	ColorDim        = "\033[2m"
)

// Half-block characters give each terminal cell two vertical pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a canvas pixel colour. The zero value is an unset pixel.
type Color uint8

const (
	None Color = iota
	White
	Gray
	DimGray
	Yellow
	Orange
	Red
	Green
	Cyan
	Blue
)

// palette maps colours to xterm-256 indices.
var palette = [...]int{
	None:    0,
	White:   15,
	Gray:    250,
	DimGray: 240,
	Yellow:  226,
	Orange:  208,
	Red:     196,
	Green:   46,
	Cyan:    51,
	Blue:    33,
}

// xterm returns the xterm-256 index of c.
func (c Color) xterm() int {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[White]
}

// appendFg appends the SGR sequence selecting c as the foreground colour.
func appendFg(b []byte, c Color) []byte {
	b = append(b, "\033[38;5;"...)
	b = strconv.AppendInt(b, int64(c.xterm()), 10)
	return append(b, 'm')
}

// appendBg appends the SGR sequence selecting c as the background colour.
func appendBg(b []byte, c Color) []byte {
	b = append(b, "\033[48;5;"...)
	b = strconv.AppendInt(b, int64(c.xterm()), 10)
	return append(b, 'm')
}
