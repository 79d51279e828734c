package draw

import (
	"io"
	"strconv"
)

// cell is the pair of pixels shown by one terminal character.
type cell struct {
	top, bottom Color
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. Render only emits cells that changed since the
// previous frame.
type Canvas struct {
	termWidth      int     // Terminal columns covered by the canvas
	termHeight     int     // Terminal rows covered by the canvas
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	prev  []cell // What the terminal shows, valid when drawn is true
	dirty []bool // Cells overwritten by text since the last Render
	drawn bool

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf       []byte    // Reusable buffer for render output
	intersectionBuf []float64 // Reusable buffer for scanline intersections
	polygonBuf      []Point   // Reusable buffer for polygon point generation
}

// NewCanvas creates a canvas covering width x height terminal cells.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize updates the canvas for new terminal dimensions. A size change
// discards the previous frame, forcing a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	if termWidth == c.termWidth && termHeight == c.termHeight && c.pixels != nil {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]Color, c.subPixelHeight*termWidth)
	c.prev = make([]cell, termWidth*termHeight)
	c.dirty = make([]bool, termWidth*termHeight)
	c.drawn = false
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.drawn = false
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.termWidth
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.subPixelHeight
}

// TerminalWidth returns the terminal column count covered by the canvas.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count covered by the canvas.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render emit every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.drawn = false
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.dirty[r*c.termWidth+x] = true
		}
	}
}

// Set sets a pixel, ignoring coordinates outside the canvas.
func (c *Canvas) Set(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// At returns the pixel colour at (x, y), None outside the canvas.
func (c *Canvas) At(x, y int) Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return None
}

// Render outputs the changed cells to w using half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	b := c.renderBuf[:0]
	var fg, bg Color
	styled := false
	nextCol, nextRow := -1, -1 // Where the terminal cursor sits after the last write

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			i := row*c.termWidth + col
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			if c.drawn && !c.dirty[i] && c.prev[i] == cur {
				continue
			}
			c.prev[i] = cur
			c.dirty[i] = false

			if col != nextCol || row != nextRow {
				b = append(b, "\033["...)
				b = strconv.AppendInt(b, int64(row+1+c.offsetRow), 10)
				b = append(b, ';')
				b = strconv.AppendInt(b, int64(col+1+c.offsetCol), 10)
				b = append(b, 'H')
			}
			nextCol, nextRow = col+1, row

			ch, wantFg, wantBg := cellGlyph(cur)
			if !styled || wantFg != fg || wantBg != bg {
				b = append(b, ColorReset...)
				if wantFg != None {
					b = appendFg(b, wantFg)
				}
				if wantBg != None {
					b = appendBg(b, wantBg)
				}
				fg, bg, styled = wantFg, wantBg, true
			}
			b = appendRune(b, ch)
		}
	}
	if styled {
		b = append(b, ColorReset...)
	}
	c.drawn = true
	c.renderBuf = b

	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	return err
}

// cellGlyph picks the character and colours that show a cell's two pixels.
func cellGlyph(c cell) (ch rune, fg, bg Color) {
	switch {
	case c.top == None && c.bottom == None:
		return ' ', None, None
	case c.top == c.bottom:
		return BlockFull, c.top, None
	case c.bottom == None:
		return BlockUpperHalf, c.top, None
	case c.top == None:
		return BlockLowerHalf, c.bottom, None
	default:
		return BlockUpperHalf, c.top, c.bottom
	}
}

func appendRune(b []byte, r rune) []byte {
	if r < 0x80 {
		return append(b, byte(r))
	}
	return append(b, string(r)...)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	// Border positions are relative to the canvas origin; ChunkWriter adds the offset.
	left, right := 0, c.termWidth+1
	top, bottom := 0, c.termHeight+1

	line := make([]rune, 0, c.termWidth+2)
	hline := func(l, r rune) string {
		line = line[:0]
		if hasH {
			line = append(line, l)
		}
		for i := 0; i < c.termWidth; i++ {
			line = append(line, '─')
		}
		if hasH {
			line = append(line, r)
		}
		return string(line)
	}

	cw.WriteString(ColorDim)
	if hasV {
		start := 1
		if hasH {
			start = left
		}
		cw.WriteAt(start, top, hline('┌', '┐'))
		cw.WriteAt(start, bottom, hline('└', '┘'))
	}
	if hasH {
		for row := 1; row <= c.termHeight; row++ {
			cw.WriteAt(left, row, "│")
			cw.WriteAt(right, row, "│")
		}
	}
	cw.WriteString(ColorReset)
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
