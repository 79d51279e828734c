package draw

import (
	"math"
	"sort"
)

// Point is a position in canvas pixel space.
type Point struct {
	X, Y float64
}

// maxExtentFactor bounds how far outside the canvas a shape may reach, in
// canvas sizes, before it is skipped.
const maxExtentFactor = 4

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (c *Canvas) maxExtent() float64 {
	return float64(maxExtentFactor * (c.termWidth + c.subPixelHeight))
}

// SetFloat sets the pixel nearest to (x, y).
func (c *Canvas) SetFloat(x, y float64, col Color) {
	c.Set(int(math.Round(x)), int(math.Round(y)), col)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	limit := c.maxExtent()
	if math.Abs(p1.X) > limit || math.Abs(p1.Y) > limit || math.Abs(p2.X) > limit || math.Abs(p2.Y) > limit {
		return
	}

	x1 := int(math.Round(p1.X))
	y1 := int(math.Round(p1.Y))
	x2 := int(math.Round(p2.X))
	y2 := int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.Set(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a closed polygon outline in col, filling the interior
// with fill unless fill is None.
func (c *Canvas) DrawPolygon(points []Point, col, fill Color) {
	if len(points) < 3 {
		return
	}

	if fill != None {
		c.fillPolygon(points, fill)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using the scanline algorithm.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	n := len(points)
	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			c.hline(y, intersections[i], intersections[i+1], col)
		}
	}
}

// hline fills row y between x0 and x1, clipped to the canvas.
func (c *Canvas) hline(y int, x0, x1 float64, col Color) {
	xStart := max(int(math.Ceil(x0)), 0)
	xEnd := min(int(math.Floor(x1)), c.termWidth-1)
	for x := xStart; x <= xEnd; x++ {
		c.pixels[y*c.termWidth+x] = col
	}
}

// DrawCircle draws a circle of radius r around center. A filled circle is
// painted in fill with a col rim; pass fill None for an outline only.
func (c *Canvas) DrawCircle(center Point, r float64, col, fill Color) {
	if r > c.maxExtent() || math.IsNaN(r) {
		return
	}
	if r < 1 {
		c.SetFloat(center.X, center.Y, col)
		return
	}

	if fill != None {
		yStart := max(int(math.Floor(center.Y-r)), 0)
		yEnd := min(int(math.Ceil(center.Y+r)), c.subPixelHeight-1)
		for y := yStart; y <= yEnd; y++ {
			dy := float64(y) + 0.5 - center.Y
			if dy*dy > r*r {
				continue
			}
			half := math.Sqrt(r*r - dy*dy)
			c.hline(y, center.X-half, center.X+half, fill)
		}
	}

	// Midpoint circle for the rim.
	cx := int(math.Round(center.X))
	cy := int(math.Round(center.Y))
	x := int(math.Round(r))
	y := 0
	d := 1 - x
	for x >= y {
		c.Set(cx+x, cy+y, col)
		c.Set(cx+y, cy+x, col)
		c.Set(cx-y, cy+x, col)
		c.Set(cx-x, cy+y, col)
		c.Set(cx-x, cy-y, col)
		c.Set(cx-y, cy-x, col)
		c.Set(cx+y, cy-x, col)
		c.Set(cx+x, cy-y, col)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}
