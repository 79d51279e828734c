package draw

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera placement and lens.
const (
	CameraZ    = 5.0
	CameraFovY = 75.0 // Degrees
	CameraNear = 0.1
	CameraFar  = 1000.0
)

// Camera projects world space onto canvas pixels. It sits on the +z axis
// looking down -z with +y up.
type Camera struct {
	Eye        mgl64.Vec3
	view, proj mgl64.Mat4
	viewProj   mgl64.Mat4
	width      int
	height     int
}

// NewCamera creates a camera for a width x height pixel canvas.
func NewCamera(width, height int) *Camera {
	c := &Camera{Eye: mgl64.Vec3{0, 0, CameraZ}}
	c.view = mgl64.LookAtV(c.Eye, c.Eye.Sub(mgl64.Vec3{0, 0, 1}), mgl64.Vec3{0, 1, 0})
	c.Resize(width, height)
	return c
}

// Resize rebuilds the projection for a new canvas size.
func (c *Camera) Resize(width, height int) {
	if width == c.width && height == c.height && c.width != 0 {
		return
	}
	c.width = width
	c.height = height
	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = float64(width) / float64(height)
	}
	c.proj = mgl64.Perspective(mgl64.DegToRad(CameraFovY), aspect, CameraNear, CameraFar)
	c.viewProj = c.proj.Mul4(c.view)
}

// Depth returns the distance in front of the camera along its view axis.
func (c *Camera) Depth(p mgl64.Vec3) float64 {
	return c.Eye.Z() - p.Z()
}

// Project maps a world point to canvas pixel coordinates. ok is false for
// points behind the near plane or beyond the far plane.
func (c *Camera) Project(p mgl64.Vec3) (pt Point, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	if w := clip.W(); w < CameraNear || w > CameraFar {
		return Point{}, false
	}
	win := mgl64.Project(p, c.view, c.proj, 0, 0, c.width, c.height)
	// Window space has its origin at the bottom left.
	return Point{X: win.X(), Y: float64(c.height) - win.Y()}, true
}

// ProjectSphere maps a sphere to a canvas centre and pixel radius.
func (c *Camera) ProjectSphere(center mgl64.Vec3, radius float64) (pt Point, r float64, ok bool) {
	pt, ok = c.Project(center)
	if !ok {
		return Point{}, 0, false
	}
	depth := c.Depth(center)
	f := 1 / math.Tan(mgl64.DegToRad(CameraFovY)/2)
	r = radius * f * float64(c.height) / 2 / depth
	return pt, r, true
}
