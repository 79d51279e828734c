package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/hyperspace/internal/physics"
)

// Ship movement bounds and handling.
const (
	ShipBoundX     = 5.0  // |x| limit
	ShipBoundY     = 3.0  // |y| limit
	ShipSteerSpeed = 0.2  // Units per tick at full steering deflection
	ShipTilt       = 0.5  // Radians of pitch/yaw at full deflection
	ShipRadius     = 0.5  // Collision radius against asteroids
	ShipStartY     = -2.5 // Start at the bottom middle of the play area
)

// Ship is the player-controlled craft. It lives on the z = 0 plane and is
// never destroyed, only repositioned on reset.
type Ship struct {
	Position mgl64.Vec3
	Pitch    float64 // Rotation about X; π + tilt so the model faces -z
	Yaw      float64 // Rotation about Y
}

// NewShip creates a ship at its start position.
func NewShip() *Ship {
	s := &Ship{}
	s.Reposition()
	return s
}

// Reposition moves the ship back to its start pose.
func (s *Ship) Reposition() {
	s.Position = mgl64.Vec3{0, ShipStartY, 0}
	s.Pitch = math.Pi
	s.Yaw = 0
}

// Steer moves the ship by the steering vector and sets its orientation
// directly from it. Steering components are clamped to [-1, 1]; NaN counts as 0.
// The resulting position is clamped to the play area.
func (s *Ship) Steer(x, y float64) {
	x = ClampSteer(x)
	y = ClampSteer(y)

	s.Position = s.Position.Add(mgl64.Vec3{x * ShipSteerSpeed, y * ShipSteerSpeed, 0})
	s.Position = physics.ClampXY(s.Position, ShipBoundX, ShipBoundY)

	s.Pitch = math.Pi + y*ShipTilt
	s.Yaw = x * ShipTilt
}

// Nose returns where torpedoes leave the ship.
func (s *Ship) Nose() mgl64.Vec3 {
	return s.Position.Add(mgl64.Vec3{0, 0, -1})
}

// GetPosition returns the ship's center position.
func (s *Ship) GetPosition() mgl64.Vec3 {
	return s.Position
}

// GetRadius returns the ship's collision radius.
func (s *Ship) GetRadius() float64 {
	return ShipRadius
}

// ClampSteer clamps one steering component to [-1, 1].
func ClampSteer(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return mgl64.Clamp(v, -1, 1)
}
