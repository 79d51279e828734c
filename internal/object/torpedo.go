package object

import "github.com/go-gl/mathgl/mgl64"

// TorpedoRadius is the collision radius of a torpedo.
const TorpedoRadius = 0.15

// TorpedoMinZ is the far edge of the play volume; torpedoes beyond it expire.
const TorpedoMinZ = -100.0

// TorpedoVelocity is the constant per-tick displacement of every torpedo.
var TorpedoVelocity = mgl64.Vec3{0, 0, -1.5}

// Torpedo is a projectile fired by the ship.
type Torpedo struct {
	ID       ID
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Active   bool // Cleared on the first hit so a torpedo scores at most once per pass
}

// NewTorpedo creates an active torpedo at pos.
func NewTorpedo(id ID, pos mgl64.Vec3) *Torpedo {
	return &Torpedo{
		ID:       id,
		Position: pos,
		Velocity: TorpedoVelocity,
		Active:   true,
	}
}

// Update advances the torpedo one tick. Returns true if it left the play
// volume and should be removed.
func (t *Torpedo) Update() bool {
	t.Position = t.Position.Add(t.Velocity)
	if t.Position.Z() < TorpedoMinZ {
		t.Active = false
		return true
	}
	return false
}

// MarkDestroyed deactivates the torpedo (implements Destructible).
func (t *Torpedo) MarkDestroyed() {
	t.Active = false
}

// IsDestroyed returns true once the torpedo has hit something or expired.
func (t *Torpedo) IsDestroyed() bool {
	return !t.Active
}

// GetPosition returns the torpedo's center position.
func (t *Torpedo) GetPosition() mgl64.Vec3 {
	return t.Position
}
