package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/hyperspace/internal/object"
)

// ShipPose is the ship's position and orientation.
type ShipPose struct {
	Position mgl64.Vec3
	Pitch    float64
	Yaw      float64
}

// TorpedoView is the presentation view of a live torpedo.
type TorpedoView struct {
	ID       object.ID
	Position mgl64.Vec3
}

// AsteroidView is the presentation view of a live asteroid.
type AsteroidView struct {
	ID       object.ID
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Radius   float64
	Fragment bool
	Fade     float64 // 1 = opaque; fragments approach 0 before expiring
}

// Explosion asks the presentation layer to play an explosion effect.
type Explosion struct {
	Position mgl64.Vec3
	Size     float64
}

// Damage reports a ship collision. The damage cue should revert once the
// frame clock reaches RevertAt.
type Damage struct {
	Position mgl64.Vec3
	Health   int // Health after the hit
	RevertAt time.Duration
}

// Frame is the output of one tick. Slices are reused between ticks and are
// only valid until the next Tick or Reset.
type Frame struct {
	Tick  uint64        // Ticks simulated since the last reset
	Clock time.Duration // Simulation time since the last reset
	Delta time.Duration // Duration of the tick that produced this frame

	Ship       ShipPose
	Torpedoes  []TorpedoView
	Asteroids  []AsteroidView
	Explosions []Explosion
	Damage     []Damage

	Destroyed          int // Main asteroids destroyed this tick
	FragmentsDestroyed int // Fragments destroyed this tick

	Score           int
	Health          int
	TargetScore     int
	SpeedMultiplier float64
	SpawnInterval   time.Duration
	Phase           Phase
	PhaseChanged    bool // Phase differs from the previous frame's
}

// resetEvents clears the per-tick event lists.
func (f *Frame) resetEvents() {
	f.Explosions = f.Explosions[:0]
	f.Damage = f.Damage[:0]
	f.Destroyed = 0
	f.FragmentsDestroyed = 0
	f.PhaseChanged = false
}
