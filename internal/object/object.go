// Package object defines the simulated entities (ship, torpedoes, asteroids)
// and the presentation-only effects (particles, stars) drawn around them.
package object

import "github.com/go-gl/mathgl/mgl64"

// ID identifies an entity for the lifetime of a game, across resets.
// Presentation layers key their visual representations by it.
type ID uint64

// IDSource hands out monotonically increasing entity IDs.
type IDSource struct {
	next ID
}

// Next returns a fresh ID. The first ID returned is 1.
func (s *IDSource) Next() ID {
	s.next++
	return s.next
}

// Destructible is implemented by entities that are marked for removal during
// a pass and compacted out of their registry afterwards.
type Destructible interface {
	// MarkDestroyed marks the entity for removal at the end of the current pass.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for removal.
	IsDestroyed() bool
}

// Positioned is implemented by anything with a center in world space.
type Positioned interface {
	GetPosition() mgl64.Vec3
}

// Alive is a keep predicate for Registry.Compact that drops destroyed entities.
func Alive[T Destructible](e T) bool {
	return !e.IsDestroyed()
}
