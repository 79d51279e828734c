package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/hyperspace/internal/game"
	"github.com/tomz197/hyperspace/internal/object"
)

// effects holds presentation-only state derived from game events.
type effects struct {
	particles   []*object.Particle
	damageUntil time.Duration // Simulation clock at which the damage flash ends
}

// apply starts the effects for a frame's events. now is the presentation clock.
func (e *effects) apply(f *game.Frame, rng *rand.Rand, now time.Duration) {
	for _, ex := range f.Explosions {
		e.particles = append(e.particles, object.SpawnExplosion(rng, ex.Position, ex.Size, now)...)
	}
	for _, d := range f.Damage {
		e.damageUntil = max(e.damageUntil, d.RevertAt)
	}
}

// update moves particles and drops the expired ones.
func (e *effects) update(now time.Duration) {
	kept := e.particles[:0]
	for _, p := range e.particles {
		if p.Update(now) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(e.particles[len(kept):])
	e.particles = kept
}

// damaged reports whether the damage flash is showing at simulation clock t.
func (e *effects) damaged(t time.Duration) bool {
	return t < e.damageUntil
}

func (e *effects) reset() {
	for _, p := range e.particles {
		p.Release()
	}
	clear(e.particles)
	e.particles = e.particles[:0]
	e.damageUntil = 0
}
