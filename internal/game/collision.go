package game

import (
	"github.com/tomz197/hyperspace/internal/object"
	"github.com/tomz197/hyperspace/internal/physics"
)

// collide resolves torpedo and ship contacts for this tick.
func (g *Game) collide() {
	g.checkTorpedoAsteroidCollisions()

	g.torpedoes.Compact(object.Alive[*object.Torpedo])
	g.asteroids.Compact(object.Alive[*object.Asteroid])
	g.flushSpawned()

	if g.state.Phase == PhasePlaying {
		g.checkShipAsteroidCollisions()
		g.asteroids.Compact(object.Alive[*object.Asteroid])
	}
}

// checkTorpedoAsteroidCollisions scans torpedoes and asteroids newest first.
// A torpedo destroys at most one asteroid per pass; the first overlap wins.
// Fragments produced here join the registry after the pass.
func (g *Game) checkTorpedoAsteroidCollisions() {
	torpedoes := g.torpedoes.All()
	asteroids := g.asteroids.All()

	for i := len(torpedoes) - 1; i >= 0; i-- {
		t := torpedoes[i]
		if !t.Active {
			continue
		}
		for j := len(asteroids) - 1; j >= 0; j-- {
			a := asteroids[j]
			if a.IsDestroyed() {
				continue
			}
			if physics.SpheresOverlap(t.Position, object.TorpedoRadius, a.Position, a.Radius) {
				g.destroyByTorpedo(t, a)
				break
			}
		}
		if g.state.Phase != PhasePlaying {
			return
		}
	}
}

// destroyByTorpedo removes both entities, fragments main asteroids and scores.
func (g *Game) destroyByTorpedo(t *object.Torpedo, a *object.Asteroid) {
	t.MarkDestroyed()
	a.MarkDestroyed()
	g.explode(a)

	if a.IsFragment() {
		g.frame.FragmentsDestroyed++
		return
	}

	g.spawned = append(g.spawned, a.Split(g.rng, &g.ids, g.state.SpeedMultiplier)...)
	g.frame.Destroyed++
	g.state.AddScore()
}

// checkShipAsteroidCollisions damages the ship once per overlapping asteroid.
// Unlike torpedoes, the ship can be hit by several asteroids in one tick.
// The pass stops at the hit that loses the game.
func (g *Game) checkShipAsteroidCollisions() {
	shipPos := g.ship.GetPosition()
	shipRadius := g.ship.GetRadius()
	asteroids := g.asteroids.All()

	for i := len(asteroids) - 1; i >= 0; i-- {
		a := asteroids[i]
		if a.IsDestroyed() {
			continue
		}
		if !physics.SpheresOverlap(shipPos, shipRadius, a.Position, a.Radius) {
			continue
		}

		a.MarkDestroyed()
		g.explode(a)
		g.state.TakeDamage()
		g.frame.Damage = append(g.frame.Damage, Damage{
			Position: shipPos,
			Health:   g.state.Health,
			RevertAt: g.clock + DamageFlashDuration,
		})
		if g.state.Phase != PhasePlaying {
			return
		}
	}
}

// explode emits an explosion event sized to the asteroid.
func (g *Game) explode(a *object.Asteroid) {
	g.frame.Explosions = append(g.frame.Explosions, Explosion{
		Position: a.Position,
		Size:     a.Radius,
	})
}

// flushSpawned adds queued fragments to the registry.
func (g *Game) flushSpawned() {
	for _, a := range g.spawned {
		g.asteroids.Add(a)
	}
	clear(g.spawned)
	g.spawned = g.spawned[:0]
}
