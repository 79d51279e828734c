package game

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/hyperspace/internal/object"
)

const frameTime = 16 * time.Millisecond

// newTestGame returns a seeded game with its starting asteroid removed.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New(WithSeed(42))
	g.asteroids.Clear()
	return g
}

// placeAsteroid adds a motionless asteroid of the given kind and radius.
func placeAsteroid(g *Game, kind object.AsteroidKind, pos mgl64.Vec3, radius float64) *object.Asteroid {
	var a *object.Asteroid
	if kind == object.AsteroidFragment {
		a = object.NewFragment(g.ids.Next(), g.rng, pos, radius, 1)
	} else {
		a = object.NewMainAsteroid(g.ids.Next(), g.rng, 1)
		a.Position = pos
		a.Radius = radius
	}
	a.Velocity = mgl64.Vec3{}
	g.asteroids.Add(a)
	return a
}

// placeTorpedo adds a torpedo that will be at target after one integration step.
func placeTorpedo(g *Game, target mgl64.Vec3) *object.Torpedo {
	t := object.NewTorpedo(g.ids.Next(), target.Sub(object.TorpedoVelocity))
	g.torpedoes.Add(t)
	return t
}

func countFragments(g *Game) int {
	n := 0
	for _, a := range g.asteroids.All() {
		if a.IsFragment() {
			n++
		}
	}
	return n
}
