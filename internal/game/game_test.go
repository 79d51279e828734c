package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/hyperspace/internal/object"
)

func TestNewGame(t *testing.T) {
	g := New(WithSeed(1))
	f := g.Frame()

	assert.Equal(t, 0, f.Score)
	assert.Equal(t, 100, f.Health)
	assert.Equal(t, 25, f.TargetScore)
	assert.Equal(t, PhasePlaying, f.Phase)
	assert.False(t, f.PhaseChanged)
	require.Len(t, f.Asteroids, 1)
	assert.False(t, f.Asteroids[0].Fragment)
	assert.Equal(t, -50.0, f.Asteroids[0].Position.Z())
	assert.Empty(t, f.Torpedoes)
	assert.Equal(t, mgl64.Vec3{0, -2.5, 0}, f.Ship.Position)
}

func TestSameSeedSameGame(t *testing.T) {
	run := func() []AsteroidView {
		g := New(WithSeed(7))
		var f *Frame
		for i := 0; i < 200; i++ {
			f = g.Tick(frameTime*10, Input{SteerX: 0.3, Fire: i%10 == 0})
		}
		return append([]AsteroidView(nil), f.Asteroids...)
	}
	assert.Equal(t, run(), run())
}

func TestFireLaunchesTorpedoFromNose(t *testing.T) {
	g := newTestGame(t)
	f := g.Tick(0, Input{Fire: true})

	require.Len(t, f.Torpedoes, 1)
	// Launched at the nose (z=-1) then integrated once.
	assert.InDelta(t, -2.5, f.Torpedoes[0].Position.Z(), 1e-9)
	assert.Equal(t, -2.5, f.Torpedoes[0].Position.Y())

	f = g.Tick(0, Input{})
	assert.Len(t, f.Torpedoes, 1, "fire is per tick, not held")
}

func TestTorpedoExpires(t *testing.T) {
	g := newTestGame(t)
	g.Tick(0, Input{Fire: true})

	f := g.Frame()
	steps := 1
	for len(f.Torpedoes) > 0 && steps < 100 {
		assert.GreaterOrEqual(t, f.Torpedoes[0].Position.Z(), object.TorpedoMinZ)
		f = g.Tick(0, Input{})
		steps++
	}
	assert.Empty(t, f.Torpedoes)
	assert.Equal(t, 0, f.Score)
	// z goes -1 - 1.5n; first below -100 at n = 67.
	assert.Equal(t, 67, steps)
}

func TestTorpedoDestroysMainAsteroid(t *testing.T) {
	g := newTestGame(t)
	target := mgl64.Vec3{0, 0, -10}
	a := placeAsteroid(g, object.AsteroidMain, target, 2)
	placeTorpedo(g, target)

	f := g.Tick(frameTime, Input{})

	assert.Equal(t, 1, f.Score)
	assert.Equal(t, 1, f.Destroyed)
	assert.Empty(t, f.Torpedoes)
	require.Len(t, f.Explosions, 1)
	assert.Equal(t, target, f.Explosions[0].Position)
	assert.Equal(t, 2.0, f.Explosions[0].Size)

	require.GreaterOrEqual(t, len(f.Asteroids), 3)
	require.LessOrEqual(t, len(f.Asteroids), 5)
	for _, v := range f.Asteroids {
		assert.NotEqual(t, a.ID, v.ID)
		assert.True(t, v.Fragment)
		assert.Equal(t, target, v.Position)
		assert.GreaterOrEqual(t, v.Radius, 0.3)
		assert.LessOrEqual(t, v.Radius, 0.9)
	}
}

func TestFragmentsDoNotScore(t *testing.T) {
	g := newTestGame(t)
	target := mgl64.Vec3{0, 0, -10}
	placeAsteroid(g, object.AsteroidFragment, target, 0.5)
	placeTorpedo(g, target)

	f := g.Tick(frameTime, Input{})

	assert.Equal(t, 0, f.Score)
	assert.Equal(t, 0, f.Destroyed)
	assert.Equal(t, 1, f.FragmentsDestroyed)
	assert.Len(t, f.Explosions, 1)
	assert.Empty(t, f.Asteroids, "fragments do not split")
	assert.Empty(t, f.Torpedoes)
}

func TestTorpedoDestroysAtMostOneAsteroid(t *testing.T) {
	g := newTestGame(t)
	target := mgl64.Vec3{0, 0, -20}
	older := placeAsteroid(g, object.AsteroidMain, target, 2)
	newer := placeAsteroid(g, object.AsteroidMain, target, 2)
	placeTorpedo(g, target)

	f := g.Tick(frameTime, Input{})

	assert.Equal(t, 1, f.Score)
	assert.Equal(t, 1, f.Destroyed)
	assert.False(t, older.IsDestroyed())
	assert.True(t, newer.IsDestroyed(), "newest asteroid is checked first")
}

func TestDifficultyRisesEveryFiveKills(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 5; i++ {
		target := mgl64.Vec3{float64(i) * 10, 0, -30}
		placeAsteroid(g, object.AsteroidMain, target, 2)
		placeTorpedo(g, target)
		f := g.Tick(frameTime, Input{})
		require.Equal(t, i+1, f.Score)
	}

	s := g.State()
	assert.InDelta(t, 1.2, s.SpeedMultiplier, 1e-9)
	assert.Equal(t, 1700*time.Millisecond, s.SpawnInterval)
	assert.Equal(t, 1700*time.Millisecond, g.Frame().SpawnInterval)
}

func TestShipCollision(t *testing.T) {
	g := newTestGame(t)
	placeAsteroid(g, object.AsteroidMain, mgl64.Vec3{0, -2.5, -1}, 1.5)

	f := g.Tick(frameTime, Input{})

	assert.Equal(t, 75, f.Health)
	assert.Equal(t, PhasePlaying, f.Phase)
	assert.Empty(t, f.Asteroids)
	assert.Len(t, f.Explosions, 1)
	require.Len(t, f.Damage, 1)
	assert.Equal(t, 75, f.Damage[0].Health)
	assert.Equal(t, f.Clock+DamageFlashDuration, f.Damage[0].RevertAt)
	assert.Equal(t, f.Ship.Position, f.Damage[0].Position)
}

func TestShipHitByMultipleAsteroids(t *testing.T) {
	g := newTestGame(t)
	placeAsteroid(g, object.AsteroidMain, mgl64.Vec3{0, -2.5, -1}, 1.5)
	placeAsteroid(g, object.AsteroidFragment, mgl64.Vec3{0.2, -2.5, 0}, 0.4)

	f := g.Tick(frameTime, Input{})

	assert.Equal(t, 50, f.Health)
	assert.Len(t, f.Damage, 2)
	assert.Len(t, f.Explosions, 2)
	assert.Empty(t, f.Asteroids)
}

func TestShipPassStopsAtLosingHit(t *testing.T) {
	g := newTestGame(t)
	g.state.Health = 25
	placeAsteroid(g, object.AsteroidMain, mgl64.Vec3{0, -2.5, -1}, 1.5)
	placeAsteroid(g, object.AsteroidFragment, mgl64.Vec3{0.2, -2.5, 0}, 0.4)

	f := g.Tick(frameTime, Input{})

	require.Equal(t, PhaseLost, f.Phase)
	require.Len(t, f.Damage, 1)
	assert.Equal(t, 0, f.Damage[0].Health)
	assert.Len(t, f.Explosions, 1)
	assert.Len(t, f.Asteroids, 1, "asteroid after the losing hit is left alone")
}

func TestLoseIsSticky(t *testing.T) {
	g := newTestGame(t)
	g.state.Health = 25
	placeAsteroid(g, object.AsteroidMain, mgl64.Vec3{0, -2.5, -1}, 1.5)
	placeAsteroid(g, object.AsteroidMain, mgl64.Vec3{0, 0, -40}, 2)

	f := g.Tick(frameTime, Input{})
	require.Equal(t, PhaseLost, f.Phase)
	assert.True(t, f.PhaseChanged)
	assert.Equal(t, 0, f.Health)

	before := append([]AsteroidView(nil), f.Asteroids...)
	tick := f.Tick
	for i := 0; i < 10; i++ {
		f = g.Tick(time.Second, Input{SteerX: 1, Fire: true})
	}
	assert.Equal(t, PhaseLost, f.Phase)
	assert.False(t, f.PhaseChanged)
	assert.Equal(t, tick, f.Tick)
	assert.Equal(t, before, f.Asteroids)
	assert.Empty(t, f.Torpedoes)
	assert.Empty(t, f.Explosions)
	assert.Empty(t, f.Damage)
}

func TestWinStopsShipPass(t *testing.T) {
	g := newTestGame(t)
	g.state.Score = 24
	target := mgl64.Vec3{0, 0, -10}
	placeAsteroid(g, object.AsteroidMain, target, 2)
	placeAsteroid(g, object.AsteroidMain, mgl64.Vec3{0, -2.5, -1}, 1.5)
	placeTorpedo(g, target)

	f := g.Tick(frameTime, Input{})

	assert.Equal(t, PhaseWon, f.Phase)
	assert.True(t, f.PhaseChanged)
	assert.Equal(t, 25, f.Score)
	assert.Equal(t, 100, f.Health, "no damage after the winning hit")
	assert.Empty(t, f.Damage)

	f = g.Tick(frameTime, Input{})
	assert.Equal(t, PhaseWon, f.Phase)
	assert.Equal(t, 25, f.Score)
}

func TestResetAfterGameOver(t *testing.T) {
	for _, phase := range []Phase{PhaseWon, PhaseLost} {
		t.Run(phase.String(), func(t *testing.T) {
			g := newTestGame(t)
			g.Tick(0, Input{Fire: true})
			g.state.Phase = phase
			g.state.Score = 13
			g.state.Health = 0
			g.snapshot()
			lastID := g.ids.Next()

			g.Reset()
			f := g.Frame()

			assert.Equal(t, 0, f.Score)
			assert.Equal(t, 100, f.Health)
			assert.Equal(t, 1.0, f.SpeedMultiplier)
			assert.Equal(t, InitialSpawnInterval, f.SpawnInterval)
			assert.Equal(t, PhasePlaying, f.Phase)
			assert.True(t, f.PhaseChanged)
			assert.Equal(t, uint64(0), f.Tick)
			assert.Empty(t, f.Torpedoes)
			require.Len(t, f.Asteroids, 1)
			assert.False(t, f.Asteroids[0].Fragment)
			assert.Greater(t, f.Asteroids[0].ID, lastID, "ids keep increasing")
		})
	}
}

func TestSpawnTimer(t *testing.T) {
	g := New(WithSeed(3))
	require.Len(t, g.Frame().Asteroids, 1)

	f := g.Tick(1999*time.Millisecond, Input{})
	assert.Len(t, f.Asteroids, 1)

	f = g.Tick(2*time.Millisecond, Input{})
	require.Len(t, f.Asteroids, 2)
	spawned := g.asteroids.At(1)
	assert.False(t, spawned.IsFragment())
	assert.InDelta(t, object.AsteroidSpawnZ+spawned.Velocity.Z(), spawned.Position.Z(), 1e-9)

	f = g.Tick(1999*time.Millisecond, Input{})
	assert.Len(t, f.Asteroids, 2, "timer restarted after the spawn")
}

func TestShipStaysInBounds(t *testing.T) {
	g := newTestGame(t)
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 500; i++ {
		in := Input{SteerX: rng.Float64()*4 - 2, SteerY: rng.Float64()*4 - 2}
		f := g.Tick(0, in)
		p := f.Ship.Position
		require.LessOrEqual(t, math.Abs(p.X()), object.ShipBoundX)
		require.LessOrEqual(t, math.Abs(p.Y()), object.ShipBoundY)
		require.Equal(t, 0.0, p.Z())
	}

	g.Tick(0, Input{SteerX: 1, SteerY: 1})
	f := g.Frame()
	assert.Equal(t, math.Pi+object.ShipTilt, f.Ship.Pitch)
	assert.Equal(t, object.ShipTilt, f.Ship.Yaw)
}

func TestAsteroidsLeaveBehindShip(t *testing.T) {
	g := newTestGame(t)
	a := placeAsteroid(g, object.AsteroidMain, mgl64.Vec3{4, 2.5, 9.9}, 1.5)
	a.Velocity = mgl64.Vec3{0, 0, 0.2}

	f := g.Tick(0, Input{})
	assert.Empty(t, f.Asteroids)
	assert.Empty(t, f.Explosions)
	assert.Equal(t, 0, f.Score)
}

func TestFragmentsExpire(t *testing.T) {
	g := newTestGame(t)
	a := placeAsteroid(g, object.AsteroidFragment, mgl64.Vec3{4, 2.5, -80}, 0.5)

	life := a.Life
	for i := 0; i < life-1; i++ {
		f := g.Tick(0, Input{})
		require.Len(t, f.Asteroids, 1)
	}
	f := g.Tick(0, Input{})
	assert.Empty(t, f.Asteroids)
	assert.Equal(t, 0, countFragments(g))
}

func TestFragmentsInheritSpeedMultiplier(t *testing.T) {
	g := newTestGame(t)
	g.state.SpeedMultiplier = 2
	target := mgl64.Vec3{0, 0, -10}
	placeAsteroid(g, object.AsteroidMain, target, 2)
	placeTorpedo(g, target)
	g.Tick(0, Input{})

	require.NotZero(t, countFragments(g))
	for _, a := range g.asteroids.All() {
		vz := a.Velocity.Z()
		assert.GreaterOrEqual(t, vz, 0.1*2*1.5)
		assert.Less(t, vz, 0.15*2*1.5)
	}
}
