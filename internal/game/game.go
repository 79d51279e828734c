// Package game implements the simulation core: asteroid spawning, per-tick
// integration, collision and fragmentation, scoring, difficulty and the
// Playing/Won/Lost state machine.
//
// A Game is single-threaded. The caller drives it with one Tick per rendered
// frame and may Reset it between ticks.
package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/hyperspace/internal/object"
)

// Input is the player's control state sampled once per tick.
type Input struct {
	SteerX float64 // -1 (left) .. 1 (right)
	SteerY float64 // -1 (down) .. 1 (up)
	Fire   bool    // Fire one torpedo this tick
}

// Game owns one simulation.
type Game struct {
	state     State
	ship      *object.Ship
	torpedoes *object.Registry[*object.Torpedo]
	asteroids *object.Registry[*object.Asteroid]
	spawned   []*object.Asteroid // Fragments queued during the torpedo pass
	spawner   Spawner
	ids       object.IDSource
	rng       *rand.Rand

	tick  uint64
	clock time.Duration
	frame Frame
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source used for spawning and fragmentation.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// New creates a game in its starting state.
func New(opts ...Option) *Game {
	g := &Game{
		ship:      object.NewShip(),
		torpedoes: object.NewRegistry[*object.Torpedo](),
		asteroids: object.NewRegistry[*object.Asteroid](),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.Reset()
	return g
}

// Reset returns the game to its starting state: score 0, full health, base
// difficulty, no torpedoes and exactly one main asteroid. Entity IDs keep
// increasing across resets.
func (g *Game) Reset() {
	prev := g.frame.Phase

	g.state = NewState()
	g.ship.Reposition()
	g.torpedoes.Clear()
	g.asteroids.Clear()
	clear(g.spawned)
	g.spawned = g.spawned[:0]
	g.spawner.Reset()
	g.tick = 0
	g.clock = 0

	g.spawnAsteroid()

	g.frame.resetEvents()
	g.frame.Delta = 0
	g.snapshot()
	g.frame.PhaseChanged = prev != g.state.Phase
}

// Tick advances the simulation by one frame. dt is the real time since the
// previous frame; it drives the spawn timer and is reported in the frame,
// but entity motion uses fixed per-tick increments. Outside PhasePlaying
// nothing advances and the returned frame carries no events.
func (g *Game) Tick(dt time.Duration, in Input) *Frame {
	g.frame.resetEvents()
	g.frame.Delta = dt
	if g.state.Phase != PhasePlaying {
		return &g.frame
	}

	prev := g.state.Phase
	g.tick++
	if dt > 0 {
		g.clock += dt
	}

	g.ship.Steer(in.SteerX, in.SteerY)
	if in.Fire {
		g.fire()
	}
	if g.spawner.Advance(dt, g.state.SpawnInterval) {
		g.spawnAsteroid()
	}

	g.integrate()
	g.collide()

	g.snapshot()
	g.frame.PhaseChanged = prev != g.state.Phase
	return &g.frame
}

// State returns a copy of the score, health and difficulty state.
func (g *Game) State() State {
	return g.state
}

// Frame returns the most recent frame.
func (g *Game) Frame() *Frame {
	return &g.frame
}

// fire launches one torpedo from the ship's nose.
func (g *Game) fire() {
	g.torpedoes.Add(object.NewTorpedo(g.ids.Next(), g.ship.Nose()))
}

// spawnAsteroid adds one main asteroid at the current difficulty.
func (g *Game) spawnAsteroid() {
	g.asteroids.Add(object.NewMainAsteroid(g.ids.Next(), g.rng, g.state.SpeedMultiplier))
}

// snapshot copies the entity and state views into the frame.
func (g *Game) snapshot() {
	f := &g.frame
	f.Tick = g.tick
	f.Clock = g.clock
	f.Ship = ShipPose{
		Position: g.ship.Position,
		Pitch:    g.ship.Pitch,
		Yaw:      g.ship.Yaw,
	}

	f.Torpedoes = f.Torpedoes[:0]
	for _, t := range g.torpedoes.All() {
		f.Torpedoes = append(f.Torpedoes, TorpedoView{ID: t.ID, Position: t.Position})
	}

	f.Asteroids = f.Asteroids[:0]
	for _, a := range g.asteroids.All() {
		f.Asteroids = append(f.Asteroids, AsteroidView{
			ID:       a.ID,
			Position: a.Position,
			Rotation: a.Rotation,
			Radius:   a.Radius,
			Fragment: a.IsFragment(),
			Fade:     a.Fade(),
		})
	}

	f.Score = g.state.Score
	f.Health = g.state.Health
	f.TargetScore = g.state.TargetScore
	f.SpeedMultiplier = g.state.SpeedMultiplier
	f.SpawnInterval = g.state.SpawnInterval
	f.Phase = g.state.Phase
}
