package object

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// AsteroidKind distinguishes spawned asteroids from the fragments they break into.
type AsteroidKind int

const (
	AsteroidMain     AsteroidKind = iota // Spawned by the spawner, infinite life
	AsteroidFragment                     // Produced on destruction, finite life
)

// String returns the kind name.
func (k AsteroidKind) String() string {
	switch k {
	case AsteroidMain:
		return "main"
	case AsteroidFragment:
		return "fragment"
	default:
		return fmt.Sprintf("AsteroidKind(%d)", int(k))
	}
}

// InfiniteLife is the Life of main asteroids.
const InfiniteLife = -1

// Asteroid properties.
const (
	AsteroidSpawnZ      = -50.0 // Main asteroids appear this far out
	AsteroidSpawnSpread = 5.0   // |x|,|y| limit of the spawn position
	AsteroidMinRadius   = 1.5
	AsteroidMaxRadius   = 2.5
	AsteroidMaxZ        = 10.0 // Asteroids past the ship plane by this much expire

	asteroidBaseSpeed   = 0.1
	asteroidSpeedJitter = 0.05
	asteroidSpin        = 0.01 // Max |rotation speed| per axis, radians/tick

	FragmentMinCount     = 3
	FragmentMaxCount     = 5
	FragmentMinScale     = 0.15 // Fragment radius as a share of its parent's
	FragmentMaxScale     = 0.45
	FragmentMinLife      = 50
	FragmentLifeRange    = 99 // Life is in [FragmentMinLife, FragmentMinLife+FragmentLifeRange)
	FragmentSpeedBoost   = 1.5
	FragmentDrift        = 0.1 // Span of the x/y drift velocity
	FragmentFadeDuration = 30  // Ticks of life over which a fragment fades out
)

// Asteroid is a destructible rock flying toward the ship.
type Asteroid struct {
	ID            ID
	Kind          AsteroidKind
	Position      mgl64.Vec3
	Velocity      mgl64.Vec3 // Per-tick displacement
	Rotation      mgl64.Vec3 // Cosmetic Euler angles
	RotationSpeed mgl64.Vec3 // Per-tick rotation
	Radius        float64
	Life          int // Ticks left for fragments; InfiniteLife for main asteroids
	destroyed     bool
}

// NewMainAsteroid creates a main asteroid at a random spot on the spawn plane.
// speedMultiplier scales its forward speed with difficulty.
func NewMainAsteroid(id ID, rng *rand.Rand, speedMultiplier float64) *Asteroid {
	pos := mgl64.Vec3{
		(rng.Float64() - 0.5) * 2 * AsteroidSpawnSpread,
		(rng.Float64() - 0.5) * 2 * AsteroidSpawnSpread,
		AsteroidSpawnZ,
	}
	radius := AsteroidMinRadius + rng.Float64()*(AsteroidMaxRadius-AsteroidMinRadius)

	a := newAsteroid(id, AsteroidMain, pos, radius, rng)
	a.Velocity = mgl64.Vec3{0, 0, forwardSpeed(rng) * speedMultiplier}
	a.Life = InfiniteLife
	return a
}

// NewFragment creates a fragment at pos with the given radius.
func NewFragment(id ID, rng *rand.Rand, pos mgl64.Vec3, radius, speedMultiplier float64) *Asteroid {
	a := newAsteroid(id, AsteroidFragment, pos, radius, rng)
	a.Velocity = mgl64.Vec3{
		(rng.Float64() - 0.5) * FragmentDrift,
		(rng.Float64() - 0.5) * FragmentDrift,
		forwardSpeed(rng) * speedMultiplier * FragmentSpeedBoost,
	}
	a.Life = FragmentMinLife + rng.Intn(FragmentLifeRange)
	return a
}

func newAsteroid(id ID, kind AsteroidKind, pos mgl64.Vec3, radius float64, rng *rand.Rand) *Asteroid {
	if !(radius > 0) {
		panic(fmt.Sprintf("object: asteroid radius must be positive, got %v", radius))
	}
	return &Asteroid{
		ID:       id,
		Kind:     kind,
		Position: pos,
		Radius:   radius,
		Rotation: mgl64.Vec3{
			rng.Float64() * 2 * math.Pi,
			rng.Float64() * 2 * math.Pi,
			rng.Float64() * 2 * math.Pi,
		},
		RotationSpeed: mgl64.Vec3{
			(rng.Float64()*2 - 1) * asteroidSpin,
			(rng.Float64()*2 - 1) * asteroidSpin,
			(rng.Float64()*2 - 1) * asteroidSpin,
		},
	}
}

func forwardSpeed(rng *rand.Rand) float64 {
	return asteroidBaseSpeed + rng.Float64()*asteroidSpeedJitter
}

// IsFragment returns true for fragments.
func (a *Asteroid) IsFragment() bool {
	return a.Kind == AsteroidFragment
}

// Split breaks a main asteroid into 3-5 fragments at its position, each sized
// between 15% and 45% of its radius. Fragments do not split further; Split
// returns nil for them.
func (a *Asteroid) Split(rng *rand.Rand, ids *IDSource, speedMultiplier float64) []*Asteroid {
	if a.IsFragment() {
		return nil
	}
	count := FragmentMinCount + rng.Intn(FragmentMaxCount-FragmentMinCount+1)
	fragments := make([]*Asteroid, 0, count)
	for i := 0; i < count; i++ {
		scale := FragmentMinScale + rng.Float64()*(FragmentMaxScale-FragmentMinScale)
		fragments = append(fragments, NewFragment(ids.Next(), rng, a.Position, a.Radius*scale, speedMultiplier))
	}
	return fragments
}

// Update advances the asteroid one tick. Returns true if it expired: a
// fragment ran out of life or the asteroid passed the ship plane.
func (a *Asteroid) Update() bool {
	a.Position = a.Position.Add(a.Velocity)
	a.Rotation = a.Rotation.Add(a.RotationSpeed)

	if a.IsFragment() && a.Life > 0 {
		a.Life--
		if a.Life <= 0 {
			a.destroyed = true
			return true
		}
	}

	if a.Position.Z() > AsteroidMaxZ {
		a.destroyed = true
		return true
	}
	return false
}

// Fade returns the presentation opacity in (0, 1]. Fragments fade out over
// their last FragmentFadeDuration ticks.
func (a *Asteroid) Fade() float64 {
	if a.IsFragment() && a.Life > 0 && a.Life < FragmentFadeDuration {
		return float64(a.Life) / FragmentFadeDuration
	}
	return 1
}

// MarkDestroyed marks the asteroid for removal (implements Destructible).
func (a *Asteroid) MarkDestroyed() {
	a.destroyed = true
}

// IsDestroyed returns true if the asteroid is marked for removal (implements Destructible).
func (a *Asteroid) IsDestroyed() bool {
	return a.destroyed
}

// GetPosition returns the asteroid's center position.
func (a *Asteroid) GetPosition() mgl64.Vec3 {
	return a.Position
}

// GetRadius returns the asteroid's collision radius.
func (a *Asteroid) GetRadius() float64 {
	return a.Radius
}
