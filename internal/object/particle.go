package object

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Explosion particle tuning.
const (
	ExplosionParticles = 20
	ExplosionLifetime  = time.Second // Whole burst is cleared after this long
)

// Particle is a short-lived, presentation-only spark. It never takes part
// in the simulation.
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3    // Per-frame displacement
	Size     float64       // Drawn radius
	Expires  time.Duration // Clock value at which the particle is removed
	Hot      bool          // Yellow core spark vs orange ember
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel mgl64.Vec3, size float64, expires time.Duration) *Particle {
	p := particlePool.Get().(*Particle)
	p.Position = pos
	p.Velocity = vel
	p.Size = size
	p.Expires = expires
	p.Hot = false
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the effect list.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion creates a spherical burst of particles around pos, sized
// relative to the exploding object. All particles expire at now+ExplosionLifetime.
func SpawnExplosion(rng *rand.Rand, pos mgl64.Vec3, size float64, now time.Duration) []*Particle {
	particles := make([]*Particle, 0, ExplosionParticles)
	expires := now + ExplosionLifetime
	for i := 0; i < ExplosionParticles; i++ {
		speed := rng.Float64()*0.3 + 0.1
		angle := rng.Float64() * 2 * math.Pi
		height := rng.Float64()*2 - 1

		vel := mgl64.Vec3{
			math.Cos(angle) * speed,
			height * speed,
			math.Sin(angle) * speed,
		}
		p := NewParticle(pos, vel, rng.Float64()*size*0.15, expires)
		p.Hot = rng.Float64() <= 0.3
		particles = append(particles, p)
	}
	return particles
}

// Update moves the particle. Returns true once it has expired at clock now.
func (p *Particle) Update(now time.Duration) bool {
	if now >= p.Expires {
		return true
	}
	p.Position = p.Position.Add(p.Velocity)
	return false
}
