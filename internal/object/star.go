package object

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Starfield volume. Stars stream toward the camera for the hyperspace effect.
const (
	StarCount  = 1000
	StarSpread = 100.0  // Width and height of the star volume
	StarFarZ   = -300.0 // Stars are (re)spawned between here and z = 0
	StarNearZ  = 5.0    // Stars past this z are recycled
)

// Star is a presentation-only background point.
type Star struct {
	Position mgl64.Vec3
	Speed    float64 // Units per frame toward the camera
}

// Starfield is the set of background stars.
type Starfield struct {
	Stars []Star
	rng   *rand.Rand
}

// NewStarfield fills a volume ahead of the ship with count stars.
func NewStarfield(rng *rand.Rand, count int) *Starfield {
	f := &Starfield{
		Stars: make([]Star, count),
		rng:   rng,
	}
	for i := range f.Stars {
		f.Stars[i] = Star{
			Position: mgl64.Vec3{
				(rng.Float64() - 0.5) * StarSpread,
				(rng.Float64() - 0.5) * StarSpread,
				rng.Float64() * StarFarZ,
			},
			Speed: rng.Float64()*0.5 + 0.5,
		}
	}
	return f
}

// Update streams every star forward one frame and recycles the ones that
// passed the camera to the far end of the volume.
func (f *Starfield) Update() {
	for i := range f.Stars {
		s := &f.Stars[i]
		s.Position[2] += s.Speed
		if s.Position.Z() > StarNearZ {
			s.Position = mgl64.Vec3{
				(f.rng.Float64() - 0.5) * StarSpread,
				(f.rng.Float64() - 0.5) * StarSpread,
				StarFarZ,
			}
		}
	}
}
