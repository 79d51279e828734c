package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{2, 3, 6}
	assert.InDelta(t, 7.0, Distance(a, b), 1e-9)
	assert.InDelta(t, 49.0, DistanceSquared(a, b), 1e-9)
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-12)
}

func TestSpheresOverlap(t *testing.T) {
	origin := mgl64.Vec3{0, 0, 0}

	assert.True(t, SpheresOverlap(origin, 1.5, mgl64.Vec3{1, 0, 0}, 0.5))
	assert.False(t, SpheresOverlap(origin, 1.5, mgl64.Vec3{2, 0, 0}, 0.5), "touching spheres must not overlap")
	assert.False(t, SpheresOverlap(origin, 1.0, mgl64.Vec3{0, 0, -10}, 1.0))
}

func TestClampXY(t *testing.T) {
	got := ClampXY(mgl64.Vec3{7, -4, 3}, 5, 3)
	assert.Equal(t, mgl64.Vec3{5, -3, 3}, got)

	inside := mgl64.Vec3{1, 1, -2}
	assert.Equal(t, inside, ClampXY(inside, 5, 3))
}
