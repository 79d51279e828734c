// Package physics provides collision detection and distance utilities.
package physics

import "github.com/go-gl/mathgl/mgl64"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// SpheresOverlap reports whether two spheres intersect.
// Touching spheres (distance == r1+r2) do not overlap.
func SpheresOverlap(c1 mgl64.Vec3, r1 float64, c2 mgl64.Vec3, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) < minDist*minDist
}

// ClampXY clamps the x and y components of v to the given half extents,
// leaving z untouched.
func ClampXY(v mgl64.Vec3, halfX, halfY float64) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(v.X(), -halfX, halfX),
		mgl64.Clamp(v.Y(), -halfY, halfY),
		v.Z(),
	}
}
