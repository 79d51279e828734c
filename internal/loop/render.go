package loop

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/hyperspace/internal/draw"
	"github.com/tomz197/hyperspace/internal/game"
	"github.com/tomz197/hyperspace/internal/object"
)

// asteroidVertices is the size of the jagged asteroid outline.
const asteroidVertices = 12

// Ship model in its own frame. The nose points along +z; the resting
// pitch of pi turns it to face -z with the fin up.
var (
	shipNose  = mgl64.Vec3{0, 0, 0.9}
	shipLeft  = mgl64.Vec3{-0.6, 0, -0.4}
	shipRight = mgl64.Vec3{0.6, 0, -0.4}
	shipTail  = mgl64.Vec3{0, 0, -0.25}
	shipFin   = mgl64.Vec3{0, -0.3, -0.4}
)

// drawScene rasterizes the world onto the canvas, far to near.
func (s *Session) drawScene() {
	drawStars(s.canvas, s.camera, s.stars)
	if s.screen == screenTitle {
		return
	}

	f := s.game.Frame()
	s.drawAsteroids(f)
	drawTorpedoes(s.canvas, s.camera, f.Torpedoes)
	drawParticles(s.canvas, s.camera, s.effects.particles)
	if f.Phase == game.PhasePlaying {
		drawShip(s.canvas, s.camera, f.Ship, s.effects.damaged(f.Clock))
	}
}

func drawStars(c *draw.Canvas, cam *draw.Camera, stars *object.Starfield) {
	for _, st := range stars.Stars {
		pt, ok := cam.Project(st.Position)
		if !ok {
			continue
		}
		col := draw.DimGray
		switch z := st.Position.Z(); {
		case z > -50:
			col = draw.White
		case z > -150:
			col = draw.Gray
		}
		c.SetFloat(pt.X, pt.Y, col)
	}
}

// drawAsteroids draws asteroids farthest first so nearer ones overlap.
func (s *Session) drawAsteroids(f *game.Frame) {
	s.order = s.order[:0]
	for i := range f.Asteroids {
		s.order = append(s.order, i)
	}
	sort.SliceStable(s.order, func(i, j int) bool {
		return f.Asteroids[s.order[i]].Position.Z() < f.Asteroids[s.order[j]].Position.Z()
	})

	for _, i := range s.order {
		a := f.Asteroids[i]
		if a.Fragment && !fragmentVisible(f.Tick, a.Fade) {
			continue
		}
		center, r, ok := s.camera.ProjectSphere(a.Position, a.Radius)
		if !ok {
			continue
		}

		outline, fill := draw.Gray, draw.DimGray
		switch {
		case a.Fragment:
			outline, fill = draw.Yellow, draw.Orange
		case s.camera.Depth(a.Position) < 20:
			outline, fill = draw.White, draw.Gray
		}
		drawAsteroidShape(s.canvas, center, r, a.Rotation, outline, fill)
	}
}

// fragmentVisible blinks fading fragments faster as they fade out.
func fragmentVisible(tick uint64, fade float64) bool {
	if fade >= 1 {
		return true
	}
	period := uint64(fragmentBlinkMin + int(fade*fragmentBlinkRange))
	return (tick/period)%2 == 0
}

// drawAsteroidShape draws a jagged rock whose outline tumbles with rot.
func drawAsteroidShape(c *draw.Canvas, center draw.Point, r float64, rot mgl64.Vec3, outline, fill draw.Color) {
	if r < 1.5 {
		c.DrawCircle(center, r, outline, fill)
		return
	}
	pts := c.BorrowPoints(asteroidVertices)
	for i := range pts {
		base := 2 * math.Pi * float64(i) / asteroidVertices
		k := 1 + 0.12*math.Sin(3*base+rot.X()) + 0.08*math.Cos(5*base+rot.Y())
		theta := base + rot.Z()
		pts[i] = draw.Point{
			X: center.X + math.Cos(theta)*r*k,
			Y: center.Y + math.Sin(theta)*r*k,
		}
	}
	c.DrawPolygon(pts, outline, fill)
}

func drawTorpedoes(c *draw.Canvas, cam *draw.Camera, torpedoes []game.TorpedoView) {
	for _, t := range torpedoes {
		pt, r, ok := cam.ProjectSphere(t.Position, object.TorpedoRadius)
		if !ok {
			continue
		}
		c.DrawCircle(pt, max(r, 0.5), draw.Cyan, draw.Cyan)
	}
}

func drawParticles(c *draw.Canvas, cam *draw.Camera, particles []*object.Particle) {
	for _, p := range particles {
		pt, r, ok := cam.ProjectSphere(p.Position, p.Size)
		if !ok {
			continue
		}
		col := draw.Orange
		if p.Hot {
			col = draw.Yellow
		}
		c.DrawCircle(pt, r, col, col)
	}
}

// drawShip draws the ship wireframe, hollow and red while damaged.
func drawShip(c *draw.Canvas, cam *draw.Camera, pose game.ShipPose, damaged bool) {
	rot := mgl64.Rotate3DX(pose.Pitch).Mul3(mgl64.Rotate3DY(pose.Yaw))
	project := func(v mgl64.Vec3) (draw.Point, bool) {
		return cam.Project(pose.Position.Add(rot.Mul3x1(v)))
	}

	nose, ok1 := project(shipNose)
	left, ok2 := project(shipLeft)
	right, ok3 := project(shipRight)
	tail, ok4 := project(shipTail)
	fin, ok5 := project(shipFin)
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		return
	}

	wingOutline, wingFill := draw.White, draw.Blue
	finOutline, finFill := draw.Cyan, draw.Cyan
	if damaged {
		wingOutline, wingFill = draw.Red, draw.None
		finOutline, finFill = draw.Red, draw.None
	}

	wing := c.BorrowPoints(4)
	wing[0], wing[1], wing[2], wing[3] = nose, left, tail, right
	c.DrawPolygon(wing, wingOutline, wingFill)

	tri := c.BorrowPoints(3)
	tri[0], tri[1], tri[2] = nose, fin, tail
	c.DrawPolygon(tri, finOutline, finFill)
}
