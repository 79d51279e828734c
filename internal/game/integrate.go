package game

import "github.com/tomz197/hyperspace/internal/object"

// integrate advances every torpedo and asteroid by one fixed step and drops
// the ones that expired. Removal happens after the full pass.
func (g *Game) integrate() {
	torpedoesExpired := false
	for _, t := range g.torpedoes.All() {
		if t.Update() {
			torpedoesExpired = true
		}
	}
	asteroidsExpired := false
	for _, a := range g.asteroids.All() {
		if a.Update() {
			asteroidsExpired = true
		}
	}

	if torpedoesExpired {
		g.torpedoes.Compact(object.Alive[*object.Torpedo])
	}
	if asteroidsExpired {
		g.asteroids.Compact(object.Alive[*object.Asteroid])
	}
}
