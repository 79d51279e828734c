package game

import (
	"fmt"
	"time"
)

// Phase is the game's top-level state.
type Phase int

const (
	PhasePlaying Phase = iota // Active gameplay
	PhaseWon                  // Target score reached, terminal
	PhaseLost                 // Health depleted, terminal
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Terminal returns true for Won and Lost.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// State holds score, health and difficulty. It is owned by one Game and
// only changes through AddScore, TakeDamage and a reset.
type State struct {
	Score           int
	Health          int
	SpeedMultiplier float64
	SpawnInterval   time.Duration
	Phase           Phase
	TargetScore     int
}

// NewState returns the starting state.
func NewState() State {
	return State{
		Health:          InitialHealth,
		SpeedMultiplier: 1,
		SpawnInterval:   InitialSpawnInterval,
		Phase:           PhasePlaying,
		TargetScore:     TargetScore,
	}
}

// AddScore awards one point for destroying a main asteroid. Every
// DifficultyStep points the asteroids speed up and spawn more often, with the
// spawn interval floored at MinSpawnInterval. Reaching the target score wins.
// No-op outside PhasePlaying.
func (s *State) AddScore() {
	if s.Phase != PhasePlaying {
		return
	}
	s.Score++

	if s.Score%DifficultyStep == 0 {
		s.SpeedMultiplier += SpeedMultiplierUp
		s.SpawnInterval = max(s.SpawnInterval-SpawnIntervalStep, MinSpawnInterval)
	}

	if s.Score >= s.TargetScore {
		s.Phase = PhaseWon
	}
}

// TakeDamage applies one ship collision. Health never drops below zero;
// reaching zero loses the game. No-op outside PhasePlaying.
func (s *State) TakeDamage() {
	if s.Phase != PhasePlaying {
		return
	}
	s.Health -= CollisionDamage
	if s.Health <= 0 {
		s.Health = 0
		s.Phase = PhaseLost
	}
}
