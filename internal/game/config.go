package game

import "time"

// Game configuration constants.
// All tunable simulation parameters are centralized here.

// Scoring and win condition
const (
	TargetScore       = 25
	DifficultyStep    = 5 // Every this many points the game speeds up
	SpeedMultiplierUp = 0.2
)

// Spawning
const (
	InitialSpawnInterval = 2000 * time.Millisecond
	SpawnIntervalStep    = 300 * time.Millisecond
	MinSpawnInterval     = 500 * time.Millisecond
)

// Health
const (
	InitialHealth   = 100
	CollisionDamage = 25
)

// Presentation cue
const (
	DamageFlashDuration = 500 * time.Millisecond
)
