package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 100, s.Health)
	assert.Equal(t, 1.0, s.SpeedMultiplier)
	assert.Equal(t, 2000*time.Millisecond, s.SpawnInterval)
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Equal(t, 25, s.TargetScore)
}

func TestAddScoreDifficultyEveryFifthPoint(t *testing.T) {
	s := NewState()
	for i := 0; i < 4; i++ {
		s.AddScore()
		assert.Equal(t, 1.0, s.SpeedMultiplier)
		assert.Equal(t, InitialSpawnInterval, s.SpawnInterval)
	}
	s.AddScore()
	assert.Equal(t, 5, s.Score)
	assert.InDelta(t, 1.2, s.SpeedMultiplier, 1e-9)
	assert.Equal(t, 1700*time.Millisecond, s.SpawnInterval)
}

func TestSpawnIntervalFloor(t *testing.T) {
	s := NewState()
	s.TargetScore = 1000
	prevMult := s.SpeedMultiplier
	for i := 1; i <= 100; i++ {
		s.AddScore()
		assert.GreaterOrEqual(t, s.SpawnInterval, MinSpawnInterval)
		if i%5 == 0 {
			assert.Greater(t, s.SpeedMultiplier, prevMult)
			prevMult = s.SpeedMultiplier
		}
	}
	assert.Equal(t, MinSpawnInterval, s.SpawnInterval)
}

func TestSpawnIntervalClampsInsteadOfUndershooting(t *testing.T) {
	s := NewState()
	s.Score = 4
	s.SpawnInterval = 600 * time.Millisecond
	s.AddScore()
	assert.Equal(t, 500*time.Millisecond, s.SpawnInterval)
}

func TestAddScoreWins(t *testing.T) {
	s := NewState()
	s.Score = 24
	s.AddScore()
	assert.Equal(t, PhaseWon, s.Phase)

	s.AddScore()
	assert.Equal(t, 25, s.Score, "score is frozen once won")
}

func TestTakeDamageLoses(t *testing.T) {
	s := NewState()
	for i := 0; i < 3; i++ {
		s.TakeDamage()
		assert.Equal(t, PhasePlaying, s.Phase)
	}
	assert.Equal(t, 25, s.Health)

	s.TakeDamage()
	assert.Equal(t, 0, s.Health)
	assert.Equal(t, PhaseLost, s.Phase)

	s.TakeDamage()
	s.AddScore()
	assert.Equal(t, 0, s.Health)
	assert.Equal(t, 0, s.Score)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "playing", PhasePlaying.String())
	assert.Equal(t, "won", PhaseWon.String())
	assert.Equal(t, "lost", PhaseLost.String())
	assert.Equal(t, "Phase(7)", Phase(7).String())
	assert.False(t, PhasePlaying.Terminal())
	assert.True(t, PhaseWon.Terminal())
	assert.True(t, PhaseLost.Terminal())
}

func TestSpawnerAdvance(t *testing.T) {
	var s Spawner
	interval := 2000 * time.Millisecond

	assert.False(t, s.Advance(time.Second, interval))
	assert.False(t, s.Advance(time.Second, interval), "exactly the interval is not enough")
	assert.True(t, s.Advance(time.Millisecond, interval))
	assert.False(t, s.Advance(time.Second, interval), "timer restarts after a spawn")

	s.Reset()
	assert.False(t, s.Advance(1500*time.Millisecond, interval))
	assert.False(t, s.Advance(-time.Hour, interval), "negative deltas are ignored")
	assert.True(t, s.Advance(600*time.Millisecond, interval))
}
