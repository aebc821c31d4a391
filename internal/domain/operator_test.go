package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecompute_SeedProfile(t *testing.T) {
	p := OperatorProfile{Reputation: 2450}
	p.Recompute(DefaultPointsPerLevel)
	assert.Equal(t, 8, p.Level)
	assert.Equal(t, 65, p.LevelProgressPercent)
}

func TestAward_IncrementsAndLevelsUp(t *testing.T) {
	p := OperatorProfile{Reputation: 2450, CompletedRequestCount: 127}
	p.Recompute(DefaultPointsPerLevel)

	p.Award(100, DefaultPointsPerLevel)
	assert.Equal(t, 2550, p.Reputation)
	assert.Equal(t, 128, p.CompletedRequestCount)
	assert.Equal(t, 8, p.Level)
	assert.Equal(t, 96, p.LevelProgressPercent)

	p.Award(50, DefaultPointsPerLevel)
	assert.Equal(t, 2600, p.Reputation)
	assert.Equal(t, 9, p.Level)
	assert.Equal(t, 12, p.LevelProgressPercent)
}

func TestAward_NegativePointsIgnored(t *testing.T) {
	p := OperatorProfile{Reputation: 10}
	p.Award(-5, 100)
	assert.Equal(t, 10, p.Reputation)
	assert.Equal(t, 1, p.CompletedRequestCount)
}

func TestRecompute_DefaultsBadDivisor(t *testing.T) {
	p := OperatorProfile{Reputation: 320}
	p.Recompute(0)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 0, p.LevelProgressPercent)
}

func TestOperatorProfile_CloneBadges(t *testing.T) {
	p := OperatorProfile{Badges: []Badge{{ID: "hero", Earned: true}}}
	c := p.Clone()
	c.Badges[0].Earned = false
	assert.True(t, p.Badges[0].Earned)
}
