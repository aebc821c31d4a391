package domain

// DefaultPointsPerLevel reproduces the seed profile: 2450 reputation is level 8 at 65%.
const DefaultPointsPerLevel = 320

// Badge is an achievement shown on the operator profile.
type Badge struct {
	ID     string
	Name   string
	Icon   string
	Earned bool
}

// OperatorProfile is the gamified view of the dispatcher.
type OperatorProfile struct {
	Name                  string
	Title                 string
	Level                 int
	Reputation            int
	CompletedRequestCount int
	LevelProgressPercent  int
	QualityRatingPercent  int
	StreakDays            int
	Badges                []Badge
}

// Clone returns a deep copy.
func (p OperatorProfile) Clone() OperatorProfile {
	if p.Badges != nil {
		badges := make([]Badge, len(p.Badges))
		copy(badges, p.Badges)
		p.Badges = badges
	}
	return p
}

// Award credits a completed request and recomputes level and progress.
// Negative points are ignored so reputation never decreases.
func (p *OperatorProfile) Award(points, pointsPerLevel int) {
	if points > 0 {
		p.Reputation += points
	}
	p.CompletedRequestCount++
	p.Recompute(pointsPerLevel)
}

// Recompute derives Level and LevelProgressPercent from Reputation.
func (p *OperatorProfile) Recompute(pointsPerLevel int) {
	if pointsPerLevel <= 0 {
		pointsPerLevel = DefaultPointsPerLevel
	}
	if p.Reputation < 0 {
		p.Reputation = 0
	}
	p.Level = p.Reputation/pointsPerLevel + 1
	p.LevelProgressPercent = (p.Reputation % pointsPerLevel) * 100 / pointsPerLevel
}
