package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
	"github.com/spec-kit/gkh-dispatch/internal/repository"
	apperrors "github.com/spec-kit/gkh-dispatch/pkg/util/errorutil"
)

// ProfileService owns operator progression.
type ProfileService struct {
	operators      repository.OperatorRepository
	pointsPerLevel int
	logger         *zap.Logger
}

// NewProfileService constructs the service.
func NewProfileService(operators repository.OperatorRepository, pointsPerLevel int, logger *zap.Logger) *ProfileService {
	if pointsPerLevel <= 0 {
		pointsPerLevel = domain.DefaultPointsPerLevel
	}
	return &ProfileService{
		operators:      operators,
		pointsPerLevel: pointsPerLevel,
		logger:         nopLogger(logger),
	}
}

// Profile returns a copy of the current operator profile.
func (s *ProfileService) Profile(ctx context.Context) (*domain.OperatorProfile, error) {
	profile, err := s.operators.Get(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// AwardCompletion credits a completed request to the operator.
func (s *ProfileService) AwardCompletion(ctx context.Context, req domain.ServiceRequest) (*domain.OperatorProfile, error) {
	before := 0
	profile, err := s.operators.Update(ctx, func(p *domain.OperatorProfile) {
		before = p.Level
		p.Award(req.RewardPoints, s.pointsPerLevel)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if profile.Level > before {
		s.logger.Info("operator level up",
			zap.String("operator", profile.Name),
			zap.Int("level", profile.Level),
			zap.Int("reputation", profile.Reputation))
	}
	return profile, nil
}
