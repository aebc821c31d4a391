package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
)

// OperatorRepository holds the single operator profile.
type OperatorRepository interface {
	Get(ctx context.Context) (*domain.OperatorProfile, error)
	Update(ctx context.Context, mutate func(p *domain.OperatorProfile)) (*domain.OperatorProfile, error)
}

type operatorRepository struct {
	mu      sync.RWMutex
	profile domain.OperatorProfile
}

// NewOperatorRepository stores a copy of the seed profile.
func NewOperatorRepository(seed domain.OperatorProfile) OperatorRepository {
	return &operatorRepository{profile: seed.Clone()}
}

func (r *operatorRepository) Get(ctx context.Context) (*domain.OperatorProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile := r.profile.Clone()
	return &profile, nil
}

func (r *operatorRepository) Update(ctx context.Context, mutate func(p *domain.OperatorProfile)) (*domain.OperatorProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	draft := r.profile.Clone()
	mutate(&draft)
	r.profile = draft
	profile := draft.Clone()
	return &profile, nil
}
