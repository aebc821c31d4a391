package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
)

// ErrNotFound is returned when a lookup misses.
var ErrNotFound = errors.New("not found")

// RequestFilter narrows request listings. Zero values match everything.
type RequestFilter struct {
	Statuses     []domain.RequestStatus
	Categories   []domain.Category
	DepartmentID *string
}

// RequestMutator edits a request inside a store transaction.
// Returning an error aborts the transaction and leaves the store unchanged.
type RequestMutator func(req *domain.ServiceRequest) error

// RequestRepository is the single shared request store.
type RequestRepository interface {
	List(ctx context.Context) ([]domain.ServiceRequest, error)
	ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	Update(ctx context.Context, id string, mutate RequestMutator) (*domain.ServiceRequest, error)
}

type requestRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*domain.ServiceRequest
}

// NewRequestRepository seeds an in-memory store, keeping the seed order.
func NewRequestRepository(seed []domain.ServiceRequest) (RequestRepository, error) {
	repo := &requestRepository{
		order: make([]string, 0, len(seed)),
		byID:  make(map[string]*domain.ServiceRequest, len(seed)),
	}
	for _, req := range seed {
		if _, exists := repo.byID[req.ID]; exists {
			return nil, fmt.Errorf("duplicate request id %q", req.ID)
		}
		clone := req.Clone()
		clone.ID = strings.Clone(req.ID)
		repo.byID[clone.ID] = &clone
		repo.order = append(repo.order, clone.ID)
	}
	return repo, nil
}

func (r *requestRepository) List(ctx context.Context) ([]domain.ServiceRequest, error) {
	return r.ListWithFilter(ctx, RequestFilter{})
}

func (r *requestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.ServiceRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.ServiceRequest, 0, len(r.order))
	for _, id := range r.order {
		req := r.byID[id]
		if !filter.matches(req) {
			continue
		}
		result = append(result, req.Clone())
	}
	return result, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := req.Clone()
	return &clone, nil
}

func (r *requestRepository) Update(ctx context.Context, id string, mutate RequestMutator) (*domain.ServiceRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	draft := current.Clone()
	if err := mutate(&draft); err != nil {
		return nil, err
	}
	// identity fields are immutable
	draft.ID = current.ID
	draft.Category = current.Category
	draft.Priority = current.Priority
	draft.RewardPoints = current.RewardPoints
	// callers may pass ids backed by reused buffers
	if draft.DepartmentID != nil {
		dept := strings.Clone(*draft.DepartmentID)
		draft.DepartmentID = &dept
	}

	r.byID[current.ID] = &draft
	result := draft.Clone()
	return &result, nil
}

func (f RequestFilter) matches(req *domain.ServiceRequest) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, req.Status) {
		return false
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, req.Category) {
		return false
	}
	if f.DepartmentID != nil && !req.InDepartment(*f.DepartmentID) {
		return false
	}
	return true
}

func containsStatus(list []domain.RequestStatus, status domain.RequestStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

func containsCategory(list []domain.Category, category domain.Category) bool {
	for _, c := range list {
		if c == category {
			return true
		}
	}
	return false
}
