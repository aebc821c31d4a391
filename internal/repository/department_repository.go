package repository

import (
	"context"
	"fmt"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
)

// DepartmentRepository exposes the fixed department catalog.
type DepartmentRepository interface {
	List(ctx context.Context) ([]domain.Department, error)
	GetByID(ctx context.Context, id string) (*domain.Department, error)
}

type departmentRepository struct {
	order []string
	byID  map[string]domain.Department
}

// NewDepartmentRepository builds a read-only catalog. It is never mutated after construction.
func NewDepartmentRepository(catalog []domain.Department) (DepartmentRepository, error) {
	repo := &departmentRepository{
		order: make([]string, 0, len(catalog)),
		byID:  make(map[string]domain.Department, len(catalog)),
	}
	for _, dept := range catalog {
		if _, exists := repo.byID[dept.ID]; exists {
			return nil, fmt.Errorf("duplicate department id %q", dept.ID)
		}
		repo.byID[dept.ID] = dept
		repo.order = append(repo.order, dept.ID)
	}
	return repo, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make([]domain.Department, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dept, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &dept, nil
}
