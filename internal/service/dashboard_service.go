package service

import (
	"context"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
)

// Snapshot is the read-only state handed to the display layer.
type Snapshot struct {
	Requests    []domain.ServiceRequest
	Departments []domain.DepartmentStats
	Profile     domain.OperatorProfile
	Counters    domain.StatusCounters
	Focused     *domain.ServiceRequest
	Categories  []domain.CategoryInfo
}

// DashboardService assembles snapshots from the board, assignment and profile services.
type DashboardService struct {
	board       *BoardService
	assignments *AssignmentService
	profiles    *ProfileService
}

// NewDashboardService constructs the service.
func NewDashboardService(board *BoardService, assignments *AssignmentService, profiles *ProfileService) *DashboardService {
	return &DashboardService{board: board, assignments: assignments, profiles: profiles}
}

// Snapshot reads the current state. Counters are derived from the same request list returned.
func (s *DashboardService) Snapshot(ctx context.Context) (*Snapshot, error) {
	reqs, err := s.board.ListRequests(ctx, RequestListFilter{})
	if err != nil {
		return nil, err
	}
	depts, err := s.assignments.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Profile(ctx)
	if err != nil {
		return nil, err
	}
	focused, err := s.board.Focused(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Requests:    reqs,
		Departments: aggregateDepartments(depts, reqs),
		Profile:     *profile,
		Counters:    domain.CountStatuses(reqs),
		Focused:     focused,
		Categories:  domain.Categories(),
	}, nil
}
