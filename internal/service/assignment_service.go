package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
	"github.com/spec-kit/gkh-dispatch/internal/events"
	"github.com/spec-kit/gkh-dispatch/internal/repository"
	apperrors "github.com/spec-kit/gkh-dispatch/pkg/util/errorutil"
)

// AssignmentService routes requests to departments and derives department views.
type AssignmentService struct {
	requests    repository.RequestRepository
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	RequestRepo    repository.RequestRepository
	DepartmentRepo repository.DepartmentRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		requests:    deps.RequestRepo,
		departments: deps.DepartmentRepo,
		dispatcher:  deps.Dispatcher,
		logger:      nopLogger(deps.Logger),
	}
}

// AssignToDepartment routes a new request to a catalog department.
// An unknown department is rejected before the request is looked up.
func (s *AssignmentService) AssignToDepartment(ctx context.Context, requestID, departmentID string) (*domain.ServiceRequest, error) {
	if _, ok := s.DepartmentByID(ctx, departmentID); !ok {
		s.logger.Debug("assign rejected: unknown department",
			zap.String("request_id", requestID),
			zap.String("department_id", departmentID))
		return nil, apperrors.NewUnknownDepartment(departmentID)
	}

	req, err := s.requests.Update(ctx, requestID, func(req *domain.ServiceRequest) error {
		if req.Status != domain.RequestStatusNew || !domain.CanTransition(req.Status, domain.RequestStatusAssigned) {
			details := map[string]any{
				"request_id": requestID,
				"status":     req.Status,
			}
			if req.DepartmentID != nil {
				details["department_id"] = *req.DepartmentID
			}
			return apperrors.NewInvalidTransition("request already routed", details)
		}
		dept := departmentID
		req.Status = domain.RequestStatusAssigned
		req.DepartmentID = &dept
		return nil
	})
	if err != nil {
		s.logger.Debug("assign rejected",
			zap.String("request_id", requestID),
			zap.String("department_id", departmentID),
			zap.Error(err))
		return nil, requestLookupError(err, requestID)
	}

	s.logger.Info("request assigned",
		zap.String("request_id", req.ID),
		zap.String("department_id", departmentID))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventRequestAssigned,
		RequestID: req.ID,
		Payload: events.RequestAssignedPayload{
			DepartmentID: departmentID,
			OldStatus:    domain.RequestStatusNew,
			NewStatus:    req.Status,
		},
	})
	return req, nil
}

// DepartmentByID resolves a catalog entry; ok is false when absent.
func (s *AssignmentService) DepartmentByID(ctx context.Context, departmentID string) (*domain.Department, bool) {
	dept, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("department lookup failed", zap.String("department_id", departmentID), zap.Error(err))
		}
		return nil, false
	}
	return dept, true
}

// ListDepartments returns the catalog in seed order.
func (s *AssignmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// RequestsForDepartment lists requests routed to departmentID in store order.
func (s *AssignmentService) RequestsForDepartment(ctx context.Context, departmentID string) ([]domain.ServiceRequest, error) {
	reqs, err := s.requests.ListWithFilter(ctx, repository.RequestFilter{DepartmentID: &departmentID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reqs, nil
}

// ActiveRequestCount counts routed requests that are not completed.
func (s *AssignmentService) ActiveRequestCount(ctx context.Context, departmentID string) (int, error) {
	reqs, err := s.RequestsForDepartment(ctx, departmentID)
	if err != nil {
		return 0, err
	}
	return countActive(reqs), nil
}

// DepartmentStats derives per-department aggregates for the whole catalog.
func (s *AssignmentService) DepartmentStats(ctx context.Context) ([]domain.DepartmentStats, error) {
	depts, err := s.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	reqs, err := s.requests.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return aggregateDepartments(depts, reqs), nil
}

// DepartmentStatsByID derives aggregates for one department.
func (s *AssignmentService) DepartmentStatsByID(ctx context.Context, departmentID string) (*domain.DepartmentStats, error) {
	dept, ok := s.DepartmentByID(ctx, departmentID)
	if !ok {
		return nil, apperrors.NewNotFound("department", map[string]any{"department_id": departmentID})
	}
	reqs, err := s.RequestsForDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return &domain.DepartmentStats{
		Department:     *dept,
		TotalRequests:  len(reqs),
		ActiveRequests: countActive(reqs),
	}, nil
}

func aggregateDepartments(depts []domain.Department, reqs []domain.ServiceRequest) []domain.DepartmentStats {
	index := make(map[string]int, len(depts))
	stats := make([]domain.DepartmentStats, len(depts))
	for i, dept := range depts {
		index[dept.ID] = i
		stats[i].Department = dept
	}
	for _, req := range reqs {
		if req.DepartmentID == nil {
			continue
		}
		i, ok := index[*req.DepartmentID]
		if !ok {
			continue
		}
		stats[i].TotalRequests++
		if req.Status.Active() {
			stats[i].ActiveRequests++
		}
	}
	return stats
}

func countActive(reqs []domain.ServiceRequest) int {
	active := 0
	for _, req := range reqs {
		if req.Status.Active() {
			active++
		}
	}
	return active
}
