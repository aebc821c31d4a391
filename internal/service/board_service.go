package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
	"github.com/spec-kit/gkh-dispatch/internal/events"
	"github.com/spec-kit/gkh-dispatch/internal/repository"
	apperrors "github.com/spec-kit/gkh-dispatch/pkg/util/errorutil"
)

// BoardService drives the request lifecycle seen on the operator dashboard.
type BoardService struct {
	requests   repository.RequestRepository
	profiles   *ProfileService
	dispatcher events.Dispatcher
	logger     *zap.Logger

	focusMu sync.RWMutex
	focused *string
}

// BoardDependencies bundles collaborators for the board.
type BoardDependencies struct {
	RequestRepo repository.RequestRepository
	Profiles    *ProfileService
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// RequestListFilter describes dashboard listing filters.
type RequestListFilter struct {
	Statuses     []domain.RequestStatus
	Categories   []domain.Category
	DepartmentID *string
}

// NewBoardService constructs the service.
func NewBoardService(deps BoardDependencies) *BoardService {
	return &BoardService{
		requests:   deps.RequestRepo,
		profiles:   deps.Profiles,
		dispatcher: deps.Dispatcher,
		logger:     nopLogger(deps.Logger),
	}
}

// Accept moves a new or assigned request to in_progress.
func (s *BoardService) Accept(ctx context.Context, requestID string) (*domain.ServiceRequest, error) {
	var oldStatus domain.RequestStatus
	req, err := s.requests.Update(ctx, requestID, func(req *domain.ServiceRequest) error {
		oldStatus = req.Status
		if !domain.CanTransition(req.Status, domain.RequestStatusInProgress) {
			return apperrors.NewInvalidTransition("request cannot be accepted in current status", map[string]any{
				"request_id": requestID,
				"status":     req.Status,
			})
		}
		req.Status = domain.RequestStatusInProgress
		return nil
	})
	if err != nil {
		s.logRejected("accept", requestID, err)
		return nil, requestLookupError(err, requestID)
	}
	s.logger.Info("request accepted", zap.String("request_id", req.ID), zap.String("old_status", string(oldStatus)))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventRequestAccepted,
		RequestID: req.ID,
		Payload: events.StatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: req.Status,
		},
	})
	return req, nil
}

// Complete moves an in_progress request to completed and credits the operator.
func (s *BoardService) Complete(ctx context.Context, requestID string) (*domain.ServiceRequest, error) {
	req, err := s.requests.Update(ctx, requestID, func(req *domain.ServiceRequest) error {
		if !domain.CanTransition(req.Status, domain.RequestStatusCompleted) {
			return apperrors.NewInvalidTransition("request cannot be completed in current status", map[string]any{
				"request_id": requestID,
				"status":     req.Status,
			})
		}
		req.Status = domain.RequestStatusCompleted
		return nil
	})
	if err != nil {
		s.logRejected("complete", requestID, err)
		return nil, requestLookupError(err, requestID)
	}
	s.logger.Info("request completed", zap.String("request_id", req.ID), zap.Int("reward_points", req.RewardPoints))
	if s.profiles != nil {
		// The status change is committed; the award must follow even if ctx expires now.
		if _, err := s.profiles.AwardCompletion(context.WithoutCancel(ctx), *req); err != nil {
			s.logger.Error("award completion", zap.String("request_id", req.ID), zap.Error(err))
		}
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventRequestCompleted,
		RequestID: req.ID,
		Payload: events.StatusChangedPayload{
			OldStatus:    domain.RequestStatusInProgress,
			NewStatus:    req.Status,
			RewardPoints: req.RewardPoints,
		},
	})
	return req, nil
}

// SetFocus focuses requestID, or clears focus when requestID is nil.
// Focusing the already focused request is a no-op.
func (s *BoardService) SetFocus(ctx context.Context, requestID *string) error {
	if requestID != nil {
		if _, err := s.requests.GetByID(ctx, *requestID); err != nil {
			return requestLookupError(err, *requestID)
		}
	}

	s.focusMu.Lock()
	if sameFocus(s.focused, requestID) {
		s.focusMu.Unlock()
		return nil
	}
	if requestID == nil {
		s.focused = nil
	} else {
		id := *requestID
		s.focused = &id
	}
	s.focusMu.Unlock()

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventFocusChanged,
		RequestID: derefString(requestID),
		Payload:   events.FocusChangedPayload{RequestID: requestID},
	})
	return nil
}

// Focused returns the current state of the focused request, or nil.
func (s *BoardService) Focused(ctx context.Context) (*domain.ServiceRequest, error) {
	s.focusMu.RLock()
	focused := s.focused
	s.focusMu.RUnlock()
	if focused == nil {
		return nil, nil
	}
	req, err := s.requests.GetByID(ctx, *focused)
	if err != nil {
		return nil, requestLookupError(err, *focused)
	}
	return req, nil
}

// Counters tallies statuses over the whole collection.
func (s *BoardService) Counters(ctx context.Context) (domain.StatusCounters, error) {
	reqs, err := s.requests.List(ctx)
	if err != nil {
		return domain.StatusCounters{}, apperrors.MapError(err)
	}
	return domain.CountStatuses(reqs), nil
}

// ListRequests returns requests in seed order.
func (s *BoardService) ListRequests(ctx context.Context, filter RequestListFilter) ([]domain.ServiceRequest, error) {
	reqs, err := s.requests.ListWithFilter(ctx, repository.RequestFilter{
		Statuses:     filter.Statuses,
		Categories:   filter.Categories,
		DepartmentID: filter.DepartmentID,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reqs, nil
}

// GetRequest fetches one request.
func (s *BoardService) GetRequest(ctx context.Context, requestID string) (*domain.ServiceRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, requestLookupError(err, requestID)
	}
	return req, nil
}

func (s *BoardService) logRejected(command, requestID string, err error) {
	s.logger.Debug("command rejected",
		zap.String("command", command),
		zap.String("request_id", requestID),
		zap.Error(err))
}

func sameFocus(current, next *string) bool {
	if current == nil || next == nil {
		return current == nil && next == nil
	}
	return *current == *next
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
