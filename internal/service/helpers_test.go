package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
	"github.com/spec-kit/gkh-dispatch/internal/events"
	"github.com/spec-kit/gkh-dispatch/internal/repository"
)

type testEnv struct {
	requests    repository.RequestRepository
	board       *BoardService
	assignments *AssignmentService
	profiles    *ProfileService
	dashboard   *DashboardService
	recorder    *eventRecorder
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *eventRecorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func strPtr(s string) *string { return &s }

func testCatalog() []domain.Department {
	return []domain.Department{
		{ID: "lighting", Name: "Освещение", AvailableTeams: 12, Efficiency: 85},
		{ID: "traffic", Name: "ЦОДД (Светофоры)", AvailableTeams: 8, Efficiency: 95},
		{ID: "heating", Name: "Теплоснабжение", AvailableTeams: 15, Efficiency: 78},
		{ID: "water", Name: "Водоканал", AvailableTeams: 10, Efficiency: 82},
		{ID: "elevator", Name: "Лифтовое хозяйство", AvailableTeams: 6, Efficiency: 88},
		{ID: "emergency", Name: "Аварийная служба", AvailableTeams: 20, Efficiency: 92},
	}
}

func testRequests() []domain.ServiceRequest {
	return []domain.ServiceRequest{
		{ID: "R1", Category: domain.CategoryLighting, Priority: domain.RequestPriorityHigh, Status: domain.RequestStatusNew, RewardPoints: 50},
		{ID: "R2", Category: domain.CategoryTraffic, Priority: domain.RequestPriorityUrgent, Status: domain.RequestStatusNew, RewardPoints: 100},
		{ID: "R3", Category: domain.CategoryHeating, Priority: domain.RequestPriorityUrgent, Status: domain.RequestStatusInProgress, DepartmentID: strPtr("heating"), RewardPoints: 80},
		{ID: "R4", Category: domain.CategoryWater, Priority: domain.RequestPriorityMedium, Status: domain.RequestStatusNew, RewardPoints: 40},
		{ID: "R5", Category: domain.CategoryElevator, Priority: domain.RequestPriorityHigh, Status: domain.RequestStatusCompleted, DepartmentID: strPtr("elevator"), RewardPoints: 60},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	reqRepo, err := repository.NewRequestRepository(testRequests())
	require.NoError(t, err)
	deptRepo, err := repository.NewDepartmentRepository(testCatalog())
	require.NoError(t, err)
	opRepo := repository.NewOperatorRepository(domain.OperatorProfile{
		Name: "Диспетчер Москвы", Level: 8, Reputation: 2450, CompletedRequestCount: 127, LevelProgressPercent: 65,
	})

	recorder := &eventRecorder{}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range events.AllEventTypes() {
		dispatcher.Subscribe(et, recorder.handle)
	}

	profiles := NewProfileService(opRepo, domain.DefaultPointsPerLevel, nil)
	board := NewBoardService(BoardDependencies{RequestRepo: reqRepo, Profiles: profiles, Dispatcher: dispatcher})
	assignments := NewAssignmentService(AssignmentDependencies{RequestRepo: reqRepo, DepartmentRepo: deptRepo, Dispatcher: dispatcher})
	return &testEnv{
		requests:    reqRepo,
		board:       board,
		assignments: assignments,
		profiles:    profiles,
		dashboard:   NewDashboardService(board, assignments, profiles),
		recorder:    recorder,
	}
}

func (e *testEnv) status(t *testing.T, id string) domain.RequestStatus {
	t.Helper()
	req, err := e.requests.GetByID(context.Background(), id)
	require.NoError(t, err)
	return req.Status
}
