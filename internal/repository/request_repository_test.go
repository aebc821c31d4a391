package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
)

func seedRequests() []domain.ServiceRequest {
	heating := "heating"
	return []domain.ServiceRequest{
		{ID: "1", Category: domain.CategoryLighting, Priority: domain.RequestPriorityHigh, Status: domain.RequestStatusNew, RewardPoints: 50},
		{ID: "2", Category: domain.CategoryTraffic, Priority: domain.RequestPriorityUrgent, Status: domain.RequestStatusNew, RewardPoints: 100},
		{ID: "3", Category: domain.CategoryHeating, Priority: domain.RequestPriorityUrgent, Status: domain.RequestStatusInProgress, DepartmentID: &heating, RewardPoints: 80},
	}
}

func TestNewRequestRepository_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewRequestRepository([]domain.ServiceRequest{{ID: "1"}, {ID: "1"}})
	require.Error(t, err)
}

func TestRequestRepository_ListPreservesOrderAndCopies(t *testing.T) {
	ctx := context.Background()
	repo, err := NewRequestRepository(seedRequests())
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})

	list[0].Status = domain.RequestStatusCompleted
	*list[2].DepartmentID = "water"

	again, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusNew, again.Status)
	third, err := repo.GetByID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "heating", *third.DepartmentID)
}

func TestRequestRepository_GetByIDMissing(t *testing.T) {
	repo, err := NewRequestRepository(seedRequests())
	require.NoError(t, err)
	_, err = repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestRepository_UpdateAbortsOnError(t *testing.T) {
	ctx := context.Background()
	repo, err := NewRequestRepository(seedRequests())
	require.NoError(t, err)

	sentinel := errors.New("rejected")
	_, err = repo.Update(ctx, "1", func(req *domain.ServiceRequest) error {
		req.Status = domain.RequestStatusCompleted
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	req, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusNew, req.Status)
}

func TestRequestRepository_UpdateKeepsImmutableFields(t *testing.T) {
	ctx := context.Background()
	repo, err := NewRequestRepository(seedRequests())
	require.NoError(t, err)

	updated, err := repo.Update(ctx, "2", func(req *domain.ServiceRequest) error {
		req.Status = domain.RequestStatusInProgress
		req.RewardPoints = 1
		req.Priority = domain.RequestPriorityLow
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusInProgress, updated.Status)
	assert.Equal(t, 100, updated.RewardPoints)
	assert.Equal(t, domain.RequestPriorityUrgent, updated.Priority)

	_, err = repo.Update(ctx, "missing", func(*domain.ServiceRequest) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

// fiber hands out zero-copy strings over buffers it reuses between requests.
func TestRequestRepository_UpdateWithReusedBufferIDs(t *testing.T) {
	ctx := context.Background()
	repo, err := NewRequestRepository(seedRequests())
	require.NoError(t, err)

	idBuf := []byte("1")
	deptBuf := []byte("water")
	id := unsafe.String(&idBuf[0], len(idBuf))
	dept := unsafe.String(&deptBuf[0], len(deptBuf))

	_, err = repo.Update(ctx, id, func(req *domain.ServiceRequest) error {
		req.Status = domain.RequestStatusAssigned
		req.DepartmentID = &dept
		return nil
	})
	require.NoError(t, err)

	copy(idBuf, "9")
	copy(deptBuf, "xxxxx")

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, domain.RequestStatusAssigned, all[0].Status)
	require.NotNil(t, all[0].DepartmentID)
	assert.Equal(t, "water", *all[0].DepartmentID)

	water := "water"
	inWater, err := repo.ListWithFilter(ctx, RequestFilter{DepartmentID: &water})
	require.NoError(t, err)
	assert.Len(t, inWater, 1)

	req, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusAssigned, req.Status)
}

func TestRequestRepository_ListWithFilter(t *testing.T) {
	ctx := context.Background()
	repo, err := NewRequestRepository(seedRequests())
	require.NoError(t, err)

	byStatus, err := repo.ListWithFilter(ctx, RequestFilter{Statuses: []domain.RequestStatus{domain.RequestStatusNew}})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	dept := "heating"
	byDept, err := repo.ListWithFilter(ctx, RequestFilter{DepartmentID: &dept})
	require.NoError(t, err)
	require.Len(t, byDept, 1)
	assert.Equal(t, "3", byDept[0].ID)

	byCategory, err := repo.ListWithFilter(ctx, RequestFilter{Categories: []domain.Category{domain.CategoryTraffic}})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "2", byCategory[0].ID)
}

func TestRequestRepository_ConcurrentUpdatesSerialize(t *testing.T) {
	ctx := context.Background()
	repo, err := NewRequestRepository(seedRequests())
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "1", func(req *domain.ServiceRequest) error {
				if req.Status != domain.RequestStatusNew {
					return errors.New("already taken")
				}
				req.Status = domain.RequestStatusInProgress
				return nil
			})
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestRequestRepository_CancelledContext(t *testing.T) {
	repo, err := NewRequestRepository(seedRequests())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDepartmentRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := NewDepartmentRepository([]domain.Department{{ID: "water", Name: "Водоканал"}, {ID: "heating"}})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "water", list[0].ID)

	dept, err := repo.GetByID(ctx, "water")
	require.NoError(t, err)
	assert.Equal(t, "Водоканал", dept.Name)

	_, err = repo.GetByID(ctx, "emergency")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewDepartmentRepository([]domain.Department{{ID: "a"}, {ID: "a"}})
	assert.Error(t, err)
}

func TestOperatorRepository_UpdateIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewOperatorRepository(domain.OperatorProfile{Name: "op", Reputation: 10})

	updated, err := repo.Update(ctx, func(p *domain.OperatorProfile) { p.Reputation += 5 })
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Reputation)

	updated.Reputation = 0
	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Reputation)
}
