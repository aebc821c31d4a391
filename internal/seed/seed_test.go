package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
)

func TestFixtureLoader_EmbeddedDataset(t *testing.T) {
	ds, err := NewFixtureLoader(domain.DefaultPointsPerLevel).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Departments, 6)
	assert.Equal(t, "lighting", ds.Departments[0].ID)
	assert.Equal(t, "emergency", ds.Departments[5].ID)
	assert.Equal(t, 92, ds.Departments[5].Efficiency)

	require.Len(t, ds.Requests, 5)
	counters := domain.CountStatuses(ds.Requests)
	assert.Equal(t, domain.StatusCounters{New: 3, InProgress: 1, Completed: 1, Total: 5}, counters)

	heat := ds.Requests[2]
	assert.Equal(t, domain.CategoryHeating, heat.Category, "heat alias normalized")
	require.NotNil(t, heat.DepartmentID)
	assert.Equal(t, "heating", *heat.DepartmentID)
	assert.Equal(t, 4, heat.Difficulty)
	assert.InDelta(t, 4.5, heat.CitizenRating, 0.001)

	for _, req := range ds.Requests {
		if req.Status == domain.RequestStatusNew {
			assert.Nil(t, req.DepartmentID, "request %s", req.ID)
		}
	}

	assert.Equal(t, 8, ds.Operator.Level)
	assert.Equal(t, 65, ds.Operator.LevelProgressPercent)
	assert.Equal(t, 127, ds.Operator.CompletedRequestCount)
	require.Len(t, ds.Operator.Badges, 4)
	assert.False(t, ds.Operator.Badges[3].Earned)
}

func TestFixtureLoader_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad json":             `{`,
		"unknown field":        `{"departments": [], "requests": [], "operator": {}, "extra": 1}`,
		"duplicate request":    `{"requests": [{"id":"1","category":"water","priority":"low"},{"id":"1","category":"water","priority":"low"}]}`,
		"unknown category":     `{"requests": [{"id":"1","category":"emergency","priority":"low"}]}`,
		"unknown priority":     `{"requests": [{"id":"1","category":"water","priority":"critical"}]}`,
		"unknown status":       `{"requests": [{"id":"1","category":"water","priority":"low","status":"closed"}]}`,
		"unknown department":   `{"requests": [{"id":"1","category":"water","priority":"low","status":"assigned","department":"x"}]}`,
		"new with department":  `{"departments":[{"id":"water","efficiency":1}],"requests": [{"id":"1","category":"water","priority":"low","status":"new","department":"water"}]}`,
		"assigned without":     `{"requests": [{"id":"1","category":"water","priority":"low","status":"assigned"}]}`,
		"difficulty range":     `{"requests": [{"id":"1","category":"water","priority":"low","difficulty":9}]}`,
		"rating range":         `{"requests": [{"id":"1","category":"water","priority":"low","citizen_rating":5.5}]}`,
		"efficiency range":     `{"departments":[{"id":"water","efficiency":101}]}`,
		"duplicate department": `{"departments":[{"id":"water"},{"id":"water"}]}`,
		"negative reputation":  `{"operator":{"reputation":-1}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewFixtureLoaderFromBytes([]byte(body), 0).Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestFixtureLoader_DefaultsStatusToNew(t *testing.T) {
	body := `{"requests": [{"id":"1","category":"Water","priority":"LOW"}]}`
	ds, err := NewFixtureLoaderFromBytes([]byte(body), 0).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Requests, 1)
	assert.Equal(t, domain.RequestStatusNew, ds.Requests[0].Status)
	assert.Equal(t, domain.RequestPriorityLow, ds.Requests[0].Priority)
	assert.Equal(t, 1, ds.Operator.Level)
}

type failingQuerier struct {
	queries []string
}

var errQuery = errors.New("query failed")

func (f *failingQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	return nil, errQuery
}

func (f *failingQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	return nil
}

func TestPostgresLoader_PropagatesQueryErrors(t *testing.T) {
	q := &failingQuerier{}
	_, err := NewPostgresLoader(q, 1, 0).Load(context.Background())
	require.ErrorIs(t, err, errQuery)
	require.Len(t, q.queries, 1)
	assert.Contains(t, q.queries[0], "FROM departments")
	assert.Contains(t, q.queries[0], "ORDER BY sort_order, id")
}

func TestPostgresLoader_NoDatabase(t *testing.T) {
	_, err := NewPostgresLoader(nil, 1, 0).Load(context.Background())
	assert.Error(t, err)
}

func TestPostgresLoader_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	water := "water"
	mock.ExpectQuery(`FROM departments`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "icon", "color", "available_teams", "efficiency", "response_time_target"}).
			AddRow("water", "Водоканал", "", "Droplets", "bg-blue-500", 10, 82, "1-3 часа").
			AddRow("elevator", "Лифтовое хозяйство", "", "ArrowUpDown", "bg-purple-500", 6, 88, "45 мин"))
	mock.ExpectQuery(`FROM service_requests`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "category", "title", "address", "priority", "status", "department_id",
			"submitted_at", "reward_points", "estimated_duration", "difficulty", "citizen_rating"}).
			AddRow("4", "water", "Протечка водопровода", "ул. Арбат, д. 28", "medium", "new", (*string)(nil), "08:30", 40, "", 0, 0.0).
			AddRow("6", "water", "Нет воды", "ул. Арбат, д. 30", "high", "assigned", &water, "09:00", 70, "1 час", 2, 4.1))
	mock.ExpectQuery(`FROM operator_profiles`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"name", "title", "reputation", "completed_requests", "quality_rating_percent", "streak_days"}).
			AddRow("Диспетчер Москвы", "Главный диспетчер Москвы", 2450, 127, 95, 12))
	mock.ExpectQuery(`FROM operator_badges`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "icon", "earned"}).
			AddRow("city-hero", "Герой Города", "🏆", true))

	ds, err := NewPostgresLoader(mock, 1, domain.DefaultPointsPerLevel).Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, ds.Departments, 2)
	require.Len(t, ds.Requests, 2)
	assert.Nil(t, ds.Requests[0].DepartmentID)
	require.NotNil(t, ds.Requests[1].DepartmentID)
	assert.Equal(t, "water", *ds.Requests[1].DepartmentID)
	assert.Equal(t, domain.RequestStatusAssigned, ds.Requests[1].Status)
	assert.Equal(t, 8, ds.Operator.Level)
	require.Len(t, ds.Operator.Badges, 1)
	assert.True(t, ds.Operator.Badges[0].Earned)
}
