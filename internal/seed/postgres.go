package seed

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pgxpool.Pool the loader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresLoader reads the seed tables. It only issues SELECTs.
type PostgresLoader struct {
	db             Querier
	operatorID     int
	pointsPerLevel int
	builder        sq.StatementBuilderType
}

// NewPostgresLoader builds a loader for the operator with the given id.
func NewPostgresLoader(db Querier, operatorID, pointsPerLevel int) *PostgresLoader {
	return &PostgresLoader{
		db:             db,
		operatorID:     operatorID,
		pointsPerLevel: pointsPerLevel,
		builder:        sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Load reads departments, requests and the operator profile.
func (l *PostgresLoader) Load(ctx context.Context) (*Dataset, error) {
	if l.db == nil {
		return nil, errors.New("postgres seed loader: no database")
	}
	var (
		doc document
		err error
	)
	if doc.Departments, err = l.departments(ctx); err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	if doc.Requests, err = l.requests(ctx); err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}
	if doc.Operator, err = l.operator(ctx); err != nil {
		return nil, fmt.Errorf("load operator: %w", err)
	}
	return doc.build(l.pointsPerLevel)
}

func (l *PostgresLoader) departments(ctx context.Context) ([]departmentRecord, error) {
	query, args, err := l.builder.
		Select("id", "name", "COALESCE(description, '')", "COALESCE(icon, '')", "COALESCE(color, '')",
			"available_teams", "efficiency", "COALESCE(response_time_target, '')").
		From("departments").
		OrderBy("sort_order", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := l.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []departmentRecord
	for rows.Next() {
		var rec departmentRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.Icon, &rec.Color,
			&rec.AvailableTeams, &rec.Efficiency, &rec.ResponseTimeTarget); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (l *PostgresLoader) requests(ctx context.Context) ([]requestRecord, error) {
	query, args, err := l.builder.
		Select("id", "category", "title", "address", "priority", "status", "department_id",
			"COALESCE(submitted_at, '')", "reward_points", "COALESCE(estimated_duration, '')",
			"COALESCE(difficulty, 0)", "COALESCE(citizen_rating, 0)").
		From("service_requests").
		OrderBy("sort_order", "id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := l.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []requestRecord
	for rows.Next() {
		var rec requestRecord
		if err := rows.Scan(&rec.ID, &rec.Category, &rec.Title, &rec.Address, &rec.Priority, &rec.Status,
			&rec.Department, &rec.SubmittedAt, &rec.RewardPoints, &rec.EstimatedDuration,
			&rec.Difficulty, &rec.CitizenRating); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func (l *PostgresLoader) operator(ctx context.Context) (operatorRecord, error) {
	var rec operatorRecord
	query, args, err := l.builder.
		Select("name", "COALESCE(title, '')", "reputation", "completed_requests",
			"quality_rating_percent", "streak_days").
		From("operator_profiles").
		Where(sq.Eq{"id": l.operatorID}).
		ToSql()
	if err != nil {
		return rec, err
	}
	if err := l.db.QueryRow(ctx, query, args...).Scan(&rec.Name, &rec.Title, &rec.Reputation,
		&rec.CompletedRequests, &rec.QualityRatingPercent, &rec.StreakDays); err != nil {
		return rec, err
	}

	query, args, err = l.builder.
		Select("id", "name", "COALESCE(icon, '')", "earned").
		From("operator_badges").
		Where(sq.Eq{"operator_id": l.operatorID}).
		OrderBy("sort_order", "id").
		ToSql()
	if err != nil {
		return rec, err
	}
	rows, err := l.db.Query(ctx, query, args...)
	if err != nil {
		return rec, err
	}
	defer rows.Close()
	for rows.Next() {
		var b badgeRecord
		if err := rows.Scan(&b.ID, &b.Name, &b.Icon, &b.Earned); err != nil {
			return rec, err
		}
		rec.Badges = append(rec.Badges, b)
	}
	return rec, rows.Err()
}
