// Package seed loads the startup dataset: department catalog, sample
// requests and the operator profile. Sources are read once; the running
// service never writes back to them.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spec-kit/gkh-dispatch/internal/domain"
)

// Loader supplies the startup dataset.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Dataset is the validated seed handed to the repositories.
type Dataset struct {
	Departments []domain.Department
	Requests    []domain.ServiceRequest
	Operator    domain.OperatorProfile
}

type departmentRecord struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Icon               string `json:"icon"`
	Color              string `json:"color"`
	AvailableTeams     int    `json:"available_teams"`
	Efficiency         int    `json:"efficiency"`
	ResponseTimeTarget string `json:"response_time_target"`
}

type requestRecord struct {
	ID                string  `json:"id"`
	Category          string  `json:"category"`
	Title             string  `json:"title"`
	Address           string  `json:"address"`
	Priority          string  `json:"priority"`
	Status            string  `json:"status"`
	Department        *string `json:"department"`
	SubmittedAt       string  `json:"submitted_at"`
	RewardPoints      int     `json:"reward_points"`
	EstimatedDuration string  `json:"estimated_duration"`
	Difficulty        int     `json:"difficulty"`
	CitizenRating     float64 `json:"citizen_rating"`
}

type badgeRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Earned bool   `json:"earned"`
}

type operatorRecord struct {
	Name                 string        `json:"name"`
	Title                string        `json:"title"`
	Reputation           int           `json:"reputation"`
	CompletedRequests    int           `json:"completed_requests"`
	QualityRatingPercent int           `json:"quality_rating_percent"`
	StreakDays           int           `json:"streak_days"`
	Badges               []badgeRecord `json:"badges"`
}

type document struct {
	Departments []departmentRecord `json:"departments"`
	Requests    []requestRecord    `json:"requests"`
	Operator    operatorRecord     `json:"operator"`
}

// build converts raw records into a validated Dataset.
func (doc document) build(pointsPerLevel int) (*Dataset, error) {
	ds := &Dataset{
		Departments: make([]domain.Department, 0, len(doc.Departments)),
		Requests:    make([]domain.ServiceRequest, 0, len(doc.Requests)),
	}
	var errs []error

	deptIDs := make(map[string]struct{}, len(doc.Departments))
	for _, rec := range doc.Departments {
		if strings.TrimSpace(rec.ID) == "" {
			errs = append(errs, errors.New("department with empty id"))
			continue
		}
		if _, dup := deptIDs[rec.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate department %q", rec.ID))
			continue
		}
		if rec.Efficiency < 0 || rec.Efficiency > 100 {
			errs = append(errs, fmt.Errorf("department %q: efficiency %d out of range", rec.ID, rec.Efficiency))
		}
		if rec.AvailableTeams < 0 {
			errs = append(errs, fmt.Errorf("department %q: negative available teams", rec.ID))
		}
		deptIDs[rec.ID] = struct{}{}
		ds.Departments = append(ds.Departments, domain.Department{
			ID:                 rec.ID,
			Name:               rec.Name,
			Description:        rec.Description,
			Icon:               rec.Icon,
			Color:              rec.Color,
			AvailableTeams:     rec.AvailableTeams,
			Efficiency:         rec.Efficiency,
			ResponseTimeTarget: rec.ResponseTimeTarget,
		})
	}

	reqIDs := make(map[string]struct{}, len(doc.Requests))
	for _, rec := range doc.Requests {
		req, err := rec.toDomain(deptIDs)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := reqIDs[req.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate request %q", req.ID))
			continue
		}
		reqIDs[req.ID] = struct{}{}
		ds.Requests = append(ds.Requests, req)
	}

	op := doc.Operator
	if op.Reputation < 0 || op.CompletedRequests < 0 {
		errs = append(errs, errors.New("operator counters must be non-negative"))
	}
	ds.Operator = domain.OperatorProfile{
		Name:                  op.Name,
		Title:                 op.Title,
		Reputation:            op.Reputation,
		CompletedRequestCount: op.CompletedRequests,
		QualityRatingPercent:  op.QualityRatingPercent,
		StreakDays:            op.StreakDays,
	}
	for _, b := range op.Badges {
		ds.Operator.Badges = append(ds.Operator.Badges, domain.Badge{ID: b.ID, Name: b.Name, Icon: b.Icon, Earned: b.Earned})
	}
	ds.Operator.Recompute(pointsPerLevel)

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return ds, nil
}

func (rec requestRecord) toDomain(departments map[string]struct{}) (domain.ServiceRequest, error) {
	if strings.TrimSpace(rec.ID) == "" {
		return domain.ServiceRequest{}, errors.New("request with empty id")
	}
	category, ok := domain.ParseCategory(rec.Category)
	if !ok {
		return domain.ServiceRequest{}, fmt.Errorf("request %q: unknown category %q", rec.ID, rec.Category)
	}
	priority := domain.RequestPriority(strings.ToLower(rec.Priority))
	if !priority.Valid() {
		return domain.ServiceRequest{}, fmt.Errorf("request %q: unknown priority %q", rec.ID, rec.Priority)
	}
	status := domain.RequestStatus(strings.ToLower(rec.Status))
	if status == "" {
		status = domain.RequestStatusNew
	}
	if !status.Valid() {
		return domain.ServiceRequest{}, fmt.Errorf("request %q: unknown status %q", rec.ID, rec.Status)
	}
	if rec.RewardPoints < 0 {
		return domain.ServiceRequest{}, fmt.Errorf("request %q: negative reward points", rec.ID)
	}
	if rec.Difficulty != 0 && (rec.Difficulty < 1 || rec.Difficulty > 5) {
		return domain.ServiceRequest{}, fmt.Errorf("request %q: difficulty %d out of range", rec.ID, rec.Difficulty)
	}
	if rec.CitizenRating < 0 || rec.CitizenRating > 5 {
		return domain.ServiceRequest{}, fmt.Errorf("request %q: citizen rating %.1f out of range", rec.ID, rec.CitizenRating)
	}

	var department *string
	if rec.Department != nil && *rec.Department != "" {
		if _, known := departments[*rec.Department]; !known {
			return domain.ServiceRequest{}, fmt.Errorf("request %q: unknown department %q", rec.ID, *rec.Department)
		}
		if status == domain.RequestStatusNew {
			return domain.ServiceRequest{}, fmt.Errorf("request %q: new requests cannot carry a department", rec.ID)
		}
		dept := *rec.Department
		department = &dept
	} else if status == domain.RequestStatusAssigned {
		return domain.ServiceRequest{}, fmt.Errorf("request %q: assigned without department", rec.ID)
	}

	return domain.ServiceRequest{
		ID:                rec.ID,
		Category:          category,
		Title:             rec.Title,
		Address:           rec.Address,
		Priority:          priority,
		Status:            status,
		DepartmentID:      department,
		SubmittedAt:       rec.SubmittedAt,
		RewardPoints:      rec.RewardPoints,
		EstimatedDuration: rec.EstimatedDuration,
		Difficulty:        rec.Difficulty,
		CitizenRating:     rec.CitizenRating,
	}, nil
}
