package dto

import (
	"github.com/spec-kit/gkh-dispatch/internal/domain"
	"github.com/spec-kit/gkh-dispatch/internal/service"
)

// BadgeResponse is an operator achievement.
type BadgeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Earned bool   `json:"earned"`
}

// OperatorResponse is the gamified operator profile.
type OperatorResponse struct {
	Name                  string          `json:"name"`
	Title                 string          `json:"title"`
	Level                 int             `json:"level"`
	Reputation            int             `json:"reputation"`
	CompletedRequestCount int             `json:"completed_requests"`
	LevelProgressPercent  int             `json:"level_progress_percent"`
	QualityRatingPercent  int             `json:"quality_rating_percent"`
	StreakDays            int             `json:"streak_days"`
	Badges                []BadgeResponse `json:"badges"`
}

// DashboardResponse is the full dashboard snapshot.
type DashboardResponse struct {
	Requests    []RequestResponse    `json:"requests"`
	Counters    CountersResponse     `json:"counters"`
	Focused     *RequestResponse     `json:"focused"`
	Departments []DepartmentResponse `json:"departments"`
	Operator    OperatorResponse     `json:"operator"`
	Categories  []CategoryResponse   `json:"categories"`
}

// NewOperatorResponse maps the operator profile.
func NewOperatorResponse(p domain.OperatorProfile) OperatorResponse {
	badges := make([]BadgeResponse, 0, len(p.Badges))
	for _, b := range p.Badges {
		badges = append(badges, BadgeResponse{ID: b.ID, Name: b.Name, Icon: b.Icon, Earned: b.Earned})
	}
	return OperatorResponse{
		Name:                  p.Name,
		Title:                 p.Title,
		Level:                 p.Level,
		Reputation:            p.Reputation,
		CompletedRequestCount: p.CompletedRequestCount,
		LevelProgressPercent:  p.LevelProgressPercent,
		QualityRatingPercent:  p.QualityRatingPercent,
		StreakDays:            p.StreakDays,
		Badges:                badges,
	}
}

// NewFocusedResponse maps an optional focused request.
func NewFocusedResponse(req *domain.ServiceRequest) *RequestResponse {
	if req == nil {
		return nil
	}
	resp := NewRequestResponse(*req)
	return &resp
}

// NewDashboardResponse maps a service snapshot.
func NewDashboardResponse(snap *service.Snapshot) DashboardResponse {
	return DashboardResponse{
		Requests:    NewRequestList(snap.Requests),
		Counters:    NewCountersResponse(snap.Counters),
		Focused:     NewFocusedResponse(snap.Focused),
		Departments: NewDepartmentList(snap.Departments),
		Operator:    NewOperatorResponse(snap.Profile),
		Categories:  NewCategoryList(snap.Categories),
	}
}
