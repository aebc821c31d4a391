package dto

import "github.com/spec-kit/gkh-dispatch/internal/domain"

// AssignRequest payload for POST /requests/:id/assign.
type AssignRequest struct {
	DepartmentID string `json:"department_id"`
}

// FocusRequest payload for PUT /focus. A null request_id clears the focus.
type FocusRequest struct {
	RequestID *string `json:"request_id"`
}

// RequestResponse represents one service request.
type RequestResponse struct {
	ID                string                 `json:"id"`
	Category          domain.Category        `json:"category"`
	CategoryLabel     string                 `json:"category_label"`
	Title             string                 `json:"title"`
	Address           string                 `json:"address"`
	Priority          domain.RequestPriority `json:"priority"`
	PriorityLabel     string                 `json:"priority_label"`
	Status            domain.RequestStatus   `json:"status"`
	StatusLabel       string                 `json:"status_label"`
	DepartmentID      *string                `json:"department_id"`
	SubmittedAt       string                 `json:"submitted_at"`
	RewardPoints      int                    `json:"reward_points"`
	EstimatedDuration string                 `json:"estimated_duration,omitempty"`
	Difficulty        int                    `json:"difficulty,omitempty"`
	CitizenRating     float64                `json:"citizen_rating,omitempty"`
}

// CountersResponse carries status tallies.
type CountersResponse struct {
	New        int `json:"new"`
	Assigned   int `json:"assigned"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

// CategoryResponse is one row of the category lookup table.
type CategoryResponse struct {
	ID                string `json:"id"`
	Label             string `json:"label"`
	Icon              string `json:"icon"`
	Color             string `json:"color"`
	DefaultDepartment string `json:"default_department"`
}

// NewRequestResponse maps a domain request.
func NewRequestResponse(req domain.ServiceRequest) RequestResponse {
	label := string(req.Category)
	if info, ok := req.Category.Info(); ok {
		label = info.Label
	}
	req = req.Clone()
	return RequestResponse{
		ID:                req.ID,
		Category:          req.Category,
		CategoryLabel:     label,
		Title:             req.Title,
		Address:           req.Address,
		Priority:          req.Priority,
		PriorityLabel:     req.Priority.Label(),
		Status:            req.Status,
		StatusLabel:       req.Status.Label(),
		DepartmentID:      req.DepartmentID,
		SubmittedAt:       req.SubmittedAt,
		RewardPoints:      req.RewardPoints,
		EstimatedDuration: req.EstimatedDuration,
		Difficulty:        req.Difficulty,
		CitizenRating:     req.CitizenRating,
	}
}

// NewRequestList maps a slice of requests, never returning nil.
func NewRequestList(reqs []domain.ServiceRequest) []RequestResponse {
	items := make([]RequestResponse, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, NewRequestResponse(req))
	}
	return items
}

// NewCountersResponse maps status counters.
func NewCountersResponse(c domain.StatusCounters) CountersResponse {
	return CountersResponse{
		New:        c.New,
		Assigned:   c.Assigned,
		InProgress: c.InProgress,
		Completed:  c.Completed,
		Total:      c.Total,
	}
}

// NewCategoryList maps the category table.
func NewCategoryList(infos []domain.CategoryInfo) []CategoryResponse {
	items := make([]CategoryResponse, 0, len(infos))
	for _, info := range infos {
		items = append(items, CategoryResponse{
			ID:                string(info.Category),
			Label:             info.Label,
			Icon:              info.Icon,
			Color:             info.Color,
			DefaultDepartment: info.DefaultDepartment,
		})
	}
	return items
}
