package dto

import "github.com/spec-kit/gkh-dispatch/internal/domain"

// DepartmentResponse is a catalog entry with live request counts.
type DepartmentResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Icon               string `json:"icon"`
	Color              string `json:"color"`
	AvailableTeams     int    `json:"available_teams"`
	Efficiency         int    `json:"efficiency"`
	ResponseTimeTarget string `json:"response_time_target"`
	TotalRequests      int    `json:"total_requests"`
	ActiveRequests     int    `json:"active_requests"`
}

// NewDepartmentResponse maps department stats.
func NewDepartmentResponse(stats domain.DepartmentStats) DepartmentResponse {
	d := stats.Department
	return DepartmentResponse{
		ID:                 d.ID,
		Name:               d.Name,
		Description:        d.Description,
		Icon:               d.Icon,
		Color:              d.Color,
		AvailableTeams:     d.AvailableTeams,
		Efficiency:         d.Efficiency,
		ResponseTimeTarget: d.ResponseTimeTarget,
		TotalRequests:      stats.TotalRequests,
		ActiveRequests:     stats.ActiveRequests,
	}
}

// NewDepartmentList maps a slice of department stats.
func NewDepartmentList(stats []domain.DepartmentStats) []DepartmentResponse {
	items := make([]DepartmentResponse, 0, len(stats))
	for _, s := range stats {
		items = append(items, NewDepartmentResponse(s))
	}
	return items
}
