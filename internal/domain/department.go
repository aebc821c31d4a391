package domain

// Department is a fixed municipal service unit from the catalog.
type Department struct {
	ID                 string
	Name               string
	Description        string
	Icon               string
	Color              string
	AvailableTeams     int
	Efficiency         int
	ResponseTimeTarget string
}

// DepartmentStats aggregates requests routed to one department.
type DepartmentStats struct {
	Department     Department
	TotalRequests  int
	ActiveRequests int
}
