package domain

// RequestStatus enumerates lifecycle states for service requests.
type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "new"
	RequestStatusAssigned   RequestStatus = "assigned"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
)

// RequestPriority enumerates urgency, ordered from low to urgent.
type RequestPriority string

const (
	RequestPriorityLow    RequestPriority = "low"
	RequestPriorityMedium RequestPriority = "medium"
	RequestPriorityHigh   RequestPriority = "high"
	RequestPriorityUrgent RequestPriority = "urgent"
)

var priorityRank = map[RequestPriority]int{
	RequestPriorityLow:    0,
	RequestPriorityMedium: 1,
	RequestPriorityHigh:   2,
	RequestPriorityUrgent: 3,
}

var statusRank = map[RequestStatus]int{
	RequestStatusNew:        0,
	RequestStatusAssigned:   1,
	RequestStatusInProgress: 2,
	RequestStatusCompleted:  3,
}

// Valid reports whether p is a known priority.
func (p RequestPriority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank orders priorities; unknown values rank below low.
func (p RequestPriority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return -1
}

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether no command may move the request further.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusCompleted
}

// Active reports whether the request still needs work.
func (s RequestStatus) Active() bool {
	return s != RequestStatusCompleted
}

var allowedTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusNew:        {RequestStatusAssigned, RequestStatusInProgress},
	RequestStatusAssigned:   {RequestStatusInProgress},
	RequestStatusInProgress: {RequestStatusCompleted},
	RequestStatusCompleted:  {},
}

// CanTransition reports whether current may move to next.
// Every allowed edge moves forward, so status never regresses.
func CanTransition(current, next RequestStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ServiceRequest is a citizen-reported utility issue tracked to resolution.
type ServiceRequest struct {
	ID                string
	Category          Category
	Title             string
	Address           string
	Priority          RequestPriority
	Status            RequestStatus
	DepartmentID      *string
	SubmittedAt       string
	RewardPoints      int
	EstimatedDuration string
	Difficulty        int
	CitizenRating     float64
}

// Clone returns a copy that shares no pointers with r.
func (r ServiceRequest) Clone() ServiceRequest {
	if r.DepartmentID != nil {
		dept := *r.DepartmentID
		r.DepartmentID = &dept
	}
	return r
}

// InDepartment reports whether the request is assigned to departmentID.
func (r ServiceRequest) InDepartment(departmentID string) bool {
	return r.DepartmentID != nil && *r.DepartmentID == departmentID
}

// StatusCounters are derived from a request collection on every read.
type StatusCounters struct {
	New        int
	Assigned   int
	InProgress int
	Completed  int
	Total      int
}

// CountStatuses scans requests and tallies each status.
func CountStatuses(requests []ServiceRequest) StatusCounters {
	counters := StatusCounters{Total: len(requests)}
	for _, req := range requests {
		switch req.Status {
		case RequestStatusNew:
			counters.New++
		case RequestStatusAssigned:
			counters.Assigned++
		case RequestStatusInProgress:
			counters.InProgress++
		case RequestStatusCompleted:
			counters.Completed++
		}
	}
	return counters
}
