package domain

import "time"

// WorkStatus represents the review state of a submitted work item.
type WorkStatus string

const (
	StatusPending  WorkStatus = "pending"
	StatusAccepted WorkStatus = "accepted"
	StatusRejected WorkStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// accepted and rejected are terminal.
var validTransitions = map[WorkStatus][]WorkStatus{
	StatusPending: {StatusAccepted, StatusRejected},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s WorkStatus) CanTransitionTo(next WorkStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s WorkStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// ValidWorkStatus reports whether s is a known review status.
func ValidWorkStatus(s WorkStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// WorkItem is a unit of user-submitted content awaiting an admin
// accept/reject decision.
type WorkItem struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Software       string     `json:"software"`
	Content        string     `json:"content"`
	Status         WorkStatus `json:"status"`
	IdempotencyKey string     `json:"-"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
