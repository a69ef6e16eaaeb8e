package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus is returned when a plan status outside the known set is supplied.
var ErrInvalidStatus = errors.New("invalid plan status")

type PlanStatus string

const (
	PlanPending    PlanStatus = "pending"
	PlanInProgress PlanStatus = "in_progress"
	PlanCompleted  PlanStatus = "completed"
	PlanCancelled  PlanStatus = "cancelled"
)

// ValidPlanStatuses is the canonical ordered set of plan statuses.
var ValidPlanStatuses = []PlanStatus{PlanPending, PlanInProgress, PlanCompleted, PlanCancelled}

// IsValid reports whether s is one of the known plan statuses.
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanPending, PlanInProgress, PlanCompleted, PlanCancelled:
		return true
	}
	return false
}

// ParsePlanStatus converts user or storage input into a PlanStatus.
func ParsePlanStatus(s string) (PlanStatus, error) {
	st := PlanStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// Label returns a human-readable status name.
func (s PlanStatus) Label() string {
	switch s {
	case PlanPending:
		return "Pending"
	case PlanInProgress:
		return "In Progress"
	case PlanCompleted:
		return "Completed"
	case PlanCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}
