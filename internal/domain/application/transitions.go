package application

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTerminalState     = errors.New("application is in a terminal state")
	ErrStaleEntity       = errors.New("application was modified concurrently")
)

// allowedTransitions is the single source of truth for status ordering.
// Review handlers never compare status strings ad hoc; they go through
// CanTransition so an illegal skip is one validated lookup away.
var allowedTransitions = map[Status][]Status{
	StatusDraft:              {StatusSubmitted},
	StatusSubmitted:          {StatusInstituteReview, StatusInstituteApproved, StatusInstituteRejected},
	StatusInstituteReview:    {StatusInstituteApproved, StatusInstituteRejected},
	StatusInstituteApproved:  {StatusDepartmentReview, StatusDepartmentApproved, StatusDepartmentRejected},
	StatusDepartmentReview:   {StatusDepartmentApproved, StatusDepartmentRejected},
	StatusDepartmentApproved: {StatusFinanceCalculated},
	StatusFinanceCalculated:  {StatusPaymentProcessing},
	StatusPaymentProcessing:  {StatusDisbursed, StatusPaymentFailed},
	StatusPaymentFailed:      {StatusPaymentProcessing},
	StatusInstituteRejected:  {},
	StatusDepartmentRejected: {},
	StatusDisbursed:          {},
}

func IsTerminal(s Status) bool {
	return s == StatusInstituteRejected || s == StatusDepartmentRejected || s == StatusDisbursed
}

func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates and applies a status change in one step.
func (a *Application) Transition(to Status) error {
	if IsTerminal(a.Status) {
		return fmt.Errorf("%w: %s is %s", ErrTerminalState, a.ApplicationID, a.Status)
	}
	if !CanTransition(a.Status, to) {
		return fmt.Errorf("%w: %s cannot move %s -> %s", ErrInvalidTransition, a.ApplicationID, a.Status, to)
	}
	a.Status = to
	return nil
}

// DecidedAt reports whether the given review level has already been decided.
func (a *Application) DecidedAt(level ReviewLevel) bool {
	if level == LevelInstitute {
		return a.InstituteReviewedAt != nil
	}
	return a.DepartmentReviewedAt != nil
}

// RecordedDecision returns the stored decision for a level ("" if undecided).
func (a *Application) RecordedDecision(level ReviewLevel) Decision {
	if level == LevelInstitute {
		return a.InstituteDecision
	}
	return a.DepartmentDecision
}
