package application

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransition_HappyPath(t *testing.T) {
	a := &Application{ApplicationID: "APP-1", Status: StatusDraft}
	path := []Status{
		StatusSubmitted,
		StatusInstituteReview,
		StatusInstituteApproved,
		StatusDepartmentReview,
		StatusDepartmentApproved,
		StatusFinanceCalculated,
		StatusPaymentProcessing,
		StatusDisbursed,
	}
	for _, next := range path {
		if err := a.Transition(next); err != nil {
			t.Fatalf("%s -> %s: %v", a.Status, next, err)
		}
	}
	if !IsTerminal(a.Status) {
		t.Fatalf("disbursed must be terminal")
	}
}

func TestTransition_ReviewWithoutExplicitReviewState(t *testing.T) {
	// reviewers may decide straight from submitted / institute_approved
	a := &Application{Status: StatusSubmitted}
	if err := a.Transition(StatusInstituteApproved); err != nil {
		t.Fatalf("submitted -> institute_approved: %v", err)
	}
	if err := a.Transition(StatusDepartmentApproved); err != nil {
		t.Fatalf("institute_approved -> department_approved: %v", err)
	}
}

func TestTransition_PaymentRetryLoop(t *testing.T) {
	a := &Application{Status: StatusPaymentProcessing}
	if err := a.Transition(StatusPaymentFailed); err != nil {
		t.Fatalf("to payment_failed: %v", err)
	}
	if err := a.Transition(StatusPaymentProcessing); err != nil {
		t.Fatalf("retry to payment_processing: %v", err)
	}
	if err := a.Transition(StatusDisbursed); err != nil {
		t.Fatalf("to disbursed: %v", err)
	}
}

func TestTransition_Illegal(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		want error
	}{
		{"skip review pipeline", StatusDraft, StatusFinanceCalculated, ErrInvalidTransition},
		{"skip institute level", StatusSubmitted, StatusDepartmentApproved, ErrInvalidTransition},
		{"backwards", StatusDepartmentApproved, StatusSubmitted, ErrInvalidTransition},
		{"failed cannot settle directly", StatusPaymentFailed, StatusDisbursed, ErrInvalidTransition},
		{"out of rejection", StatusInstituteRejected, StatusInstituteReview, ErrTerminalState},
		{"out of disbursed", StatusDisbursed, StatusPaymentProcessing, ErrTerminalState},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &Application{ApplicationID: "APP-1", Status: tc.from}
			err := a.Transition(tc.to)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if a.Status != tc.from {
				t.Fatalf("failed transition mutated status: %s", a.Status)
			}
		})
	}
}

func TestDerivePriority(t *testing.T) {
	cases := []struct {
		name   string
		score  int
		income string
		want   Priority
	}{
		{"top score", 95, "500000", PriorityUrgent},
		{"very low income", 50, "90000", PriorityUrgent},
		{"high score", 80, "500000", PriorityHigh},
		{"low income band", 50, "150000", PriorityHigh},
		{"middling", 60, "400000", PriorityMedium},
		{"low score wealthy", 30, "700000", PriorityLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DerivePriority(tc.score, decimal.RequireFromString(tc.income))
			if got != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestRecordedDecision(t *testing.T) {
	a := &Application{}
	if a.DecidedAt(LevelInstitute) || a.DecidedAt(LevelDepartment) {
		t.Fatalf("fresh application has no decisions")
	}
	if a.RecordedDecision(LevelInstitute) != "" {
		t.Fatalf("undecided level must report empty decision")
	}
}
