package application

import (
	"time"

	"github.com/shopspring/decimal"

	domain "scholarship-portal-backend/internal/domain/application"
	"scholarship-portal-backend/internal/domain/transaction"
)

type CreateInput struct {
	StudentID        string
	ScholarshipType  domain.ScholarshipType
	Reason           string
	AmountRequested  decimal.Decimal
	EligibilityScore int
	Academic         domain.AcademicSnapshot
	Family           domain.FamilySnapshot
}

type SubmitInput struct {
	ApplicationID string
	ActorID       string
}

type ReviewInput struct {
	ApplicationID  string
	ActorID        string
	Level          domain.ReviewLevel
	Decision       domain.Decision
	Remarks        string
	ApprovedAmount *decimal.Decimal
}

type ApplicationDTO struct {
	ApplicationID    string           `json:"application_id"`
	StudentID        string           `json:"student_id"`
	ScholarshipType  string           `json:"scholarship_type"`
	Status           string           `json:"status"`
	Priority         string           `json:"priority"`
	AmountRequested  decimal.Decimal  `json:"amount_requested"`
	AmountApproved   *decimal.Decimal `json:"amount_approved,omitempty"`
	EligibilityScore int              `json:"eligibility_score"`
	SubmittedAt      *time.Time       `json:"submitted_at,omitempty"`
	DisbursedAt      *time.Time       `json:"disbursed_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

type TimelineDTO struct {
	ApplicationID  string              `json:"application_id"`
	Status         string              `json:"status"`
	ProcessingDays *int                `json:"processing_days,omitempty"`
	Entries        []transaction.Entry `json:"entries"`
}

func toDTO(a *domain.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:    a.ApplicationID,
		StudentID:        a.StudentID,
		ScholarshipType:  string(a.ScholarshipType),
		Status:           string(a.Status),
		Priority:         string(a.Priority),
		AmountRequested:  a.AmountRequested,
		AmountApproved:   a.AmountApproved,
		EligibilityScore: a.EligibilityScore,
		SubmittedAt:      a.SubmittedAt,
		DisbursedAt:      a.DisbursedAt,
		CreatedAt:        a.CreatedAt,
	}
}
