package application

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft              Status = "draft"
	StatusSubmitted          Status = "submitted"
	StatusInstituteReview    Status = "institute_review"
	StatusInstituteApproved  Status = "institute_approved"
	StatusInstituteRejected  Status = "institute_rejected"
	StatusDepartmentReview   Status = "department_review"
	StatusDepartmentApproved Status = "department_approved"
	StatusDepartmentRejected Status = "department_rejected"
	StatusFinanceCalculated  Status = "finance_calculated"
	StatusPaymentProcessing  Status = "payment_processing"
	StatusDisbursed          Status = "disbursed"
	StatusPaymentFailed      Status = "payment_failed"
)

type ScholarshipType string

const (
	TypeMerit            ScholarshipType = "merit"
	TypeNeed             ScholarshipType = "need"
	TypeMinority         ScholarshipType = "minority"
	TypeSCST             ScholarshipType = "sc_st"
	TypeOBC              ScholarshipType = "obc"
	TypeEWS              ScholarshipType = "ews"
	TypeGovernmentScheme ScholarshipType = "government_scheme"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type ReviewLevel string

const (
	LevelInstitute  ReviewLevel = "institute"
	LevelDepartment ReviewLevel = "department"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// AcademicSnapshot is captured at submission and never edited afterwards;
// the amount calculator reads it as immutable fact.
type AcademicSnapshot struct {
	CGPA         decimal.Decimal `gorm:"column:cgpa;type:decimal(4,2)" json:"cgpa"`
	CourseLevel  string          `gorm:"column:course_level;size:20" json:"course_level"`
	AcademicYear string          `gorm:"column:academic_year;size:10" json:"academic_year"`
}

// FamilySnapshot mirrors AcademicSnapshot for the need/government strategies.
type FamilySnapshot struct {
	AnnualIncome decimal.Decimal `gorm:"column:annual_income;type:decimal(12,2)" json:"annual_income"`
	Category     string          `gorm:"column:family_category;size:20" json:"category"`
	RuralUrban   string          `gorm:"column:rural_urban;size:10" json:"rural_urban"`
}

type Application struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID string `gorm:"size:30;uniqueIndex:ux_applications_app_id_active" json:"application_id"`
	StudentID     string `gorm:"size:32;index:idx_applications_student" json:"student_id"`

	ScholarshipType ScholarshipType  `gorm:"size:20;index" json:"scholarship_type"`
	Reason          string           `gorm:"type:text" json:"reason"`
	AmountRequested decimal.Decimal  `gorm:"type:decimal(12,2)" json:"amount_requested"`
	AmountApproved  *decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount_approved,omitempty"`

	Status           Status   `gorm:"size:30;default:'draft';index" json:"status"`
	Priority         Priority `gorm:"size:10;default:'medium'" json:"priority"`
	EligibilityScore int      `gorm:"column:eligibility_score" json:"eligibility_score"`

	Academic AcademicSnapshot `gorm:"embedded" json:"academic"`
	Family   FamilySnapshot   `gorm:"embedded" json:"family"`

	// Review bookkeeping. Remarks and decisions are recorded so a retried
	// review can be recognized as a repeat instead of double-applied.
	InstituteDecision  Decision `gorm:"size:10" json:"-"`
	InstituteRemarks   string   `gorm:"type:text" json:"-"`
	DepartmentDecision Decision `gorm:"size:10" json:"-"`
	DepartmentRemarks  string   `gorm:"type:text" json:"-"`

	SubmittedAt          *time.Time `json:"submitted_at,omitempty"`
	InstituteReviewedAt  *time.Time `json:"institute_reviewed_at,omitempty"`
	DepartmentReviewedAt *time.Time `json:"department_reviewed_at,omitempty"`
	FinanceCalculatedAt  *time.Time `json:"finance_calculated_at,omitempty"`
	DisbursedAt          *time.Time `json:"disbursed_at,omitempty"`

	// Revision guards against lost updates when two officers save concurrently.
	Revision        uint64         `gorm:"column:revision;default:0" json:"-"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Application) TableName() string { return "scholarship_applications" }

// ProcessingDays reports submission-to-decision time; nil until both ends exist.
func (a *Application) ProcessingDays() *int {
	if a.SubmittedAt == nil || a.DepartmentReviewedAt == nil {
		return nil
	}
	d := int(a.DepartmentReviewedAt.Sub(*a.SubmittedAt).Hours() / 24)
	return &d
}

// DerivePriority maps eligibility score and family income to a priority band.
func DerivePriority(score int, income decimal.Decimal) Priority {
	switch {
	case score >= 90 || income.LessThanOrEqual(decimal.NewFromInt(100000)):
		return PriorityUrgent
	case score >= 75 || income.LessThanOrEqual(decimal.NewFromInt(200000)):
		return PriorityHigh
	case score < 40 && income.GreaterThan(decimal.NewFromInt(600000)):
		return PriorityLow
	default:
		return PriorityMedium
	}
}
