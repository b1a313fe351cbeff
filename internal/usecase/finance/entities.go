package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"scholarship-portal-backend/internal/domain/disbursement"
	"scholarship-portal-backend/internal/usecase/calculation"
)

type CalculateInput struct {
	ApplicationID string
	ActorID       string
	Strategy      calculation.Strategy
	CustomFactors *calculation.CustomFactors
}

type CalculateDTO struct {
	ApplicationID   string                  `json:"application_id"`
	Strategy        string                  `json:"strategy"`
	Total           decimal.Decimal         `json:"total"`
	Breakdown       []calculation.Component `json:"breakdown"`
	Recommendations []string                `json:"recommendations"`
	Advanced        bool                    `json:"advanced"`
	CalculatedAt    time.Time               `json:"calculated_at"`
}

type BankDetail struct {
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
}

type BulkCreateInput struct {
	ApplicationIDs []string
	Method         disbursement.Method
	Remarks        string
	ActorID        string
	// BankDetails is keyed by application id; entries are optional and only
	// needed when the method is bank_transfer.
	BankDetails map[string]BankDetail
}

type ItemStatus string

const (
	ItemSuccess ItemStatus = "success"
	ItemSkipped ItemStatus = "skipped"
	ItemNoop    ItemStatus = "noop"
	ItemError   ItemStatus = "error"
)

type ItemResult struct {
	ID             string     `json:"id"`
	Status         ItemStatus `json:"status"`
	Message        string     `json:"message,omitempty"`
	DisbursementID string     `json:"disbursement_id,omitempty"`
}

type BatchSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Skipped int `json:"skipped"`
	Noop    int `json:"noop"`
	Errors  int `json:"errors"`
}

type BatchDTO struct {
	Summary     BatchSummary    `json:"summary"`
	Results     []ItemResult    `json:"results"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ProcessedAt time.Time       `json:"processed_at"`
}

type ComponentUpdate struct {
	ComponentType disbursement.ComponentType `json:"component_type"`
	// Amount, when set, must not exceed the component's amount.
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

type PaymentStatusInput struct {
	DisbursementIDs  []string
	ComponentUpdates []ComponentUpdate
	Remarks          string
	ActorID          string
}

func summarize(results []ItemResult) BatchSummary {
	s := BatchSummary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case ItemSuccess:
			s.Success++
		case ItemSkipped:
			s.Skipped++
		case ItemNoop:
			s.Noop++
		default:
			s.Errors++
		}
	}
	return s
}
