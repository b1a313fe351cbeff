package transfer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transfer attempt not found")

// Attempt is one simulated DBT outcome for one disbursement. Rows are
// immutable; a retry after failure creates a fresh Attempt under a new batch.
type Attempt struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	BatchID        string          `gorm:"size:40;index:idx_transfer_attempts_batch" json:"batch_id"`
	DisbursementID string          `gorm:"size:30;index" json:"disbursement_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Success        bool            `json:"success"`
	FailureReason  string          `gorm:"size:100" json:"failure_reason,omitempty"`
	ReferenceNo    string          `gorm:"size:50" json:"reference_no,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Attempt) TableName() string { return "dbt_transfer_attempts" }
