package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeDebit  Type = "debit"
	TypeCredit Type = "credit"
)

type Category string

const (
	CategoryStatusChange Category = "status_change"
	CategoryDisbursement Category = "scholarship_disbursement"
	CategoryDBTTransfer  Category = "dbt_transfer"
)

// Entry is the append-only audit record behind the application timeline.
// There is no Save/Delete anywhere: rows are written once and read in order.
type Entry struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	TransactionID  string          `gorm:"size:30;uniqueIndex" json:"transaction_id"`
	ApplicationID  string          `gorm:"size:30;index:idx_transactions_application" json:"application_id"`
	DisbursementID string          `gorm:"size:30;index" json:"disbursement_id,omitempty"`
	Actor          string          `gorm:"size:32" json:"actor"`
	Action         string          `gorm:"size:50" json:"action"`
	Type           Type            `gorm:"size:10" json:"type"`
	Category       Category        `gorm:"size:30" json:"category"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	AmountBefore   decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount_before"`
	AmountAfter    decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount_after"`
	Reference      string          `gorm:"size:50" json:"reference,omitempty"`
	Remarks        string          `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "transactions" }
