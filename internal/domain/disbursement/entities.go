package disbursement

import (
	"errors"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("disbursement not found")
	ErrAlreadyDisbursed   = errors.New("application already has a disbursement")
	ErrOverpayment        = errors.New("component payment exceeds its amount")
	ErrUnknownComponent   = errors.New("component does not belong to disbursement")
	ErrInvalidBankDetails = errors.New("invalid or missing bank details")
	ErrStaleEntity        = errors.New("disbursement was modified concurrently")
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
	PaymentDisbursed PaymentStatus = "disbursed"
	PaymentFailed    PaymentStatus = "failed"
)

type Method string

const (
	MethodBankTransfer  Method = "bank_transfer"
	MethodCheque        Method = "cheque"
	MethodCash          Method = "cash"
	MethodFeeAdjustment Method = "fee_adjustment"
)

type ComponentType string

const (
	ComponentTuition     ComponentType = "tuition_fee"
	ComponentMaintenance ComponentType = "maintenance_allowance"
	ComponentBooks       ComponentType = "books_materials"
)

type PaymentComponent struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	DisbursementID uint64          `gorm:"column:disbursement_id;index;not null" json:"-"`
	ComponentType  ComponentType   `gorm:"size:30;not null" json:"component_type"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	IsPaid         bool            `gorm:"default:false" json:"is_paid"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"-"`
}

func (PaymentComponent) TableName() string { return "payment_components" }

type Disbursement struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"-"`
	DisbursementID string `gorm:"size:30;uniqueIndex:ux_disbursements_disb_id_active" json:"disbursement_id"`
	ApplicationID  string `gorm:"size:30;index:idx_disbursements_application" json:"application_id"`

	SanctionedAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"sanctioned_amount"`
	DisbursedAmount  decimal.Decimal `gorm:"type:decimal(12,2)" json:"disbursed_amount"`
	DeductionAmount  decimal.Decimal `gorm:"type:decimal(12,2)" json:"deduction_amount"`

	Components    []PaymentComponent `gorm:"foreignKey:DisbursementID" json:"components"`
	PaymentStatus PaymentStatus      `gorm:"size:20;default:'pending';index" json:"payment_status"`
	Method        Method             `gorm:"size:20" json:"method"`

	BankAccountNumber    string `gorm:"size:20" json:"bank_account_number,omitempty"`
	BankIFSC             string `gorm:"size:11" json:"bank_ifsc,omitempty"`
	ChequeNumber         string `gorm:"size:20" json:"cheque_number,omitempty"`
	TransactionReference string `gorm:"size:50" json:"transaction_reference,omitempty"`

	DisbursedBy    string     `gorm:"size:32" json:"disbursed_by,omitempty"`
	DisbursedAt    *time.Time `json:"disbursed_at,omitempty"`
	Remarks        string     `gorm:"type:text" json:"remarks,omitempty"`

	Revision  uint64         `gorm:"column:revision;default:0" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Disbursement) TableName() string { return "scholarship_disbursements" }

// RecomputePaymentStatus derives the aggregate from component flags. The
// disbursed/failed terminal states are owned by the DBT flow and left alone.
func (d *Disbursement) RecomputePaymentStatus() {
	if d.PaymentStatus == PaymentDisbursed || d.PaymentStatus == PaymentFailed {
		return
	}
	paid := 0
	for _, c := range d.Components {
		if c.IsPaid {
			paid++
		}
	}
	switch {
	case paid == 0:
		d.PaymentStatus = PaymentPending
	case paid < len(d.Components):
		d.PaymentStatus = PaymentPartial
	default:
		d.PaymentStatus = PaymentCompleted
	}
}

// CheckAmounts enforces sanctioned = disbursed + deduction and the exact
// component sum. Every write path calls this before persisting.
func (d *Disbursement) CheckAmounts() error {
	if !d.DisbursedAmount.Add(d.DeductionAmount).Equal(d.SanctionedAmount) {
		return errors.New("disbursed + deduction must equal sanctioned amount")
	}
	sum := decimal.Zero
	for _, c := range d.Components {
		sum = sum.Add(c.Amount)
	}
	if len(d.Components) > 0 && !sum.Equal(d.SanctionedAmount) {
		return errors.New("component amounts must sum to sanctioned amount")
	}
	return nil
}

// AppendRemark keeps the running remark trail the portal UI shows.
func (d *Disbursement) AppendRemark(r string) {
	if r == "" {
		return
	}
	if d.Remarks == "" {
		d.Remarks = r
		return
	}
	d.Remarks = d.Remarks + "\n" + r
}

// MaskedAccount returns ****-suffixed account for user-facing payloads.
func (d *Disbursement) MaskedAccount() string {
	if len(d.BankAccountNumber) < 4 {
		return ""
	}
	return "****" + d.BankAccountNumber[len(d.BankAccountNumber)-4:]
}

var (
	reAccount = regexp.MustCompile(`^[0-9]{9,18}$`)
	reIFSC    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// ValidateBankDetails is the fail-fast precondition for DBT transfers.
func (d *Disbursement) ValidateBankDetails() error {
	if !reAccount.MatchString(d.BankAccountNumber) {
		return ErrInvalidBankDetails
	}
	if !reIFSC.MatchString(d.BankIFSC) {
		return ErrInvalidBankDetails
	}
	return nil
}
