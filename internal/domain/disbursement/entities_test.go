package disbursement

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sample() *Disbursement {
	return &Disbursement{
		DisbursementID:   "DISB-1",
		SanctionedAmount: dec("57600"),
		DisbursedAmount:  dec("57600"),
		DeductionAmount:  decimal.Zero,
		PaymentStatus:    PaymentPending,
		Components: []PaymentComponent{
			{ComponentType: ComponentTuition, Amount: dec("40320")},
			{ComponentType: ComponentMaintenance, Amount: dec("14400")},
			{ComponentType: ComponentBooks, Amount: dec("2880")},
		},
	}
}

func TestRecomputePaymentStatus(t *testing.T) {
	d := sample()

	d.RecomputePaymentStatus()
	if d.PaymentStatus != PaymentPending {
		t.Fatalf("no paid components: want pending, got %s", d.PaymentStatus)
	}

	d.Components[0].IsPaid = true
	d.RecomputePaymentStatus()
	if d.PaymentStatus != PaymentPartial {
		t.Fatalf("one paid component: want partial, got %s", d.PaymentStatus)
	}

	for i := range d.Components {
		d.Components[i].IsPaid = true
	}
	d.RecomputePaymentStatus()
	if d.PaymentStatus != PaymentCompleted {
		t.Fatalf("all paid: want completed, got %s", d.PaymentStatus)
	}
}

func TestRecomputePaymentStatus_LeavesTerminalAlone(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentDisbursed, PaymentFailed} {
		d := sample()
		d.PaymentStatus = s
		d.RecomputePaymentStatus()
		if d.PaymentStatus != s {
			t.Fatalf("%s overwritten to %s", s, d.PaymentStatus)
		}
	}
}

func TestCheckAmounts(t *testing.T) {
	t.Run("balanced", func(t *testing.T) {
		if err := sample().CheckAmounts(); err != nil {
			t.Fatalf("CheckAmounts: %v", err)
		}
	})

	t.Run("deduction balances", func(t *testing.T) {
		d := sample()
		d.DeductionAmount = dec("600")
		d.DisbursedAmount = dec("57000")
		d.Components = nil
		if err := d.CheckAmounts(); err != nil {
			t.Fatalf("CheckAmounts: %v", err)
		}
	})

	t.Run("disbursed plus deduction off", func(t *testing.T) {
		d := sample()
		d.DeductionAmount = dec("1")
		if err := d.CheckAmounts(); err == nil {
			t.Fatalf("want error")
		}
	})

	t.Run("component sum off", func(t *testing.T) {
		d := sample()
		d.Components[2].Amount = dec("2879.99")
		if err := d.CheckAmounts(); err == nil {
			t.Fatalf("want error")
		}
	})
}

func TestValidateBankDetails(t *testing.T) {
	cases := []struct {
		name    string
		account string
		ifsc    string
		ok      bool
	}{
		{"valid", "123456789012", "SBIN0001234", true},
		{"account too short", "12345678", "SBIN0001234", false},
		{"account too long", "1234567890123456789", "SBIN0001234", false},
		{"account with letters", "12345678X012", "SBIN0001234", false},
		{"ifsc lowercase", "123456789012", "sbin0001234", false},
		{"ifsc missing zero", "123456789012", "SBIN1001234", false},
		{"ifsc wrong length", "123456789012", "SBIN000123", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &Disbursement{BankAccountNumber: tc.account, BankIFSC: tc.ifsc}
			err := d.ValidateBankDetails()
			if tc.ok && err != nil {
				t.Fatalf("want ok, got %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidBankDetails) {
				t.Fatalf("want ErrInvalidBankDetails, got %v", err)
			}
		})
	}
}

func TestAppendRemark(t *testing.T) {
	d := &Disbursement{}
	d.AppendRemark("")
	if d.Remarks != "" {
		t.Fatalf("empty remark appended")
	}
	d.AppendRemark("first")
	d.AppendRemark("second")
	if d.Remarks != "first\nsecond" {
		t.Fatalf("remarks: %q", d.Remarks)
	}
}

func TestMaskedAccount(t *testing.T) {
	d := &Disbursement{BankAccountNumber: "123456789012"}
	if got := d.MaskedAccount(); got != "****9012" {
		t.Fatalf("masked: %s", got)
	}
	d.BankAccountNumber = "12"
	if got := d.MaskedAccount(); got != "" {
		t.Fatalf("short account should mask to empty, got %s", got)
	}
}
