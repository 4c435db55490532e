package billing

import (
	"errors"
	"testing"
	"time"

	"courierhub/models"
)

func unpaidInvoice(grandTotal float64) *models.Invoice {
	return &models.Invoice{
		InvoiceNumber: "INV000042",
		GrandTotal:    grandTotal,
		BalanceAmount: grandTotal,
		PaymentStatus: models.InvoiceStatusUnpaid,
		DueDate:       time.Now().UTC().AddDate(0, 0, 15),
	}
}

func TestRecordPaymentPartialThenFull(t *testing.T) {
	inv := unpaidInvoice(1000)

	// Partial payment.
	if err := RecordPayment(inv, 400, "UPI", "ref-1", "ops@courierhub.in", time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.PaymentStatus != models.InvoiceStatusPartiallyPaid {
		t.Errorf("status: got %q, want Partially Paid", inv.PaymentStatus)
	}
	if inv.BalanceAmount != 600 {
		t.Errorf("balance: got %v, want 600", inv.BalanceAmount)
	}

	// Settling payment.
	if err := RecordPayment(inv, 600, "NEFT", "ref-2", "ops@courierhub.in", time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.PaymentStatus != models.InvoiceStatusPaid {
		t.Errorf("status: got %q, want Paid", inv.PaymentStatus)
	}
	if inv.BalanceAmount != 0 {
		t.Errorf("balance: got %v, want 0", inv.BalanceAmount)
	}
	if len(inv.Payments) != 2 {
		t.Errorf("payment records: got %d, want 2", len(inv.Payments))
	}
}

func TestRecordPaymentRejectsInvalidAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
	}{
		{"zero amount", 0},
		{"negative amount", -50},
		{"overpayment", 1001},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv := unpaidInvoice(1000)
			err := RecordPayment(inv, tc.amount, "Cash", "", "", time.Time{})
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("got %v, want ErrInvalidAmount", err)
			}
			if len(inv.Payments) != 0 || inv.PaidAmount != 0 {
				t.Error("rejected payment must not mutate the invoice")
			}
		})
	}
}

func TestRecordPaymentRejectsCancelledInvoice(t *testing.T) {
	inv := unpaidInvoice(1000)
	inv.PaymentStatus = models.InvoiceStatusCancelled

	if err := RecordPayment(inv, 100, "Cash", "", "", time.Time{}); !errors.Is(err, ErrInvoiceCancelled) {
		t.Fatalf("got %v, want ErrInvoiceCancelled", err)
	}
}

func TestRecomputeStatusOverdue(t *testing.T) {
	inv := unpaidInvoice(1000)
	inv.DueDate = time.Now().UTC().AddDate(0, 0, -1)

	RecomputeStatus(inv, time.Now().UTC())
	if inv.PaymentStatus != models.InvoiceStatusOverdue {
		t.Errorf("status: got %q, want Overdue", inv.PaymentStatus)
	}
}

func TestRecomputeStatusCancelledIsSticky(t *testing.T) {
	inv := unpaidInvoice(1000)
	inv.PaymentStatus = models.InvoiceStatusCancelled
	inv.PaidAmount = 1000

	RecomputeStatus(inv, time.Now().UTC())
	if inv.PaymentStatus != models.InvoiceStatusCancelled {
		t.Errorf("status: got %q, want Cancelled to stick", inv.PaymentStatus)
	}
}

func TestCancel(t *testing.T) {
	inv := unpaidInvoice(1000)
	if err := Cancel(inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.PaymentStatus != models.InvoiceStatusCancelled {
		t.Errorf("status: got %q, want Cancelled", inv.PaymentStatus)
	}

	// Cancelling twice is rejected.
	if err := Cancel(inv); !errors.Is(err, ErrInvoiceCancelled) {
		t.Fatalf("got %v, want ErrInvoiceCancelled", err)
	}
}

func TestCancelRejectedAfterPayments(t *testing.T) {
	inv := unpaidInvoice(1000)
	if err := RecordPayment(inv, 100, "Cash", "", "", time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Cancel(inv); !errors.Is(err, ErrHasPayments) {
		t.Fatalf("got %v, want ErrHasPayments", err)
	}
}

func TestEditable(t *testing.T) {
	tests := []struct {
		status  string
		wantErr error
	}{
		{models.InvoiceStatusUnpaid, nil},
		{models.InvoiceStatusPartiallyPaid, nil},
		{models.InvoiceStatusOverdue, nil},
		{models.InvoiceStatusPaid, ErrInvoicePaid},
		{models.InvoiceStatusCancelled, ErrInvoiceCancelled},
	}

	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			inv := unpaidInvoice(100)
			inv.PaymentStatus = tc.status
			if err := Editable(inv); !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}
