package ledger

import (
	"errors"
	"testing"

	"courierhub/models"
)

func bookedShipment() *models.Booking {
	b := &models.Booking{AWBNumber: "AWB250000001"}
	_ = AppendBookingStatus(b, models.BookingStatusBooked, "Mumbai", "Booking created", "ops@courierhub.in", false)
	return b
}

func TestAppendBookingStatusRecordsHistory(t *testing.T) {
	b := bookedShipment()

	if err := AppendBookingStatus(b, models.BookingStatusPickedUp, "Mumbai", "", "driver-12", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Status != models.BookingStatusPickedUp {
		t.Errorf("status: got %q, want Picked Up", b.Status)
	}
	if len(b.StatusHistory) != 2 {
		t.Fatalf("history: got %d entries, want 2", len(b.StatusHistory))
	}
	last := b.StatusHistory[len(b.StatusHistory)-1]
	if last.UpdatedBy != "driver-12" || last.Location != "Mumbai" {
		t.Error("entry must carry actor and location")
	}
	if last.Timestamp.IsZero() {
		t.Error("entry must be timestamped")
	}
}

func TestAppendBookingStatusTerminalRejected(t *testing.T) {
	for _, terminal := range []string{models.BookingStatusDelivered, models.BookingStatusCancelled} {
		t.Run(terminal, func(t *testing.T) {
			b := bookedShipment()
			if err := AppendBookingStatus(b, terminal, "", "", "", false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			err := AppendBookingStatus(b, models.BookingStatusInTransit, "", "", "", false)
			if !errors.Is(err, ErrTerminalState) {
				t.Fatalf("got %v, want ErrTerminalState", err)
			}
			if len(b.StatusHistory) != 2 {
				t.Error("rejected update must not append to history")
			}
		})
	}
}

func TestAppendBookingStatusOverride(t *testing.T) {
	b := bookedShipment()
	if err := AppendBookingStatus(b, models.BookingStatusDelivered, "", "", "", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// An authorized override may correct a terminal state.
	if err := AppendBookingStatus(b, models.BookingStatusUndelivered, "", "marked delivered in error", "admin", true); err != nil {
		t.Fatalf("override rejected: %v", err)
	}
	if b.Status != models.BookingStatusUndelivered {
		t.Errorf("status: got %q, want Undelivered", b.Status)
	}
	if len(b.StatusHistory) != 3 {
		t.Error("override must append, never rewrite history")
	}
}

func TestAppendBookingStatusSideEffectDates(t *testing.T) {
	b := bookedShipment()
	if err := AppendBookingStatus(b, models.BookingStatusDelivered, "", "", "", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.DeliveryDate == nil {
		t.Error("Delivered must set the delivery date")
	}

	b2 := bookedShipment()
	if err := AppendBookingStatus(b2, models.BookingStatusReturned, "", "", "", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b2.ReturnDate == nil {
		t.Error("Returned must set the return date")
	}
}

func TestCaseTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		allowed  bool
	}{
		{models.CaseStatusOpen, models.CaseStatusInProgress, true},
		{models.CaseStatusOpen, models.CaseStatusEscalated, true},
		{models.CaseStatusOpen, models.CaseStatusClosed, false},
		{models.CaseStatusInProgress, models.CaseStatusResolved, true},
		{models.CaseStatusInProgress, models.CaseStatusOpen, false},
		{models.CaseStatusResolved, models.CaseStatusClosed, true},
		{models.CaseStatusResolved, models.CaseStatusEscalated, true},
		{models.CaseStatusEscalated, models.CaseStatusInProgress, true},
		{models.CaseStatusEscalated, models.CaseStatusResolved, true},
		{models.CaseStatusEscalated, models.CaseStatusClosed, false},
		{models.CaseStatusClosed, models.CaseStatusOpen, false},
	}

	for _, tc := range tests {
		if got := CanTransitionCase(tc.from, tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestAppendCaseStatus(t *testing.T) {
	status, history, err := AppendCaseStatus(models.CaseStatusOpen, nil, models.CaseStatusInProgress, "assigned", "support")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != models.CaseStatusInProgress {
		t.Errorf("status: got %q, want In Progress", status)
	}
	if len(history) != 1 || history[0].UpdatedBy != "support" {
		t.Error("entry must be appended with the actor")
	}
}

func TestAppendCaseStatusClosedIsTerminal(t *testing.T) {
	_, _, err := AppendCaseStatus(models.CaseStatusClosed, nil, models.CaseStatusOpen, "", "")
	if !errors.Is(err, ErrTerminalState) {
		t.Fatalf("got %v, want ErrTerminalState", err)
	}
}

func TestAppendCaseStatusInvalidTransition(t *testing.T) {
	_, history, err := AppendCaseStatus(models.CaseStatusOpen, nil, models.CaseStatusClosed, "", "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
	if len(history) != 0 {
		t.Error("rejected transition must not append")
	}
}

func TestPaymentTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		allowed  bool
	}{
		{models.PaymentStatusPending, models.PaymentStatusProcessing, true},
		{models.PaymentStatusPending, models.PaymentStatusCompleted, false},
		{models.PaymentStatusProcessing, models.PaymentStatusCompleted, true},
		{models.PaymentStatusProcessing, models.PaymentStatusFailed, true},
		{models.PaymentStatusProcessing, models.PaymentStatusCancelled, true},
		{models.PaymentStatusCompleted, models.PaymentStatusRefunded, true},
		{models.PaymentStatusCompleted, models.PaymentStatusProcessing, false},
		{models.PaymentStatusFailed, models.PaymentStatusProcessing, false},
		{models.PaymentStatusRefunded, models.PaymentStatusCompleted, false},
	}

	for _, tc := range tests {
		if got := CanTransitionPayment(tc.from, tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestAppendPaymentStatusSideEffects(t *testing.T) {
	p := &models.Payment{TransactionID: "TXN00000001", Status: models.PaymentStatusPending}

	if err := AppendPaymentStatus(p, models.PaymentStatusProcessing, "", "gateway"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := AppendPaymentStatus(p, models.PaymentStatusCompleted, "", "gateway"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.CompletedAt == nil {
		t.Error("Completed must set the completion timestamp")
	}
	if len(p.StatusHistory) != 2 {
		t.Errorf("history: got %d entries, want 2", len(p.StatusHistory))
	}
}

func TestAppendPaymentStatusFailureReason(t *testing.T) {
	p := &models.Payment{TransactionID: "TXN00000002", Status: models.PaymentStatusProcessing}

	if err := AppendPaymentStatus(p, models.PaymentStatusFailed, "card declined", "gateway"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FailureReason != "card declined" {
		t.Errorf("failure reason: got %q, want card declined", p.FailureReason)
	}
}

func TestAppendPaymentStatusInvalidTransition(t *testing.T) {
	p := &models.Payment{TransactionID: "TXN00000003", Status: models.PaymentStatusPending}

	if err := AppendPaymentStatus(p, models.PaymentStatusRefunded, "", ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}
