// Package ledger appends timestamped, user-attributed entries to an
// entity's status history and enforces the transition rules. History is
// append-only: a mistaken status is corrected by a new entry, never by
// editing what was recorded.
package ledger

import (
	"errors"
	"time"

	"courierhub/models"
)

var (
	// ErrTerminalState rejects updates to entities whose status can no
	// longer change.
	ErrTerminalState = errors.New("entity is in a terminal state")

	// ErrInvalidTransition rejects a status move the state machine does
	// not allow.
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// AppendBookingStatus records a status change on a booking. Bookings in
// Delivered or Cancelled reject further updates unless the caller is an
// authorized override path. Delivered and Returned set their respective
// date fields as side effects.
func AppendBookingStatus(b *models.Booking, status, location, remarks, actor string, override bool) error {
	if b.IsTerminal() && !override {
		return ErrTerminalState
	}

	ts := time.Now().UTC()
	b.StatusHistory = append(b.StatusHistory, models.StatusEvent{
		Status:    status,
		Location:  location,
		Remarks:   remarks,
		Timestamp: ts,
		UpdatedBy: actor,
	})
	b.Status = status
	b.UpdatedAt = &ts

	switch status {
	case models.BookingStatusDelivered:
		b.DeliveryDate = &ts
	case models.BookingStatusReturned:
		b.ReturnDate = &ts
	}
	return nil
}

// caseTransitions is the Open -> In Progress -> Resolved -> Closed machine
// shared by exceptions and support tickets. Escalated is reachable from any
// non-terminal state and feeds back into the normal flow.
var caseTransitions = map[string][]string{
	models.CaseStatusOpen:       {models.CaseStatusInProgress, models.CaseStatusEscalated},
	models.CaseStatusInProgress: {models.CaseStatusResolved, models.CaseStatusEscalated},
	models.CaseStatusResolved:   {models.CaseStatusClosed, models.CaseStatusEscalated},
	models.CaseStatusEscalated:  {models.CaseStatusInProgress, models.CaseStatusResolved},
}

// CanTransitionCase reports whether a ticket/exception may move to a status.
func CanTransitionCase(from, to string) bool {
	for _, s := range caseTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AppendCaseStatus applies a transition to a case-style history, returning
// the entry appended so callers can persist side effects.
func AppendCaseStatus(current string, history []models.StatusEvent, status, remarks, actor string) (string, []models.StatusEvent, error) {
	if current == models.CaseStatusClosed {
		return current, history, ErrTerminalState
	}
	if !CanTransitionCase(current, status) {
		return current, history, ErrInvalidTransition
	}
	history = append(history, models.StatusEvent{
		Status:    status,
		Remarks:   remarks,
		Timestamp: time.Now().UTC(),
		UpdatedBy: actor,
	})
	return status, history, nil
}

// paymentTransitions: Pending -> Processing -> Completed | Failed |
// Cancelled, with Completed -> Refunded as the only post-terminal move.
var paymentTransitions = map[string][]string{
	models.PaymentStatusPending:    {models.PaymentStatusProcessing},
	models.PaymentStatusProcessing: {models.PaymentStatusCompleted, models.PaymentStatusFailed, models.PaymentStatusCancelled},
	models.PaymentStatusCompleted:  {models.PaymentStatusRefunded},
}

// CanTransitionPayment reports whether a gateway payment may move to status.
func CanTransitionPayment(from, to string) bool {
	for _, s := range paymentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AppendPaymentStatus applies a gateway state transition to a payment.
func AppendPaymentStatus(p *models.Payment, status, remarks, actor string) error {
	if !CanTransitionPayment(p.Status, status) {
		return ErrInvalidTransition
	}
	ts := time.Now().UTC()
	p.StatusHistory = append(p.StatusHistory, models.StatusEvent{
		Status:    status,
		Remarks:   remarks,
		Timestamp: ts,
		UpdatedBy: actor,
	})
	p.Status = status
	p.UpdatedAt = &ts
	switch status {
	case models.PaymentStatusCompleted:
		p.CompletedAt = &ts
	case models.PaymentStatusFailed:
		p.FailureReason = remarks
	}
	return nil
}
