package billing

import "errors"

var (
	// ErrInvalidAmount rejects non-positive payments and payments that
	// exceed the outstanding balance.
	ErrInvalidAmount = errors.New("payment amount must be positive and not exceed the balance")

	// ErrHasPayments blocks cancelling or deleting an invoice once any
	// payment has been recorded against it.
	ErrHasPayments = errors.New("invoice has recorded payments")

	// ErrInvoiceCancelled blocks edits and payments on a cancelled invoice.
	ErrInvoiceCancelled = errors.New("invoice is cancelled")

	// ErrInvoicePaid blocks plain edits on a fully paid invoice.
	ErrInvoicePaid = errors.New("invoice is fully paid")

	// ErrNoLineItems prevents raising an invoice with nothing on it.
	ErrNoLineItems = errors.New("invoice has no line items")
)
