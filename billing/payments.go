package billing

import (
	"time"

	"courierhub/models"
)

// RecordPayment appends a payment record to the invoice, bumps the paid
// amount and recomputes the payment status. A payment must be positive and
// must not exceed the outstanding balance; overpayment is never accepted.
func RecordPayment(inv *models.Invoice, amount float64, mode, reference, actor string, date time.Time) error {
	if inv.PaymentStatus == models.InvoiceStatusCancelled {
		return ErrInvoiceCancelled
	}
	if amount <= 0 || amount > inv.BalanceAmount {
		return ErrInvalidAmount
	}

	if date.IsZero() {
		date = time.Now().UTC()
	}
	inv.Payments = append(inv.Payments, models.PaymentRecord{
		Amount:     amount,
		Mode:       mode,
		Reference:  reference,
		Date:       date,
		RecordedBy: actor,
	})
	inv.PaidAmount += amount
	inv.BalanceAmount = inv.GrandTotal - inv.PaidAmount
	RecomputeStatus(inv, time.Now().UTC())
	return nil
}

// RecomputeStatus derives the payment status from paid/grand totals and the
// due date. It runs on every save. Cancelled is sticky: no amount of paid
// arithmetic moves an invoice out of it.
func RecomputeStatus(inv *models.Invoice, now time.Time) {
	if inv.PaymentStatus == models.InvoiceStatusCancelled {
		return
	}
	switch {
	case inv.GrandTotal > 0 && inv.PaidAmount >= inv.GrandTotal:
		inv.PaymentStatus = models.InvoiceStatusPaid
	case inv.PaidAmount > 0:
		inv.PaymentStatus = models.InvoiceStatusPartiallyPaid
		if !inv.DueDate.IsZero() && now.After(inv.DueDate) {
			inv.PaymentStatus = models.InvoiceStatusOverdue
		}
	default:
		inv.PaymentStatus = models.InvoiceStatusUnpaid
		if !inv.DueDate.IsZero() && now.After(inv.DueDate) {
			inv.PaymentStatus = models.InvoiceStatusOverdue
		}
	}
}

// Cancel voids an invoice. Refuses once any payment exists, and refuses to
// cancel twice.
func Cancel(inv *models.Invoice) error {
	if inv.PaymentStatus == models.InvoiceStatusCancelled {
		return ErrInvoiceCancelled
	}
	if inv.PaidAmount > 0 {
		return ErrHasPayments
	}
	inv.PaymentStatus = models.InvoiceStatusCancelled
	return nil
}

// Editable reports whether the invoice accepts plain field edits. Paid and
// cancelled invoices are locked; corrections go through credit entries.
func Editable(inv *models.Invoice) error {
	switch inv.PaymentStatus {
	case models.InvoiceStatusCancelled:
		return ErrInvoiceCancelled
	case models.InvoiceStatusPaid:
		return ErrInvoicePaid
	}
	return nil
}
