package handlers

import (
	"net/http"
	"time"

	"courierhub/models"
	"courierhub/rating"
	"courierhub/repository"
)

type ReportHandler struct {
	Bookings repository.BookingRepository
	Invoices repository.InvoiceRepository
}

func parseDateRange(r *http.Request) (time.Time, time.Time, []string) {
	q := r.URL.Query()
	var missing []string

	from, err := time.Parse("2006-01-02", q.Get("from"))
	if err != nil {
		missing = append(missing, "from")
	}
	to, err := time.Parse("2006-01-02", q.Get("to"))
	if err != nil {
		missing = append(missing, "to")
	}
	// The range is inclusive of the "to" day.
	to = to.AddDate(0, 0, 1)
	return from, to, missing
}

// BookingRegister lists every booking in a date range with its charges,
// the raw material for the daily booking register.
func (h *ReportHandler) BookingRegister(w http.ResponseWriter, r *http.Request) {
	from, to, missing := parseDateRange(r)
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	list, err := h.Bookings.GetBookingsBetween(from, to)
	if err != nil {
		serverError(w, err)
		return
	}

	out := make([]models.Booking, 0, len(list))
	var totalAmount, totalWeight float64
	for _, b := range list {
		out = append(out, roundedBooking(b))
		totalAmount += b.Charges.TotalAmount
		totalWeight += b.WeightKg
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]interface{}{
		"bookings":    out,
		"count":       len(out),
		"totalAmount": rating.Round2(totalAmount),
		"totalWeight": rating.Round2(totalWeight),
	}})
}

// StatusCounts returns the booking count per status across the whole store.
func (h *ReportHandler) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Bookings.CountByStatus()
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: counts})
}

// RevenueSummary aggregates invoiced, collected and outstanding amounts
// over a date range. Cancelled invoices are excluded.
func (h *ReportHandler) RevenueSummary(w http.ResponseWriter, r *http.Request) {
	from, to, missing := parseDateRange(r)
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	list, err := h.Invoices.GetInvoicesBetween(from, to)
	if err != nil {
		serverError(w, err)
		return
	}

	var invoiced, collected, outstanding, tax float64
	byStatus := make(map[string]int)
	count := 0
	for _, inv := range list {
		byStatus[inv.PaymentStatus]++
		if inv.PaymentStatus == models.InvoiceStatusCancelled {
			continue
		}
		count++
		invoiced += inv.GrandTotal
		collected += inv.PaidAmount
		outstanding += inv.BalanceAmount
		tax += inv.TotalTax
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]interface{}{
		"invoiceCount": count,
		"invoiced":     rating.Round2(invoiced),
		"collected":    rating.Round2(collected),
		"outstanding":  rating.Round2(outstanding),
		"totalTax":     rating.Round2(tax),
		"byStatus":     byStatus,
	}})
}
