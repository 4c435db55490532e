package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"courierhub/billing"
	"courierhub/models"
	"courierhub/rating"
	"courierhub/repository"
	"courierhub/sequence"
	"courierhub/utils"
)

type InvoiceHandler struct {
	Repo     repository.InvoiceRepository
	Bookings repository.BookingRepository
	Shippers repository.ShipperRepository
	Settings repository.SettingsRepository
	Seq      *sequence.Generator
	PDF      *repository.PDFRepository
}

// roundedInvoice rounds the money block for the wire. Stored values keep
// full precision; GrandTotal and RoundOff are already rounded at compose.
func roundedInvoice(inv *models.Invoice) models.Invoice {
	out := *inv
	out.Subtotal = rating.Round2(out.Subtotal)
	out.DiscountAmount = rating.Round2(out.DiscountAmount)
	out.TaxableAmount = rating.Round2(out.TaxableAmount)
	out.CGST = rating.Round2(out.CGST)
	out.SGST = rating.Round2(out.SGST)
	out.IGST = rating.Round2(out.IGST)
	out.TotalTax = rating.Round2(out.TotalTax)
	out.RoundOff = rating.Round2(out.RoundOff)
	out.PaidAmount = rating.Round2(out.PaidAmount)
	out.BalanceAmount = rating.Round2(out.BalanceAmount)
	return out
}

type createInvoiceRequest struct {
	ShipperID    string            `json:"shipperId"`
	AWBNumbers   []string          `json:"awbNumbers,omitempty"`
	LineItems    []models.LineItem `json:"lineItems,omitempty"`
	Discount     float64           `json:"discount,omitempty"`
	DiscountType string            `json:"discountType,omitempty"`
	DueDate      *time.Time        `json:"dueDate,omitempty"`
	Notes        string            `json:"notes,omitempty"`
}

// CreateInvoice raises an invoice either from explicit line items or from
// the stored charges of the referenced bookings.
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if req.ShipperID == "" {
		missing = append(missing, "shipperId")
	}
	if len(req.LineItems) == 0 && len(req.AWBNumbers) == 0 {
		missing = append(missing, "lineItems")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	shipper, err := h.Shippers.GetShipperByID(req.ShipperID)
	if err != nil {
		serverError(w, err)
		return
	}
	if shipper == nil {
		notFound(w, "shipper not found")
		return
	}

	settings, err := h.Settings.GetSettings()
	if err != nil {
		serverError(w, err)
		return
	}
	companyState := ""
	gstRate := 0.0
	dueDays := 15
	if settings != nil {
		companyState = settings.State
		gstRate = settings.GSTRate
		if settings.InvoiceDueDays > 0 {
			dueDays = settings.InvoiceDueDays
		}
	}

	inv := models.Invoice{
		Shipper:      shipper.Snapshot(),
		AWBNumbers:   req.AWBNumbers,
		InvoiceDate:  time.Now().UTC(),
		Discount:     req.Discount,
		DiscountType: req.DiscountType,
		Notes:        req.Notes,
		CreatedBy:    actorFrom(r),
	}
	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	} else {
		inv.DueDate = inv.InvoiceDate.AddDate(0, 0, dueDays)
	}

	if len(req.LineItems) > 0 {
		items := billing.NormalizeItems(req.LineItems)
		totals, err := billing.Compose(billing.ComposeInput{
			Items:        items,
			Discount:     req.Discount,
			DiscountType: req.DiscountType,
			ShipperState: shipper.State,
			CompanyState: companyState,
			GSTRate:      gstRate,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		inv.LineItems = items
		billing.Apply(&inv, totals)
	} else {
		bookings, err := h.Bookings.GetBookingsByAWBs(req.AWBNumbers)
		if err != nil {
			serverError(w, err)
			return
		}
		if len(bookings) != len(req.AWBNumbers) {
			notFound(w, "one or more bookings not found")
			return
		}

		// Booking charges carry their own GST, reused verbatim; totals
		// from multiple bookings simply accumulate.
		var items []models.LineItem
		var combined billing.Totals
		for _, b := range bookings {
			bi, bt := billing.FromBookingCharges(b, shipper.State, companyState, gstRate)
			items = append(items, bi...)
			combined.Subtotal += bt.Subtotal
			combined.TaxableAmount += bt.TaxableAmount
			combined.CGST += bt.CGST
			combined.SGST += bt.SGST
			combined.IGST += bt.IGST
			combined.GSTRate = bt.GSTRate
		}
		combined.TotalTax = combined.CGST + combined.SGST + combined.IGST
		beforeRound := combined.TaxableAmount + combined.TotalTax
		combined.GrandTotal = math.Round(beforeRound)
		combined.RoundOff = combined.GrandTotal - beforeRound

		inv.LineItems = items
		billing.Apply(&inv, combined)
	}

	number, err := h.Seq.Next(r.Context(), sequence.ClassInvoice)
	if err != nil {
		serverError(w, err)
		return
	}
	inv.InvoiceNumber = number

	billing.RecomputeStatus(&inv, time.Now().UTC())

	if err := h.Repo.CreateInvoice(&inv); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Invoice created", Data: roundedInvoice(&inv)})
}

func (h *InvoiceHandler) GetInvoiceByNumber(w http.ResponseWriter, r *http.Request, number string) {
	inv, err := h.Repo.GetInvoiceByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if inv == nil {
		notFound(w, "invoice not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: roundedInvoice(inv)})
}

func (h *InvoiceHandler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	if v := q.Get("shipperId"); v != "" {
		filters["shipper.shipperId"] = v
	}
	if v := q.Get("paymentStatus"); v != "" {
		filters["paymentStatus"] = v
	}

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	list, err := h.Repo.GetInvoices(filters, page, limit)
	if err != nil {
		serverError(w, err)
		return
	}
	out := make([]models.Invoice, 0, len(list))
	for _, inv := range list {
		out = append(out, roundedInvoice(inv))
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: out})
}

type updateInvoiceRequest struct {
	DueDate *time.Time `json:"dueDate,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
}

// UpdateInvoice edits the mutable fields of an open invoice. Paid and
// cancelled invoices are locked; money corrections go through payments or
// a fresh invoice, never through edits.
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request, number string) {
	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if req.DueDate == nil && req.Notes == nil {
		badRequest(w, "nothing to update: provide dueDate or notes")
		return
	}

	inv, err := h.Repo.GetInvoiceByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if inv == nil {
		notFound(w, "invoice not found")
		return
	}

	if err := billing.Editable(inv); err != nil {
		respondError(w, err)
		return
	}

	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	billing.RecomputeStatus(inv, time.Now().UTC())

	if err := h.Repo.UpdateInvoice(inv); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Invoice updated", Data: roundedInvoice(inv)})
}

type recordPaymentRequest struct {
	Amount    float64    `json:"amount"`
	Mode      string     `json:"mode"`
	Reference string     `json:"reference,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
}

// RecordPayment applies a payment against an invoice's balance.
func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request, number string) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if req.Mode == "" {
		validationError(w, []string{"mode"})
		return
	}

	inv, err := h.Repo.GetInvoiceByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if inv == nil {
		notFound(w, "invoice not found")
		return
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}
	if err := billing.RecordPayment(inv, req.Amount, req.Mode, req.Reference, actorFrom(r), date); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Repo.UpdateInvoice(inv); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Payment recorded", Data: roundedInvoice(inv)})
}

// CancelInvoice voids an unpaid invoice.
func (h *InvoiceHandler) CancelInvoice(w http.ResponseWriter, r *http.Request, number string) {
	inv, err := h.Repo.GetInvoiceByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if inv == nil {
		notFound(w, "invoice not found")
		return
	}

	if err := billing.Cancel(inv); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Repo.UpdateInvoice(inv); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Invoice cancelled", Data: roundedInvoice(inv)})
}

// DeleteInvoice removes an invoice that has never collected a payment.
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request, number string) {
	inv, err := h.Repo.GetInvoiceByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if inv == nil {
		notFound(w, "invoice not found")
		return
	}
	if inv.PaidAmount > 0 {
		respondError(w, billing.ErrHasPayments)
		return
	}

	if err := h.Repo.DeleteInvoice(number); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Invoice deleted"})
}

// DownloadPDF renders the invoice through headless Chrome and streams the
// PDF back.
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request, number string) {
	pdf, err := utils.GenerateInvoicePDF(h.PDF, number)
	if err != nil {
		respondError(w, err)
		return
	}
	if pdf == nil {
		notFound(w, "invoice not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+number+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// PublishPDF renders the invoice and stores it in object storage, returning
// the public URL for sharing with the billed party.
func (h *InvoiceHandler) PublishPDF(w http.ResponseWriter, r *http.Request, number string) {
	pdf, err := utils.GenerateInvoicePDF(h.PDF, number)
	if err != nil {
		respondError(w, err)
		return
	}
	if pdf == nil {
		notFound(w, "invoice not found")
		return
	}

	url, err := utils.UploadInvoicePDF(number, pdf)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Invoice PDF published", Data: map[string]string{"pdfUrl": url}})
}
