package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"courierhub/ledger"
	"courierhub/models"
	"courierhub/repository"
	"courierhub/sequence"

	"github.com/google/uuid"
)

type PaymentHandler struct {
	Repo repository.PaymentRepository
	Seq  *sequence.Generator
}

type createPaymentRequest struct {
	InvoiceNumber string  `json:"invoiceNumber,omitempty"`
	AWBNumber     string  `json:"awbNumber,omitempty"`
	ShipperID     string  `json:"shipperId,omitempty"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency,omitempty"`
	Gateway       string  `json:"gateway"`
}

// CreatePayment opens a gateway payment in Pending with a fresh transaction
// id and gateway reference.
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if req.Amount <= 0 {
		missing = append(missing, "amount")
	}
	if req.Gateway == "" {
		missing = append(missing, "gateway")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	txn, err := h.Seq.Next(r.Context(), sequence.ClassTransaction)
	if err != nil {
		serverError(w, err)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	now := time.Now().UTC()
	p := models.Payment{
		TransactionID: txn,
		InvoiceNumber: req.InvoiceNumber,
		AWBNumber:     req.AWBNumber,
		ShipperID:     req.ShipperID,
		Amount:        req.Amount,
		Currency:      currency,
		Gateway:       req.Gateway,
		GatewayRef:    uuid.NewString(),
		Status:        models.PaymentStatusPending,
		StatusHistory: []models.StatusEvent{{
			Status:    models.PaymentStatusPending,
			Remarks:   "Payment initiated",
			Timestamp: now,
			UpdatedBy: actorFrom(r),
		}},
		CreatedAt: now,
	}

	if err := h.Repo.CreatePayment(&p); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Payment created", Data: p})
}

func (h *PaymentHandler) GetPaymentByTransactionID(w http.ResponseWriter, r *http.Request, txnID string) {
	p, err := h.Repo.GetPaymentByTransactionID(txnID)
	if err != nil {
		serverError(w, err)
		return
	}
	if p == nil {
		notFound(w, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: p})
}

func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for _, key := range []string{"status", "gateway", "invoiceNumber", "shipperId"} {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	list, err := h.Repo.GetPayments(filters, page, limit)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

type paymentStatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`
}

// UpdateStatus moves a payment through the gateway state machine.
func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, txnID string) {
	var req paymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if req.Status == "" {
		validationError(w, []string{"status"})
		return
	}

	p, err := h.Repo.GetPaymentByTransactionID(txnID)
	if err != nil {
		serverError(w, err)
		return
	}
	if p == nil {
		notFound(w, "payment not found")
		return
	}

	if err := ledger.AppendPaymentStatus(p, req.Status, req.Remarks, actorFrom(r)); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Repo.UpdatePayment(p); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Payment status updated", Data: p})
}

// Refund moves a completed payment to Refunded.
func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request, txnID string) {
	var req paymentStatusRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	p, err := h.Repo.GetPaymentByTransactionID(txnID)
	if err != nil {
		serverError(w, err)
		return
	}
	if p == nil {
		notFound(w, "payment not found")
		return
	}

	remarks := req.Remarks
	if remarks == "" {
		remarks = "Refund issued"
	}
	if err := ledger.AppendPaymentStatus(p, models.PaymentStatusRefunded, remarks, actorFrom(r)); err != nil {
		respondError(w, err)
		return
	}
	if err := h.Repo.UpdatePayment(p); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Payment refunded", Data: p})
}
