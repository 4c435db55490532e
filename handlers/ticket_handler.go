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
)

type TicketHandler struct {
	Repo repository.TicketRepository
	Seq  *sequence.Generator
}

type createTicketRequest struct {
	ShipperID   string `json:"shipperId,omitempty"`
	AWBNumber   string `json:"awbNumber,omitempty"`
	Subject     string `json:"subject"`
	Category    string `json:"category"`
	Priority    string `json:"priority,omitempty"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
}

// CreateTicket opens a support ticket. Priority defaults by category.
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if req.Subject == "" {
		missing = append(missing, "subject")
	}
	if req.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	number, err := h.Seq.Next(r.Context(), sequence.ClassTicket)
	if err != nil {
		serverError(w, err)
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.DefaultTicketPriority(req.Category)
	}

	now := time.Now().UTC()
	t := models.SupportTicket{
		TicketNumber: number,
		ShipperID:    req.ShipperID,
		AWBNumber:    req.AWBNumber,
		Subject:      req.Subject,
		Category:     req.Category,
		Priority:     priority,
		Description:  req.Description,
		Status:       models.CaseStatusOpen,
		StatusHistory: []models.StatusEvent{{
			Status:    models.CaseStatusOpen,
			Remarks:   req.Subject,
			Timestamp: now,
			UpdatedBy: actorFrom(r),
		}},
		AssignedTo: req.AssignedTo,
		CreatedBy:  actorFrom(r),
		CreatedAt:  now,
	}

	if err := h.Repo.CreateTicket(&t); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Ticket created", Data: t})
}

func (h *TicketHandler) GetTicketByNumber(w http.ResponseWriter, r *http.Request, number string) {
	t, err := h.Repo.GetTicketByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if t == nil {
		notFound(w, "ticket not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: t})
}

func (h *TicketHandler) GetTickets(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for _, key := range []string{"status", "category", "priority", "shipperId", "assignedTo"} {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	list, err := h.Repo.GetTickets(filters, page, limit)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

// UpdateStatus moves the ticket through the shared case state machine.
func (h *TicketHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, number string) {
	var req caseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if req.Status == "" {
		validationError(w, []string{"status"})
		return
	}

	t, err := h.Repo.GetTicketByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if t == nil {
		notFound(w, "ticket not found")
		return
	}

	status, history, err := ledger.AppendCaseStatus(t.Status, t.StatusHistory, req.Status, req.Remarks, actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	now := time.Now().UTC()
	t.Status = status
	t.StatusHistory = history
	t.UpdatedAt = &now
	if req.AssignedTo != "" {
		t.AssignedTo = req.AssignedTo
	}

	if err := h.Repo.UpdateTicket(t); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Ticket status updated", Data: t})
}

// AddComment appends a remark without moving the ticket.
func (h *TicketHandler) AddComment(w http.ResponseWriter, r *http.Request, number string) {
	var req caseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if req.Remarks == "" {
		validationError(w, []string{"remarks"})
		return
	}

	t, err := h.Repo.GetTicketByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if t == nil {
		notFound(w, "ticket not found")
		return
	}

	now := time.Now().UTC()
	t.StatusHistory = append(t.StatusHistory, models.StatusEvent{
		Status:    t.Status,
		Remarks:   req.Remarks,
		Timestamp: now,
		UpdatedBy: actorFrom(r),
	})
	t.UpdatedAt = &now

	if err := h.Repo.UpdateTicket(t); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Comment added", Data: t})
}
