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

type ExceptionHandler struct {
	Repo     repository.ExceptionRepository
	Bookings repository.BookingRepository
	Seq      *sequence.Generator
}

type createExceptionRequest struct {
	AWBNumber   string `json:"awbNumber"`
	Type        string `json:"type"`
	Priority    string `json:"priority,omitempty"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo,omitempty"`
}

// CreateException opens an exception case against a booking. Priority is
// derived from the exception type unless the caller supplies one.
func (h *ExceptionHandler) CreateException(w http.ResponseWriter, r *http.Request) {
	var req createExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if req.AWBNumber == "" {
		missing = append(missing, "awbNumber")
	}
	if req.Type == "" {
		missing = append(missing, "type")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	b, err := h.Bookings.GetBookingByAWB(req.AWBNumber)
	if err != nil {
		serverError(w, err)
		return
	}
	if b == nil {
		notFound(w, "booking not found")
		return
	}

	number, err := h.Seq.Next(r.Context(), sequence.ClassException)
	if err != nil {
		serverError(w, err)
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.DefaultExceptionPriority(req.Type)
	}

	now := time.Now().UTC()
	e := models.Exception{
		ExceptionNumber: number,
		AWBNumber:       req.AWBNumber,
		Type:            req.Type,
		Priority:        priority,
		Description:     req.Description,
		Status:          models.CaseStatusOpen,
		StatusHistory: []models.StatusEvent{{
			Status:    models.CaseStatusOpen,
			Remarks:   req.Description,
			Timestamp: now,
			UpdatedBy: actorFrom(r),
		}},
		AssignedTo: req.AssignedTo,
		ReportedBy: actorFrom(r),
		CreatedAt:  now,
	}

	if err := h.Repo.CreateException(&e); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Exception created", Data: e})
}

func (h *ExceptionHandler) GetExceptionByNumber(w http.ResponseWriter, r *http.Request, number string) {
	e, err := h.Repo.GetExceptionByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if e == nil {
		notFound(w, "exception not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: e})
}

func (h *ExceptionHandler) GetExceptions(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for _, key := range []string{"status", "type", "priority", "awbNumber", "assignedTo"} {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	list, err := h.Repo.GetExceptions(filters, page, limit)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

type caseStatusRequest struct {
	Status     string `json:"status"`
	Remarks    string `json:"remarks,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
}

// UpdateStatus moves the exception through the case state machine.
func (h *ExceptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, number string) {
	var req caseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if req.Status == "" {
		validationError(w, []string{"status"})
		return
	}

	e, err := h.Repo.GetExceptionByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if e == nil {
		notFound(w, "exception not found")
		return
	}

	status, history, err := ledger.AppendCaseStatus(e.Status, e.StatusHistory, req.Status, req.Remarks, actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	now := time.Now().UTC()
	e.Status = status
	e.StatusHistory = history
	e.UpdatedAt = &now
	if req.AssignedTo != "" {
		e.AssignedTo = req.AssignedTo
	}
	if status == models.CaseStatusResolved {
		e.ResolvedAt = &now
	}

	if err := h.Repo.UpdateException(e); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Exception status updated", Data: e})
}

// AddComment appends a remark to the case history without changing status.
func (h *ExceptionHandler) AddComment(w http.ResponseWriter, r *http.Request, number string) {
	var req caseStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if req.Remarks == "" {
		validationError(w, []string{"remarks"})
		return
	}

	e, err := h.Repo.GetExceptionByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if e == nil {
		notFound(w, "exception not found")
		return
	}

	now := time.Now().UTC()
	e.StatusHistory = append(e.StatusHistory, models.StatusEvent{
		Status:    e.Status,
		Remarks:   req.Remarks,
		Timestamp: now,
		UpdatedBy: actorFrom(r),
	})
	e.UpdatedAt = &now

	if err := h.Repo.UpdateException(e); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Comment added", Data: e})
}
