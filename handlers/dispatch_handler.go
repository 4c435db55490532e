package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"courierhub/ledger"
	"courierhub/models"
	"courierhub/repository"
	"courierhub/sequence"
)

type DispatchHandler struct {
	Repo     repository.DispatchRepository
	Bookings repository.BookingRepository
	Seq      *sequence.Generator
}

type createDispatchRequest struct {
	VehicleNumber string   `json:"vehicleNumber"`
	DriverName    string   `json:"driverName,omitempty"`
	DriverPhone   string   `json:"driverPhone,omitempty"`
	Route         string   `json:"route,omitempty"`
	AWBNumbers    []string `json:"awbNumbers"`
}

// CreateDispatch sends bookings out for delivery on a vehicle run. Each
// booking gets the dispatch number stamped and an Out for Delivery entry.
func (h *DispatchHandler) CreateDispatch(w http.ResponseWriter, r *http.Request) {
	var req createDispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if req.VehicleNumber == "" {
		missing = append(missing, "vehicleNumber")
	}
	if len(req.AWBNumbers) == 0 {
		missing = append(missing, "awbNumbers")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	bookings, err := h.Bookings.GetBookingsByAWBs(req.AWBNumbers)
	if err != nil {
		serverError(w, err)
		return
	}
	if len(bookings) != len(req.AWBNumbers) {
		notFound(w, "one or more bookings not found")
		return
	}
	for _, b := range bookings {
		if b.IsTerminal() {
			badRequest(w, "booking "+b.AWBNumber+" is in a terminal state")
			return
		}
	}

	number, err := h.Seq.Next(r.Context(), sequence.ClassDispatch)
	if err != nil {
		serverError(w, err)
		return
	}

	now := time.Now().UTC()
	weight, pieces, cod := snapshotTotals(bookings)
	d := models.Dispatch{
		DispatchNumber: number,
		VehicleNumber:  req.VehicleNumber,
		DriverName:     req.DriverName,
		DriverPhone:    req.DriverPhone,
		Route:          req.Route,
		AWBNumbers:     req.AWBNumbers,
		TotalBookings:  len(bookings),
		TotalWeightKg:  weight,
		TotalPieces:    pieces,
		TotalCODAmount: cod,
		TotalsAsOf:     now,
		Status:         models.DispatchStatusScheduled,
		DispatchDate:   now,
		CreatedBy:      actorFrom(r),
		CreatedAt:      now,
	}

	if err := h.Repo.CreateDispatch(&d); err != nil {
		respondError(w, err)
		return
	}

	for _, b := range bookings {
		b.DispatchNumber = number
		if err := ledger.AppendBookingStatus(b, models.BookingStatusOutForDelivery, req.Route, "Dispatched on "+req.VehicleNumber, actorFrom(r), false); err != nil {
			log.Printf("skipping status entry for booking %s on dispatch %s: %v", b.AWBNumber, number, err)
		}
		if err := h.Bookings.UpdateBooking(b); err != nil {
			log.Printf("failed to stamp dispatch %s on booking %s: %v", number, b.AWBNumber, err)
		}
	}

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Dispatch created", Data: d})
}

func (h *DispatchHandler) GetDispatchByNumber(w http.ResponseWriter, r *http.Request, number string) {
	d, err := h.Repo.GetDispatchByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if d == nil {
		notFound(w, "dispatch not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: d})
}

func (h *DispatchHandler) GetDispatches(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for _, key := range []string{"status", "vehicleNumber", "route"} {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	list, err := h.Repo.GetDispatches(filters, page, limit)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

// UpdateStatus moves the dispatch between Scheduled, In Transit and
// Completed. Booking statuses are driven individually by delivery scans,
// not by the dispatch.
func (h *DispatchHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, number string) {
	var req manifestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if req.Status == "" {
		validationError(w, []string{"status"})
		return
	}

	d, err := h.Repo.GetDispatchByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if d == nil {
		notFound(w, "dispatch not found")
		return
	}

	now := time.Now().UTC()
	d.Status = req.Status
	d.UpdatedAt = &now
	if err := h.Repo.UpdateDispatch(d); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Dispatch status updated", Data: d})
}
