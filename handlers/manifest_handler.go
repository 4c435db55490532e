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

type ManifestHandler struct {
	Repo     repository.ManifestRepository
	Bookings repository.BookingRepository
	Seq      *sequence.Generator
}

type createManifestRequest struct {
	OriginBranch      string   `json:"originBranch"`
	DestinationBranch string   `json:"destinationBranch"`
	VehicleNumber     string   `json:"vehicleNumber,omitempty"`
	DriverName        string   `json:"driverName,omitempty"`
	AWBNumbers        []string `json:"awbNumbers"`
}

// snapshotTotals sums weight, pieces and COD across the referenced
// bookings. The figures are frozen at this moment; later booking edits do
// not flow back into the aggregate.
func snapshotTotals(bookings []*models.Booking) (weight float64, pieces int, cod float64) {
	for _, b := range bookings {
		weight += b.WeightKg
		pieces++
		if b.PaymentMode == models.PaymentModeCOD {
			cod += b.CODAmount
		}
	}
	return weight, pieces, cod
}

// CreateManifest groups bookings for a line-haul leg, snapshots their
// totals and stamps the manifest number onto each booking.
func (h *ManifestHandler) CreateManifest(w http.ResponseWriter, r *http.Request) {
	var req createManifestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if req.OriginBranch == "" {
		missing = append(missing, "originBranch")
	}
	if req.DestinationBranch == "" {
		missing = append(missing, "destinationBranch")
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
		if b.ManifestNumber != "" {
			badRequest(w, "booking "+b.AWBNumber+" is already on manifest "+b.ManifestNumber)
			return
		}
		if b.IsTerminal() {
			badRequest(w, "booking "+b.AWBNumber+" is in a terminal state")
			return
		}
	}

	number, err := h.Seq.Next(r.Context(), sequence.ClassManifest)
	if err != nil {
		serverError(w, err)
		return
	}

	now := time.Now().UTC()
	weight, pieces, cod := snapshotTotals(bookings)
	m := models.Manifest{
		ManifestNumber:    number,
		OriginBranch:      req.OriginBranch,
		DestinationBranch: req.DestinationBranch,
		VehicleNumber:     req.VehicleNumber,
		DriverName:        req.DriverName,
		AWBNumbers:        req.AWBNumbers,
		TotalBookings:     len(bookings),
		TotalWeightKg:     weight,
		TotalPieces:       pieces,
		TotalCODAmount:    cod,
		TotalsAsOf:        now,
		Status:            models.ManifestStatusOpen,
		CreatedBy:         actorFrom(r),
		CreatedAt:         now,
	}

	if err := h.Repo.CreateManifest(&m); err != nil {
		respondError(w, err)
		return
	}

	for _, b := range bookings {
		b.ManifestNumber = number
		if err := h.Bookings.UpdateBooking(b); err != nil {
			log.Printf("failed to stamp manifest %s on booking %s: %v", number, b.AWBNumber, err)
		}
	}

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Manifest created", Data: m})
}

func (h *ManifestHandler) GetManifestByNumber(w http.ResponseWriter, r *http.Request, number string) {
	m, err := h.Repo.GetManifestByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if m == nil {
		notFound(w, "manifest not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: m})
}

func (h *ManifestHandler) GetManifests(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for _, key := range []string{"status", "originBranch", "destinationBranch"} {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	list, err := h.Repo.GetManifests(filters, page, limit)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

type manifestStatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`
}

// UpdateStatus advances the manifest. Closing or departing a manifest
// appends an In Transit entry to every booking on it.
func (h *ManifestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, number string) {
	var req manifestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if req.Status == "" {
		validationError(w, []string{"status"})
		return
	}

	m, err := h.Repo.GetManifestByNumber(number)
	if err != nil {
		serverError(w, err)
		return
	}
	if m == nil {
		notFound(w, "manifest not found")
		return
	}

	now := time.Now().UTC()
	m.Status = req.Status
	m.UpdatedAt = &now
	if err := h.Repo.UpdateManifest(m); err != nil {
		respondError(w, err)
		return
	}

	if req.Status == models.ManifestStatusClosed || req.Status == models.ManifestStatusDeparted {
		bookings, err := h.Bookings.GetBookingsByAWBs(m.AWBNumbers)
		if err != nil {
			serverError(w, err)
			return
		}
		remarks := "Manifest " + number + " " + req.Status
		for _, b := range bookings {
			if err := ledger.AppendBookingStatus(b, models.BookingStatusInTransit, m.OriginBranch, remarks, actorFrom(r), false); err != nil {
				log.Printf("skipping status entry for booking %s on manifest %s: %v", b.AWBNumber, number, err)
				continue
			}
			if err := h.Bookings.UpdateBooking(b); err != nil {
				log.Printf("failed to update booking %s on manifest %s: %v", b.AWBNumber, number, err)
			}
		}
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Manifest status updated", Data: m})
}
