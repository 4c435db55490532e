package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"courierhub/models"
	"courierhub/repository"
)

type ShipperHandler struct {
	Repo repository.ShipperRepository
}

func missingShipperFields(s *models.Shipper) []string {
	var missing []string
	if s.ShipperID == "" {
		missing = append(missing, "shipperId")
	}
	if s.Name == "" {
		missing = append(missing, "name")
	}
	if s.Phone == "" {
		missing = append(missing, "phone")
	}
	if s.Address == "" {
		missing = append(missing, "address")
	}
	if s.City == "" {
		missing = append(missing, "city")
	}
	if s.State == "" {
		missing = append(missing, "state")
	}
	if s.Pincode == "" {
		missing = append(missing, "pincode")
	}
	return missing
}

func (h *ShipperHandler) CreateShipper(w http.ResponseWriter, r *http.Request) {
	var s models.Shipper
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	if missing := missingShipperFields(&s); len(missing) > 0 {
		validationError(w, missing)
		return
	}

	existing, err := h.Repo.GetShipperByID(s.ShipperID)
	if err != nil {
		serverError(w, err)
		return
	}
	if existing != nil {
		badRequest(w, "shipper "+s.ShipperID+" already exists")
		return
	}

	s.Active = true
	s.TotalBookings = 0
	s.CreatedAt = time.Now().UTC()

	if err := h.Repo.CreateShipper(&s); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Shipper created", Data: s})
}

func (h *ShipperHandler) GetShipperByID(w http.ResponseWriter, r *http.Request, shipperID string) {
	s, err := h.Repo.GetShipperByID(shipperID)
	if err != nil {
		serverError(w, err)
		return
	}
	if s == nil {
		notFound(w, "shipper not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: s})
}

func (h *ShipperHandler) GetShippers(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for _, key := range []string{"city", "state", "branch", "zone"} {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}
	if v := q.Get("active"); v != "" {
		filters["active"] = v == "true"
	}

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	list, err := h.Repo.GetShippers(filters, page, limit)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

// UpdateShipper replaces the shipper's editable fields. The booking stat
// and creation timestamp are preserved from the stored document.
func (h *ShipperHandler) UpdateShipper(w http.ResponseWriter, r *http.Request, shipperID string) {
	existing, err := h.Repo.GetShipperByID(shipperID)
	if err != nil {
		serverError(w, err)
		return
	}
	if existing == nil {
		notFound(w, "shipper not found")
		return
	}

	var s models.Shipper
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	s.ShipperID = shipperID
	if missing := missingShipperFields(&s); len(missing) > 0 {
		validationError(w, missing)
		return
	}

	now := time.Now().UTC()
	s.ID = existing.ID
	s.TotalBookings = existing.TotalBookings
	s.CreatedAt = existing.CreatedAt
	s.UpdatedAt = &now

	if err := h.Repo.UpdateShipper(&s); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Shipper updated", Data: s})
}
