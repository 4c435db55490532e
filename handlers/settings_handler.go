package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"courierhub/models"
	"courierhub/repository"
)

type SettingsHandler struct {
	Repo repository.SettingsRepository
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Repo.GetSettings()
	if err != nil {
		serverError(w, err)
		return
	}
	if s == nil {
		notFound(w, "settings not configured")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: s})
}

// SaveSettings upserts the single company profile. CompanyState and the
// service rate table take effect on the next booking or invoice.
func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var s models.CompanySettings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if s.CompanyName == "" {
		missing = append(missing, "companyName")
	}
	if s.State == "" {
		missing = append(missing, "state")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = &now

	if err := h.Repo.SaveSettings(&s); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Settings saved", Data: s})
}
