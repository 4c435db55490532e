package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"courierhub/models"
	"courierhub/repository"
	"courierhub/utils"
)

type APIKeyHandler struct {
	Repo repository.APIKeyRepository
}

type createAPIKeyRequest struct {
	Name        string   `json:"name"`
	ShipperID   string   `json:"shipperId,omitempty"`
	Permissions []string `json:"permissions"`
	DailyLimit  int64    `json:"dailyLimit,omitempty"`
	MinuteLimit int64    `json:"minuteLimit,omitempty"`
}

// CreateAPIKey issues a new integrator credential. The plaintext secret
// appears in this response and nowhere else; only its hash is stored.
func (h *APIKeyHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req createAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if len(req.Permissions) == 0 {
		missing = append(missing, "permissions")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	apiKey, err := utils.GenerateAPIKey()
	if err != nil {
		serverError(w, err)
		return
	}
	secret, err := utils.GenerateAPISecret()
	if err != nil {
		serverError(w, err)
		return
	}

	dailyLimit := req.DailyLimit
	if dailyLimit == 0 {
		dailyLimit = 1000
	}
	minuteLimit := req.MinuteLimit
	if minuteLimit == 0 {
		minuteLimit = 60
	}

	k := models.APIKey{
		Name:        req.Name,
		ShipperID:   req.ShipperID,
		APIKey:      apiKey,
		SecretHash:  utils.HashAPISecret(secret),
		Permissions: req.Permissions,
		DailyLimit:  dailyLimit,
		MinuteLimit: minuteLimit,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.Repo.CreateAPIKey(&k); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "API key created", Data: map[string]interface{}{
		"name":        k.Name,
		"apiKey":      k.APIKey,
		"apiSecret":   secret,
		"permissions": k.Permissions,
		"dailyLimit":  k.DailyLimit,
		"minuteLimit": k.MinuteLimit,
	}})
}

func (h *APIKeyHandler) GetAPIKeys(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	if v := q.Get("shipperId"); v != "" {
		filters["shipperId"] = v
	}
	if v := q.Get("active"); v != "" {
		filters["active"] = v == "true"
	}

	list, err := h.Repo.GetAPIKeys(filters)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

type updateAPIKeyRequest struct {
	Permissions []string `json:"permissions,omitempty"`
	DailyLimit  *int64   `json:"dailyLimit,omitempty"`
	MinuteLimit *int64   `json:"minuteLimit,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// UpdateAPIKey changes permissions, limits or the active flag. The key and
// secret themselves are immutable; revoke and reissue to rotate.
func (h *APIKeyHandler) UpdateAPIKey(w http.ResponseWriter, r *http.Request, apiKey string) {
	k, err := h.Repo.GetAPIKeyByKey(apiKey)
	if err != nil {
		serverError(w, err)
		return
	}
	if k == nil {
		notFound(w, "API key not found")
		return
	}

	var req updateAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	if req.Permissions != nil {
		k.Permissions = req.Permissions
	}
	if req.DailyLimit != nil {
		k.DailyLimit = *req.DailyLimit
	}
	if req.MinuteLimit != nil {
		k.MinuteLimit = *req.MinuteLimit
	}
	if req.Active != nil {
		k.Active = *req.Active
	}

	if err := h.Repo.UpdateAPIKey(k); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "API key updated", Data: k})
}

// RevokeAPIKey deactivates a key without deleting its usage history.
func (h *APIKeyHandler) RevokeAPIKey(w http.ResponseWriter, r *http.Request, apiKey string) {
	k, err := h.Repo.GetAPIKeyByKey(apiKey)
	if err != nil {
		serverError(w, err)
		return
	}
	if k == nil {
		notFound(w, "API key not found")
		return
	}

	k.Active = false
	if err := h.Repo.UpdateAPIKey(k); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "API key revoked"})
}
