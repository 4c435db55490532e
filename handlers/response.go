package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"courierhub/billing"
	"courierhub/ledger"
	"courierhub/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// validationError returns the enumerated list of missing required fields.
func validationError(w http.ResponseWriter, missing []string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success":        false,
		"message":        "required fields missing",
		"requiredFields": missing,
	})
}

func notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: message})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Message: message})
}

func forbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, ApiResponse{Success: false, Message: message})
}

// serverError logs the underlying error in full and returns a redacted
// message; internal details never reach the caller.
func serverError(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, ApiResponse{
		Success: false,
		Message: "internal server error",
	})
}

// respondError maps domain errors onto the response taxonomy: state
// conflicts are 400s with a descriptive reason, duplicate generated
// identifiers are 409s, missing documents are 404s.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrTerminalState),
		errors.Is(err, ledger.ErrInvalidTransition),
		errors.Is(err, billing.ErrInvalidAmount),
		errors.Is(err, billing.ErrHasPayments),
		errors.Is(err, billing.ErrInvoiceCancelled),
		errors.Is(err, billing.ErrInvoicePaid),
		errors.Is(err, billing.ErrNoLineItems):
		badRequest(w, err.Error())
	case errors.Is(err, repository.ErrDuplicateKey):
		writeJSON(w, http.StatusConflict, ApiResponse{
			Success: false,
			Message: "generated identifier already exists, please retry the request",
		})
	case errors.Is(err, mongo.ErrNoDocuments):
		notFound(w, "record not found")
	default:
		serverError(w, err)
	}
}
