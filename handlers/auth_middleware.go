package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"courierhub/models"
	"courierhub/repository"
	"courierhub/utils"
)

type ctxKey string

const (
	ctxClaims ctxKey = "sessionClaims"
	ctxAPIKey ctxKey = "apiKey"
)

// AuthMiddleware carries everything the route guards need: JWT config for
// back-office sessions, role lookups for permission flags, and the API key
// store for the integrator surface.
type AuthMiddleware struct {
	JWT   utils.JWTConfig
	Roles repository.RoleRepository
	Keys  repository.APIKeyRepository
}

// ClaimsFromContext returns the session claims set by RequireUser.
func ClaimsFromContext(r *http.Request) *utils.SessionClaims {
	if c, ok := r.Context().Value(ctxClaims).(*utils.SessionClaims); ok {
		return c
	}
	return nil
}

// APIKeyFromContext returns the key document set by RequireAPIKey.
func APIKeyFromContext(r *http.Request) *models.APIKey {
	if k, ok := r.Context().Value(ctxAPIKey).(*models.APIKey); ok {
		return k
	}
	return nil
}

func actorFrom(r *http.Request) string {
	if c := ClaimsFromContext(r); c != nil {
		return c.Email
	}
	if k := APIKeyFromContext(r); k != nil {
		return "apikey:" + k.Name
	}
	return ""
}

// RequireUser validates the bearer token and stores its claims.
func (a *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: "missing bearer token"})
			return
		}

		claims, err := utils.ParseJWT(strings.TrimPrefix(header, "Bearer "), a.JWT)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: "invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), ctxClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission checks one module/action flag on the caller's role.
func (a *AuthMiddleware) RequirePermission(module, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r)
			if claims == nil {
				writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: "not authenticated"})
				return
			}

			role, err := a.Roles.GetRoleByName(claims.Role)
			if err != nil {
				serverError(w, err)
				return
			}
			if role == nil || !role.Allows(module, action) {
				forbidden(w, "permission denied for "+module+"."+action)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAPIKey gates the integrator surface. It validates both headers
// against the stored key, checks the dot-namespaced permission, and
// enforces the per-day and per-minute limits. Counter updates are
// read-increment-write; the race this implies is accepted at the intended
// request rate.
func (a *AuthMiddleware) RequireAPIKey(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			apiSecret := r.Header.Get("X-API-Secret")
			if apiKey == "" || apiSecret == "" {
				writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: "X-API-Key and X-API-Secret headers are required"})
				return
			}
			if err := utils.ValidateKeyFormat(apiKey); err != nil {
				writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: "invalid API credentials"})
				return
			}

			key, err := a.Keys.GetAPIKeyByKey(apiKey)
			if err != nil {
				serverError(w, err)
				return
			}
			if key == nil || !key.Active || !utils.VerifyAPISecret(apiSecret, key.SecretHash) {
				writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: "invalid API credentials"})
				return
			}
			if !key.HasPermission(permission) {
				forbidden(w, "API key lacks permission "+permission)
				return
			}

			now := time.Now().UTC()
			day := now.Format("20060102")
			minute := now.Format("200601021504")
			if key.DayWindow != day {
				key.DayWindow = day
				key.DayCount = 0
			}
			if key.MinuteWindow != minute {
				key.MinuteWindow = minute
				key.MinuteCount = 0
			}

			if key.DailyLimit > 0 && key.DayCount >= key.DailyLimit {
				rateLimited(w, "daily", key.DayCount, key.DailyLimit)
				return
			}
			if key.MinuteLimit > 0 && key.MinuteCount >= key.MinuteLimit {
				rateLimited(w, "minute", key.MinuteCount, key.MinuteLimit)
				return
			}

			key.DayCount++
			key.MinuteCount++
			if err := a.Keys.UpdateUsage(key); err != nil {
				serverError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxAPIKey, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// rateLimited echoes current usage and the limit back per the contract.
func rateLimited(w http.ResponseWriter, window string, usage, limit int64) {
	writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
		"success": false,
		"message": "rate limit exceeded",
		"window":  window,
		"usage":   usage,
		"limit":   limit,
	})
}
