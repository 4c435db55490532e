package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// APIKey gates the integrator subset of the API. The plaintext secret is
// returned exactly once at creation; only its SHA-256 digest is stored.
// Usage counters are read-increment-write with per-day and per-minute
// windows; the race this implies is accepted at the intended QPS.
type APIKey struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	ShipperID    string             `json:"shipperId,omitempty" bson:"shipperId,omitempty"`
	APIKey       string             `json:"apiKey" bson:"apiKey"`           // ak_{32 hex}
	SecretHash   string             `json:"-" bson:"secretHash"`            // sha256 of sk_{64 hex}
	Permissions  []string           `json:"permissions" bson:"permissions"` // dot-namespaced, e.g. booking.create
	DailyLimit   int64              `json:"dailyLimit" bson:"dailyLimit"`
	MinuteLimit  int64              `json:"minuteLimit" bson:"minuteLimit"`
	DayWindow    string             `json:"-" bson:"dayWindow"` // YYYYMMDD
	DayCount     int64              `json:"-" bson:"dayCount"`
	MinuteWindow string             `json:"-" bson:"minuteWindow"` // YYYYMMDDHHMM
	MinuteCount  int64              `json:"-" bson:"minuteCount"`
	Active       bool               `json:"active" bson:"active"`
	LastUsedAt   *time.Time         `json:"lastUsedAt,omitempty" bson:"lastUsedAt,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// HasPermission checks a dot-namespaced permission string against the key.
func (k *APIKey) HasPermission(perm string) bool {
	for _, p := range k.Permissions {
		if p == perm || p == "*" {
			return true
		}
	}
	return false
}
