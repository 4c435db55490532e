package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shared case statuses for exceptions and support tickets:
// Open -> In Progress -> Resolved -> Closed, with Escalated reachable
// from any non-terminal state. Closed is terminal.
const (
	CaseStatusOpen       = "Open"
	CaseStatusInProgress = "In Progress"
	CaseStatusResolved   = "Resolved"
	CaseStatusClosed     = "Closed"
	CaseStatusEscalated  = "Escalated"
)

const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

const (
	ExceptionTypeDamaged      = "Damaged"
	ExceptionTypeLost         = "Lost"
	ExceptionTypeDelayed      = "Delayed"
	ExceptionTypeWrongAddress = "Wrong Address"
	ExceptionTypeRefused      = "Refused"
)

type Exception struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ExceptionNumber string             `json:"exceptionNumber" bson:"exceptionNumber"`
	AWBNumber       string             `json:"awbNumber" bson:"awbNumber"`
	Type            string             `json:"type" bson:"type"`
	Priority        string             `json:"priority" bson:"priority"`
	Description     string             `json:"description" bson:"description"`
	Status          string             `json:"status" bson:"status"`
	StatusHistory   []StatusEvent      `json:"statusHistory" bson:"statusHistory"`
	AssignedTo      string             `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	ReportedBy      string             `json:"reportedBy,omitempty" bson:"reportedBy,omitempty"`
	ResolvedAt      *time.Time         `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// DefaultExceptionPriority maps an exception type to its priority when the
// caller does not supply one explicitly.
func DefaultExceptionPriority(exceptionType string) string {
	switch exceptionType {
	case ExceptionTypeLost:
		return PriorityCritical
	case ExceptionTypeDamaged, ExceptionTypeWrongAddress:
		return PriorityHigh
	case ExceptionTypeDelayed:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
