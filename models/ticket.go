package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TicketCategoryBilling  = "Billing"
	TicketCategoryTracking = "Tracking"
	TicketCategoryPickup   = "Pickup"
	TicketCategoryGeneral  = "General"
	TicketCategoryClaim    = "Claim"
)

type SupportTicket struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TicketNumber  string             `json:"ticketNumber" bson:"ticketNumber"`
	ShipperID     string             `json:"shipperId,omitempty" bson:"shipperId,omitempty"`
	AWBNumber     string             `json:"awbNumber,omitempty" bson:"awbNumber,omitempty"`
	Subject       string             `json:"subject" bson:"subject"`
	Category      string             `json:"category" bson:"category"`
	Priority      string             `json:"priority" bson:"priority"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Status        string             `json:"status" bson:"status"`
	StatusHistory []StatusEvent      `json:"statusHistory" bson:"statusHistory"`
	AssignedTo    string             `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	CreatedBy     string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// DefaultTicketPriority maps a ticket category to a priority when none is
// supplied on creation.
func DefaultTicketPriority(category string) string {
	switch category {
	case TicketCategoryClaim:
		return PriorityHigh
	case TicketCategoryBilling, TicketCategoryTracking:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
