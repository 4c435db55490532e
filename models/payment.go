package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gateway payment state machine:
// Pending -> Processing -> Completed | Failed | Cancelled,
// and Completed -> Refunded as the only post-terminal transition.
const (
	PaymentStatusPending    = "Pending"
	PaymentStatusProcessing = "Processing"
	PaymentStatusCompleted  = "Completed"
	PaymentStatusFailed     = "Failed"
	PaymentStatusCancelled  = "Cancelled"
	PaymentStatusRefunded   = "Refunded"
)

const (
	GatewayPayPal = "PayPal"
	GatewaySkrill = "Skrill"
	GatewayManual = "Manual"
)

type Payment struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	InvoiceNumber string             `json:"invoiceNumber,omitempty" bson:"invoiceNumber,omitempty"`
	AWBNumber     string             `json:"awbNumber,omitempty" bson:"awbNumber,omitempty"`
	ShipperID     string             `json:"shipperId,omitempty" bson:"shipperId,omitempty"`
	Amount        float64            `json:"amount" bson:"amount"`
	Currency      string             `json:"currency" bson:"currency"`
	Gateway       string             `json:"gateway" bson:"gateway"`
	GatewayRef    string             `json:"gatewayRef,omitempty" bson:"gatewayRef,omitempty"`
	Status        string             `json:"status" bson:"status"`
	StatusHistory []StatusEvent      `json:"statusHistory" bson:"statusHistory"`
	FailureReason string             `json:"failureReason,omitempty" bson:"failureReason,omitempty"`
	CompletedAt   *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
