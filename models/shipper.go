package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Shipper struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ShipperID     string             `json:"shipperId" bson:"shipperId"`
	Name          string             `json:"name" bson:"name"`
	ContactPerson string             `json:"contactPerson,omitempty" bson:"contactPerson,omitempty"`
	Phone         string             `json:"phone" bson:"phone"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	Address       string             `json:"address" bson:"address"`
	City          string             `json:"city" bson:"city"`
	State         string             `json:"state" bson:"state"`
	Pincode       string             `json:"pincode" bson:"pincode"`
	GSTIN         string             `json:"gstin,omitempty" bson:"gstin,omitempty"`
	Branch        string             `json:"branch,omitempty" bson:"branch,omitempty"`
	Zone          string             `json:"zone,omitempty" bson:"zone,omitempty"`
	CreditDays    int                `json:"creditDays,omitempty" bson:"creditDays,omitempty"`
	Active        bool               `json:"active" bson:"active"`
	TotalBookings int64              `json:"totalBookings" bson:"totalBookings"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Snapshot freezes the shipper into the shape stored on invoices.
func (s *Shipper) Snapshot() ShipperSnapshot {
	return ShipperSnapshot{
		ShipperID: s.ShipperID,
		Name:      s.Name,
		Address:   s.Address,
		City:      s.City,
		State:     s.State,
		Pincode:   s.Pincode,
		GSTIN:     s.GSTIN,
	}
}
