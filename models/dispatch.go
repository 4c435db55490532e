package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DispatchStatusScheduled = "Scheduled"
	DispatchStatusInTransit = "In Transit"
	DispatchStatusCompleted = "Completed"
)

// Dispatch is a vehicle run carrying bookings out for line-haul or delivery.
// Totals follow the same creation-time snapshot semantics as Manifest.
type Dispatch struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	DispatchNumber string             `json:"dispatchNumber" bson:"dispatchNumber"`
	VehicleNumber  string             `json:"vehicleNumber" bson:"vehicleNumber"`
	DriverName     string             `json:"driverName,omitempty" bson:"driverName,omitempty"`
	DriverPhone    string             `json:"driverPhone,omitempty" bson:"driverPhone,omitempty"`
	Route          string             `json:"route,omitempty" bson:"route,omitempty"`
	AWBNumbers     []string           `json:"awbNumbers" bson:"awbNumbers"`
	TotalBookings  int                `json:"totalBookings" bson:"totalBookings"`
	TotalWeightKg  float64            `json:"totalWeight" bson:"totalWeight"`
	TotalPieces    int                `json:"totalPieces" bson:"totalPieces"`
	TotalCODAmount float64            `json:"totalCodAmount" bson:"totalCodAmount"`
	TotalsAsOf     time.Time          `json:"totalsAsOf" bson:"totalsAsOf"`
	Status         string             `json:"status" bson:"status"`
	DispatchDate   time.Time          `json:"dispatchDate" bson:"dispatchDate"`
	CreatedBy      string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
