package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ManifestStatusOpen     = "Open"
	ManifestStatusClosed   = "Closed"
	ManifestStatusDeparted = "Departed"
)

// Manifest groups bookings moving together between branches. The totals are
// snapshots summed from the referenced bookings when the manifest is created;
// TotalsAsOf records that moment and the totals are never recomputed on read.
type Manifest struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ManifestNumber    string             `json:"manifestNumber" bson:"manifestNumber"`
	OriginBranch      string             `json:"originBranch" bson:"originBranch"`
	DestinationBranch string             `json:"destinationBranch" bson:"destinationBranch"`
	VehicleNumber     string             `json:"vehicleNumber,omitempty" bson:"vehicleNumber,omitempty"`
	DriverName        string             `json:"driverName,omitempty" bson:"driverName,omitempty"`
	AWBNumbers        []string           `json:"awbNumbers" bson:"awbNumbers"`
	TotalBookings     int                `json:"totalBookings" bson:"totalBookings"`
	TotalWeightKg     float64            `json:"totalWeight" bson:"totalWeight"`
	TotalPieces       int                `json:"totalPieces" bson:"totalPieces"`
	TotalCODAmount    float64            `json:"totalCodAmount" bson:"totalCodAmount"`
	TotalsAsOf        time.Time          `json:"totalsAsOf" bson:"totalsAsOf"`
	Status            string             `json:"status" bson:"status"`
	CreatedBy         string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
