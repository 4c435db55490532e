package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses. Delivered and Cancelled are terminal: once reached,
// plain edits and further status updates are rejected.
const (
	BookingStatusBooked         = "Booked"
	BookingStatusPickedUp       = "Picked Up"
	BookingStatusInTransit      = "In Transit"
	BookingStatusOutForDelivery = "Out for Delivery"
	BookingStatusDelivered      = "Delivered"
	BookingStatusUndelivered    = "Undelivered"
	BookingStatusReturned       = "Returned"
	BookingStatusCancelled      = "Cancelled"
)

const (
	PaymentModePrepaid = "Prepaid"
	PaymentModeCOD     = "COD"
	PaymentModeToPay   = "To Pay"
	PaymentModeCredit  = "Credit"
)

// StatusEvent is one append-only entry in an entity's status history.
type StatusEvent struct {
	Status    string    `json:"status" bson:"status"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty"`
	Remarks   string    `json:"remarks,omitempty" bson:"remarks,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	UpdatedBy string    `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
}

// Consignee is stored inline on the booking as a snapshot, so later edits
// to an address book never rewrite history.
type Consignee struct {
	Name    string `json:"name" bson:"name"`
	Phone   string `json:"phone" bson:"phone"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Pincode string `json:"pincode" bson:"pincode"`
}

type Dimensions struct {
	LengthCm float64 `json:"length" bson:"length"`
	WidthCm  float64 `json:"width" bson:"width"`
	HeightCm float64 `json:"height" bson:"height"`
	Unit     string  `json:"unit,omitempty" bson:"unit,omitempty"` // cm | in
}

// Charges is the booking's stored rate breakdown. TotalAmount always equals
// the sum of the component charges plus GST.
type Charges struct {
	ShippingCharge float64 `json:"shippingCharge" bson:"shippingCharge"`
	InsuranceFee   float64 `json:"insuranceFee" bson:"insuranceFee"`
	CODCharge      float64 `json:"codCharge" bson:"codCharge"`
	FuelSurcharge  float64 `json:"fuelSurcharge" bson:"fuelSurcharge"`
	GST            float64 `json:"gst" bson:"gst"`
	TotalAmount    float64 `json:"totalAmount" bson:"totalAmount"`
}

type Booking struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AWBNumber        string             `json:"awbNumber" bson:"awbNumber"`
	ShipperID        string             `json:"shipperId" bson:"shipperId"`
	Consignee        Consignee          `json:"consignee" bson:"consignee"`
	ServiceType      string             `json:"serviceType" bson:"serviceType"`
	ShipmentType     string             `json:"shipmentType,omitempty" bson:"shipmentType,omitempty"`       // Parcel | Document
	DestinationType  string             `json:"destinationType,omitempty" bson:"destinationType,omitempty"` // Domestic | International
	OriginCity       string             `json:"originCity,omitempty" bson:"originCity,omitempty"`
	OriginState      string             `json:"originState,omitempty" bson:"originState,omitempty"`
	WeightKg         float64            `json:"weight" bson:"weight"`
	Dimensions       *Dimensions        `json:"dimensions,omitempty" bson:"dimensions,omitempty"`
	VolumetricWeight float64            `json:"volumetricWeight,omitempty" bson:"volumetricWeight,omitempty"`
	ChargeableWeight float64            `json:"chargeableWeight" bson:"chargeableWeight"`
	DeclaredValue    float64            `json:"declaredValue,omitempty" bson:"declaredValue,omitempty"`
	PaymentMode      string             `json:"paymentMode" bson:"paymentMode"`
	CODAmount        float64            `json:"codAmount,omitempty" bson:"codAmount,omitempty"`
	Charges          Charges            `json:"charges" bson:"charges"`
	Status           string             `json:"status" bson:"status"`
	StatusHistory    []StatusEvent      `json:"statusHistory" bson:"statusHistory"`
	ManifestNumber   string             `json:"manifestNumber,omitempty" bson:"manifestNumber,omitempty"`
	DispatchNumber   string             `json:"dispatchNumber,omitempty" bson:"dispatchNumber,omitempty"`
	PODImageURL      string             `json:"podImageUrl,omitempty" bson:"podImageUrl,omitempty"`
	PODReceivedBy    string             `json:"podReceivedBy,omitempty" bson:"podReceivedBy,omitempty"`
	DeliveryDate     *time.Time         `json:"deliveryDate,omitempty" bson:"deliveryDate,omitempty"`
	ReturnDate       *time.Time         `json:"returnDate,omitempty" bson:"returnDate,omitempty"`
	BookingDate      time.Time          `json:"bookingDate" bson:"bookingDate"`
	Branch           string             `json:"branch,omitempty" bson:"branch,omitempty"`
	Zone             string             `json:"zone,omitempty" bson:"zone,omitempty"`
	CreatedBy        string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// IsTerminal reports whether the booking can no longer be edited.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusDelivered || b.Status == BookingStatusCancelled
}

// Deletable bookings are ones that never left the depot.
func (b *Booking) Deletable() bool {
	return b.Status == BookingStatusBooked || b.Status == BookingStatusCancelled
}
