package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	InvoiceStatusUnpaid        = "Unpaid"
	InvoiceStatusPartiallyPaid = "Partially Paid"
	InvoiceStatusPaid          = "Paid"
	InvoiceStatusOverdue       = "Overdue"
	InvoiceStatusCancelled     = "Cancelled"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFlat       = "flat"
)

// ShipperSnapshot is the billing party as it was when the invoice was raised.
type ShipperSnapshot struct {
	ShipperID string `json:"shipperId" bson:"shipperId"`
	Name      string `json:"name" bson:"name"`
	Address   string `json:"address,omitempty" bson:"address,omitempty"`
	City      string `json:"city,omitempty" bson:"city,omitempty"`
	State     string `json:"state" bson:"state"`
	Pincode   string `json:"pincode,omitempty" bson:"pincode,omitempty"`
	GSTIN     string `json:"gstin,omitempty" bson:"gstin,omitempty"`
}

type LineItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    float64 `json:"quantity" bson:"quantity"`
	Rate        float64 `json:"rate" bson:"rate"`
	Amount      float64 `json:"amount" bson:"amount"`
	Taxable     bool    `json:"taxable" bson:"taxable"`
}

// PaymentRecord is one append-only entry against an invoice.
type PaymentRecord struct {
	Amount     float64   `json:"amount" bson:"amount"`
	Mode       string    `json:"mode" bson:"mode"`
	Reference  string    `json:"reference,omitempty" bson:"reference,omitempty"`
	Date       time.Time `json:"date" bson:"date"`
	RecordedBy string    `json:"recordedBy,omitempty" bson:"recordedBy,omitempty"`
}

type Invoice struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	InvoiceNumber  string             `json:"invoiceNumber" bson:"invoiceNumber"`
	Shipper        ShipperSnapshot    `json:"shipper" bson:"shipper"`
	AWBNumbers     []string           `json:"awbNumbers,omitempty" bson:"awbNumbers,omitempty"`
	InvoiceDate    time.Time          `json:"invoiceDate" bson:"invoiceDate"`
	DueDate        time.Time          `json:"dueDate" bson:"dueDate"`
	LineItems      []LineItem         `json:"lineItems" bson:"lineItems"`
	Subtotal       float64            `json:"subtotal" bson:"subtotal"`
	Discount       float64            `json:"discount,omitempty" bson:"discount,omitempty"`
	DiscountType   string             `json:"discountType,omitempty" bson:"discountType,omitempty"`
	DiscountAmount float64            `json:"discountAmount" bson:"discountAmount"`
	TaxableAmount  float64            `json:"taxableAmount" bson:"taxableAmount"`
	GSTRate        float64            `json:"gstRate" bson:"gstRate"`
	CGST           float64            `json:"cgst" bson:"cgst"`
	SGST           float64            `json:"sgst" bson:"sgst"`
	IGST           float64            `json:"igst" bson:"igst"`
	TotalTax       float64            `json:"totalTax" bson:"totalTax"`
	RoundOff       float64            `json:"roundOff" bson:"roundOff"`
	GrandTotal     float64            `json:"grandTotal" bson:"grandTotal"`
	PaidAmount     float64            `json:"paidAmount" bson:"paidAmount"`
	BalanceAmount  float64            `json:"balanceAmount" bson:"balanceAmount"`
	PaymentStatus  string             `json:"paymentStatus" bson:"paymentStatus"`
	Payments       []PaymentRecord    `json:"payments" bson:"payments"`
	Notes          string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedBy      string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
