package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactEntry struct {
	Number string `json:"number" bson:"number"`
	Label  string `json:"label" bson:"label"`
}

// CompanySettings is the single operator profile. CompanyState drives the
// CGST/SGST vs IGST split, and the rate table feeds the rate calculator so
// base rates stay configurable without a redeploy.
type CompanySettings struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyName    string             `json:"companyName" bson:"companyName"`
	Address        string             `json:"address" bson:"address"`
	City           string             `json:"city" bson:"city"`
	State          string             `json:"state" bson:"state"`
	Pincode        string             `json:"pincode" bson:"pincode"`
	GSTIN          string             `json:"gstin" bson:"gstin"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty"`
	Contacts       []ContactEntry     `json:"contacts,omitempty" bson:"contacts,omitempty"`
	GSTRate        float64            `json:"gstRate" bson:"gstRate"`
	ServiceRates   map[string]float64 `json:"serviceRates" bson:"serviceRates"`
	DefaultRate    float64            `json:"defaultRate" bson:"defaultRate"`
	InvoiceDueDays int                `json:"invoiceDueDays" bson:"invoiceDueDays"`
	Footnote       string             `json:"footnote,omitempty" bson:"footnote,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      *time.Time         `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
