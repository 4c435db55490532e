// Package billing composes invoice totals, splits GST between CGST/SGST and
// IGST, and tracks payments against invoices.
package billing

import (
	"math"

	"courierhub/models"
)

// DefaultGSTRate applies when no override is configured. Percent.
const DefaultGSTRate = 18.0

type ComposeInput struct {
	Items        []models.LineItem
	Discount     float64
	DiscountType string // percentage | flat
	ShipperState string
	CompanyState string
	GSTRate      float64 // percent; 0 means DefaultGSTRate
}

// Totals is the computed money block of an invoice. Values are unrounded
// except GrandTotal, which is rounded to the nearest rupee with the
// difference carried in RoundOff.
type Totals struct {
	Subtotal       float64
	DiscountAmount float64
	TaxableAmount  float64
	GSTRate        float64
	CGST           float64
	SGST           float64
	IGST           float64
	TotalTax       float64
	RoundOff       float64
	GrandTotal     float64
}

// Compose runs the invoice arithmetic. The tax split depends on whether the
// shipper is registered in the company's own state: same state splits the
// rate evenly into CGST and SGST, a different state applies the full rate
// as IGST.
func Compose(in ComposeInput) (Totals, error) {
	if len(in.Items) == 0 {
		return Totals{}, ErrNoLineItems
	}

	t := Totals{GSTRate: in.GSTRate}
	if t.GSTRate == 0 {
		t.GSTRate = DefaultGSTRate
	}

	for _, item := range in.Items {
		t.Subtotal += item.Amount
	}

	if in.DiscountType == models.DiscountTypePercentage {
		t.DiscountAmount = t.Subtotal * in.Discount / 100
	} else {
		t.DiscountAmount = in.Discount
	}
	t.TaxableAmount = t.Subtotal - t.DiscountAmount

	if in.ShipperState != in.CompanyState {
		t.IGST = t.TaxableAmount * t.GSTRate / 100
	} else {
		half := t.GSTRate / 2
		t.CGST = t.TaxableAmount * half / 100
		t.SGST = t.TaxableAmount * half / 100
	}
	t.TotalTax = t.CGST + t.SGST + t.IGST

	beforeRound := t.TaxableAmount + t.TotalTax
	t.GrandTotal = math.Round(beforeRound)
	t.RoundOff = t.GrandTotal - beforeRound

	return t, nil
}

// NormalizeItems fills in amounts left blank as quantity x rate.
func NormalizeItems(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, item := range items {
		if item.Amount == 0 && item.Quantity != 0 && item.Rate != 0 {
			item.Amount = item.Quantity * item.Rate
		}
		out[i] = item
	}
	return out
}

// Apply writes a computed Totals block onto an invoice and refreshes the
// balance invariant (balance = grand total - paid amount).
func Apply(inv *models.Invoice, t Totals) {
	inv.Subtotal = t.Subtotal
	inv.DiscountAmount = t.DiscountAmount
	inv.TaxableAmount = t.TaxableAmount
	inv.GSTRate = t.GSTRate
	inv.CGST = t.CGST
	inv.SGST = t.SGST
	inv.IGST = t.IGST
	inv.TotalTax = t.TotalTax
	inv.RoundOff = t.RoundOff
	inv.GrandTotal = t.GrandTotal
	inv.BalanceAmount = inv.GrandTotal - inv.PaidAmount
}

// FromBookingCharges builds invoice line items and totals out of a booking's
// stored charge breakdown. The charges are reused verbatim and the GST
// amount is not recomputed from the rate. Bookings are locked once they
// reach a terminal status, so the stored figures are final.
func FromBookingCharges(b *models.Booking, shipperState, companyState string, gstRate float64) ([]models.LineItem, Totals) {
	items := []models.LineItem{
		{Description: "Shipping charges - " + b.AWBNumber, Quantity: 1, Rate: b.Charges.ShippingCharge, Amount: b.Charges.ShippingCharge, Taxable: true},
	}
	if b.Charges.InsuranceFee > 0 {
		items = append(items, models.LineItem{Description: "Insurance", Quantity: 1, Rate: b.Charges.InsuranceFee, Amount: b.Charges.InsuranceFee, Taxable: true})
	}
	if b.Charges.CODCharge > 0 {
		items = append(items, models.LineItem{Description: "COD handling", Quantity: 1, Rate: b.Charges.CODCharge, Amount: b.Charges.CODCharge, Taxable: true})
	}
	if b.Charges.FuelSurcharge > 0 {
		items = append(items, models.LineItem{Description: "Fuel surcharge", Quantity: 1, Rate: b.Charges.FuelSurcharge, Amount: b.Charges.FuelSurcharge, Taxable: true})
	}

	t := Totals{GSTRate: gstRate}
	if t.GSTRate == 0 {
		t.GSTRate = DefaultGSTRate
	}
	for _, item := range items {
		t.Subtotal += item.Amount
	}
	t.TaxableAmount = t.Subtotal

	if shipperState != companyState {
		t.IGST = b.Charges.GST
	} else {
		t.CGST = b.Charges.GST / 2
		t.SGST = b.Charges.GST / 2
	}
	t.TotalTax = t.CGST + t.SGST + t.IGST

	beforeRound := t.TaxableAmount + t.TotalTax
	t.GrandTotal = math.Round(beforeRound)
	t.RoundOff = t.GrandTotal - beforeRound

	return items, t
}
