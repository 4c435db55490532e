package billing

import (
	"errors"
	"math"
	"testing"

	"courierhub/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComposeSameStateSplitsGST(t *testing.T) {
	// SETUP: 1000 subtotal, 10% discount, shipper in the company's state.
	in := ComposeInput{
		Items: []models.LineItem{
			{Description: "Freight", Quantity: 1, Rate: 1000, Amount: 1000, Taxable: true},
		},
		Discount:     10,
		DiscountType: models.DiscountTypePercentage,
		ShipperState: "Maharashtra",
		CompanyState: "Maharashtra",
		GSTRate:      18,
	}

	// EXECUTE
	got, err := Compose(in)

	// ASSERT: taxable 900, CGST = SGST = 81, grand total 1062, no round-off.
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got.DiscountAmount, 100) {
		t.Errorf("discount: got %v, want 100", got.DiscountAmount)
	}
	if !almostEqual(got.TaxableAmount, 900) {
		t.Errorf("taxable: got %v, want 900", got.TaxableAmount)
	}
	if !almostEqual(got.CGST, 81) || !almostEqual(got.SGST, 81) {
		t.Errorf("cgst/sgst: got %v/%v, want 81/81", got.CGST, got.SGST)
	}
	if got.IGST != 0 {
		t.Errorf("igst must be zero for same state, got %v", got.IGST)
	}
	if !almostEqual(got.GrandTotal, 1062) {
		t.Errorf("grand total: got %v, want 1062", got.GrandTotal)
	}
	if !almostEqual(got.RoundOff, 0) {
		t.Errorf("round off: got %v, want 0", got.RoundOff)
	}
}

func TestComposeDifferentStateUsesIGST(t *testing.T) {
	in := ComposeInput{
		Items: []models.LineItem{
			{Description: "Freight", Quantity: 1, Rate: 900, Amount: 900, Taxable: true},
		},
		ShipperState: "Gujarat",
		CompanyState: "Maharashtra",
		GSTRate:      18,
	}

	got, err := Compose(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got.IGST, 162) {
		t.Errorf("igst: got %v, want 162", got.IGST)
	}
	if got.CGST != 0 || got.SGST != 0 {
		t.Errorf("cgst/sgst must be zero across states, got %v/%v", got.CGST, got.SGST)
	}
}

func TestComposeFlatDiscount(t *testing.T) {
	in := ComposeInput{
		Items: []models.LineItem{
			{Description: "Freight", Quantity: 2, Rate: 250, Amount: 500, Taxable: true},
		},
		Discount:     50,
		DiscountType: models.DiscountTypeFlat,
		ShipperState: "Karnataka",
		CompanyState: "Karnataka",
	}

	got, err := Compose(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got.DiscountAmount, 50) {
		t.Errorf("discount: got %v, want flat 50", got.DiscountAmount)
	}
	if !almostEqual(got.TaxableAmount, 450) {
		t.Errorf("taxable: got %v, want 450", got.TaxableAmount)
	}
}

func TestComposeDefaultsGSTRate(t *testing.T) {
	in := ComposeInput{
		Items:        []models.LineItem{{Description: "Freight", Amount: 100}},
		ShipperState: "Delhi",
		CompanyState: "Delhi",
	}

	got, err := Compose(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.GSTRate != DefaultGSTRate {
		t.Errorf("gst rate: got %v, want default %v", got.GSTRate, DefaultGSTRate)
	}
}

func TestComposeRoundOffCarriesDifference(t *testing.T) {
	in := ComposeInput{
		Items:        []models.LineItem{{Description: "Freight", Amount: 237.5}},
		ShipperState: "Delhi",
		CompanyState: "Delhi",
		GSTRate:      18,
	}

	got, err := Compose(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 237.5 * 1.18 = 280.25; rounds to 280 with -0.25 carried.
	if !almostEqual(got.GrandTotal, 280) {
		t.Errorf("grand total: got %v, want 280", got.GrandTotal)
	}
	if !almostEqual(got.RoundOff, -0.25) {
		t.Errorf("round off: got %v, want -0.25", got.RoundOff)
	}
	if !almostEqual(got.GrandTotal, got.TaxableAmount+got.TotalTax+got.RoundOff) {
		t.Error("grand total must equal taxable + tax + round off")
	}
}

func TestComposeRejectsEmptyItems(t *testing.T) {
	_, err := Compose(ComposeInput{})
	if !errors.Is(err, ErrNoLineItems) {
		t.Fatalf("got %v, want ErrNoLineItems", err)
	}
}

func TestNormalizeItemsFillsAmount(t *testing.T) {
	items := NormalizeItems([]models.LineItem{
		{Description: "Freight", Quantity: 3, Rate: 100},
		{Description: "Packing", Quantity: 2, Rate: 50, Amount: 120}, // explicit amount kept
	})

	if !almostEqual(items[0].Amount, 300) {
		t.Errorf("amount: got %v, want 300", items[0].Amount)
	}
	if !almostEqual(items[1].Amount, 120) {
		t.Errorf("explicit amount overwritten: got %v, want 120", items[1].Amount)
	}
}

func TestApplyMaintainsBalanceInvariant(t *testing.T) {
	inv := &models.Invoice{PaidAmount: 200}
	Apply(inv, Totals{GrandTotal: 1062, Subtotal: 1000})

	if !almostEqual(inv.BalanceAmount, 862) {
		t.Errorf("balance: got %v, want 862", inv.BalanceAmount)
	}
}

func TestFromBookingChargesReusesStoredGST(t *testing.T) {
	b := &models.Booking{
		AWBNumber: "AWB250000123",
		Charges: models.Charges{
			ShippingCharge: 125,
			InsuranceFee:   100,
			FuelSurcharge:  12.5,
			GST:            42.75,
			TotalAmount:    280.25,
		},
	}

	items, totals := FromBookingCharges(b, "Maharashtra", "Maharashtra", 18)

	if len(items) != 3 {
		t.Fatalf("items: got %d, want 3", len(items))
	}
	if !almostEqual(totals.Subtotal, 237.5) {
		t.Errorf("subtotal: got %v, want 237.5", totals.Subtotal)
	}
	// The booking's GST is split, never recomputed.
	if !almostEqual(totals.CGST+totals.SGST, 42.75) {
		t.Errorf("tax: got %v, want stored 42.75", totals.CGST+totals.SGST)
	}
	if !almostEqual(totals.GrandTotal, 280) {
		t.Errorf("grand total: got %v, want 280", totals.GrandTotal)
	}
}

func TestFromBookingChargesAcrossStates(t *testing.T) {
	b := &models.Booking{
		AWBNumber: "AWB250000124",
		Charges:   models.Charges{ShippingCharge: 90, GST: 16.2},
	}

	_, totals := FromBookingCharges(b, "Gujarat", "Maharashtra", 18)

	if !almostEqual(totals.IGST, 16.2) {
		t.Errorf("igst: got %v, want stored 16.2", totals.IGST)
	}
	if totals.CGST != 0 || totals.SGST != 0 {
		t.Error("cgst/sgst must be zero across states")
	}
}
