package rating

import (
	"math"
	"testing"

	"courierhub/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateExpressShipment(t *testing.T) {
	// SETUP: Express at base 100, 2.5kg, declared value 5000, prepaid.
	calc := NewCalculator(DefaultRateTable())

	// EXECUTE
	bd := calc.Calculate(RateInput{
		ServiceType:   "Express",
		WeightKg:      2.5,
		DeclaredValue: 5000,
		PaymentMode:   models.PaymentModePrepaid,
	})

	// ASSERT: shipping 100 + 2.5*10 = 125, insurance 2% of 5000 = 100,
	// fuel 10% of shipping = 12.5, subtotal 237.5, gst 42.75, total 280.25.
	if !almostEqual(bd.Shipping, 125) {
		t.Errorf("shipping: got %v, want 125", bd.Shipping)
	}
	if !almostEqual(bd.Insurance, 100) {
		t.Errorf("insurance: got %v, want 100", bd.Insurance)
	}
	if !almostEqual(bd.FuelSurcharge, 12.5) {
		t.Errorf("fuel surcharge: got %v, want 12.5", bd.FuelSurcharge)
	}
	if !almostEqual(bd.Subtotal, 237.5) {
		t.Errorf("subtotal: got %v, want 237.5", bd.Subtotal)
	}
	if !almostEqual(bd.GST, 42.75) {
		t.Errorf("gst: got %v, want 42.75", bd.GST)
	}
	if !almostEqual(bd.Total, 280.25) {
		t.Errorf("total: got %v, want 280.25", bd.Total)
	}
}

func TestCalculateUnknownServiceFallsBack(t *testing.T) {
	calc := NewCalculator(DefaultRateTable())

	bd := calc.Calculate(RateInput{ServiceType: "SameDay", WeightKg: 1})

	if !almostEqual(bd.BaseRate, 70) {
		t.Errorf("base rate: got %v, want fallback 70", bd.BaseRate)
	}
	if !almostEqual(bd.Shipping, 80) {
		t.Errorf("shipping: got %v, want 80", bd.Shipping)
	}
}

func TestCalculateCODChargeOnlyForCOD(t *testing.T) {
	calc := NewCalculator(DefaultRateTable())
	in := RateInput{ServiceType: "Standard", WeightKg: 1, CODAmount: 1500}

	in.PaymentMode = models.PaymentModePrepaid
	if bd := calc.Calculate(in); bd.COD != 0 {
		t.Errorf("prepaid shipment must not carry COD charge, got %v", bd.COD)
	}

	in.PaymentMode = models.PaymentModeCOD
	if bd := calc.Calculate(in); !almostEqual(bd.COD, 30) {
		t.Errorf("COD charge: got %v, want 30", calc.Calculate(in).COD)
	}
}

func TestCalculateTotalIsSumOfParts(t *testing.T) {
	calc := NewCalculator(DefaultRateTable())

	bd := calc.Calculate(RateInput{
		ServiceType:   "Overnight",
		WeightKg:      7.3,
		DeclaredValue: 12345.67,
		CODAmount:     999.99,
		PaymentMode:   models.PaymentModeCOD,
	})

	subtotal := bd.Shipping + bd.Insurance + bd.COD + bd.FuelSurcharge
	if !almostEqual(bd.Subtotal, subtotal) {
		t.Errorf("subtotal %v != sum of parts %v", bd.Subtotal, subtotal)
	}
	if !almostEqual(bd.Total, bd.Subtotal+bd.GST) {
		t.Errorf("total %v != subtotal+gst %v", bd.Total, bd.Subtotal+bd.GST)
	}
}

func TestFromSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings *models.CompanySettings
		service  string
		wantBase float64
	}{
		{"nil settings use defaults", nil, "Express", 100},
		{"configured rate wins", &models.CompanySettings{
			ServiceRates: map[string]float64{"Express": 120},
			DefaultRate:  50,
		}, "Express", 120},
		{"configured default covers unknown services", &models.CompanySettings{
			ServiceRates: map[string]float64{"Express": 120},
			DefaultRate:  50,
		}, "Hyperloop", 50},
		{"zero default falls back to built-in", &models.CompanySettings{
			ServiceRates: map[string]float64{"Express": 120},
		}, "Hyperloop", 70},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calc := FromSettings(tc.settings)
			if got := calc.Rates.BaseRate(tc.service); !almostEqual(got, tc.wantBase) {
				t.Errorf("base rate: got %v, want %v", got, tc.wantBase)
			}
		})
	}
}

func TestVolumetricWeight(t *testing.T) {
	tests := []struct {
		name string
		dims models.Dimensions
		want float64
	}{
		{"centimetres divide by 5000", models.Dimensions{LengthCm: 50, WidthCm: 40, HeightCm: 25}, 10},
		{"inches divide by 139", models.Dimensions{LengthCm: 13.9, WidthCm: 10, HeightCm: 1, Unit: "in"}, 1},
		{"missing dimension yields zero", models.Dimensions{LengthCm: 50, WidthCm: 40}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := VolumetricWeight(tc.dims); !almostEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestChargeableWeight(t *testing.T) {
	bulky := &models.Dimensions{LengthCm: 50, WidthCm: 40, HeightCm: 25} // 10kg volumetric

	if got := ChargeableWeight(2, bulky); !almostEqual(got, 10) {
		t.Errorf("bulky parcel: got %v, want volumetric 10", got)
	}
	if got := ChargeableWeight(15, bulky); !almostEqual(got, 15) {
		t.Errorf("dense parcel: got %v, want actual 15", got)
	}
	if got := ChargeableWeight(3, nil); !almostEqual(got, 3) {
		t.Errorf("no dimensions: got %v, want actual 3", got)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(280.249999); got != 280.25 {
		t.Errorf("got %v, want 280.25", got)
	}
	if got := Round2(42.754); got != 42.75 {
		t.Errorf("got %v, want 42.75", got)
	}
}

func TestRoundedPreservesBreakdown(t *testing.T) {
	calc := NewCalculator(DefaultRateTable())
	bd := calc.Calculate(RateInput{ServiceType: "Economy", WeightKg: 1.234, DeclaredValue: 333.33})

	r := bd.Rounded()
	if r.Shipping != Round2(bd.Shipping) || r.GST != Round2(bd.GST) || r.Total != Round2(bd.Total) {
		t.Error("rounded breakdown must round each component independently")
	}
}
