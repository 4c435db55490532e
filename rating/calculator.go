// Package rating computes shipment charges from service type, weight and
// value-added options. All intermediate values stay full-precision float64;
// rounding to two decimals happens only at the API boundary.
package rating

import (
	"math"

	"courierhub/models"
)

const (
	weightRatePerKg   = 10.0
	insuranceRate     = 0.02
	codRate           = 0.02
	fuelSurchargeRate = 0.10
	gstRate           = 0.18

	// Divisors for volumetric weight (L x W x H / divisor).
	volumetricDivisorCm   = 5000.0
	volumetricDivisorInch = 139.0
)

// RateTable maps named services to base rates. Unknown services fall back
// to DefaultRate silently; the fallback is part of the rate configuration
// so operators see it next to the named services.
type RateTable struct {
	Services    map[string]float64
	DefaultRate float64
}

// DefaultRateTable is used until the operator saves their own rates.
func DefaultRateTable() RateTable {
	return RateTable{
		Services: map[string]float64{
			"Express":   100,
			"Standard":  80,
			"Economy":   60,
			"Overnight": 150,
		},
		DefaultRate: 70,
	}
}

// BaseRate resolves a service's base rate, falling back to the default.
func (t RateTable) BaseRate(serviceType string) float64 {
	if r, ok := t.Services[serviceType]; ok {
		return r
	}
	return t.DefaultRate
}

type Calculator struct {
	Rates RateTable
}

func NewCalculator(rates RateTable) *Calculator {
	if rates.Services == nil {
		rates = DefaultRateTable()
	}
	return &Calculator{Rates: rates}
}

// FromSettings builds the calculator's rate table out of the stored company
// settings, keeping base rates configurable at runtime.
func FromSettings(s *models.CompanySettings) *Calculator {
	if s == nil || len(s.ServiceRates) == 0 {
		return NewCalculator(DefaultRateTable())
	}
	def := s.DefaultRate
	if def == 0 {
		def = DefaultRateTable().DefaultRate
	}
	return NewCalculator(RateTable{Services: s.ServiceRates, DefaultRate: def})
}

type RateInput struct {
	ServiceType   string
	WeightKg      float64
	DeclaredValue float64
	CODAmount     float64
	PaymentMode   string
}

// ChargeBreakdown carries every component of a quote. Values are unrounded.
type ChargeBreakdown struct {
	BaseRate      float64
	Shipping      float64
	Insurance     float64
	COD           float64
	FuelSurcharge float64
	Subtotal      float64
	GST           float64
	Total         float64
}

// Calculate prices a shipment. Weight validation is the caller's job; the
// calculator itself accepts whatever it is given.
func (c *Calculator) Calculate(in RateInput) ChargeBreakdown {
	base := c.Rates.BaseRate(in.ServiceType)

	bd := ChargeBreakdown{BaseRate: base}
	bd.Shipping = base + in.WeightKg*weightRatePerKg
	if in.DeclaredValue > 0 {
		bd.Insurance = in.DeclaredValue * insuranceRate
	}
	if in.PaymentMode == models.PaymentModeCOD && in.CODAmount > 0 {
		bd.COD = in.CODAmount * codRate
	}
	bd.FuelSurcharge = bd.Shipping * fuelSurchargeRate
	bd.Subtotal = bd.Shipping + bd.Insurance + bd.COD + bd.FuelSurcharge
	bd.GST = bd.Subtotal * gstRate
	bd.Total = bd.Subtotal + bd.GST
	return bd
}

// Charges converts a breakdown into the sub-document stored on bookings.
func (bd ChargeBreakdown) Charges() models.Charges {
	return models.Charges{
		ShippingCharge: bd.Shipping,
		InsuranceFee:   bd.Insurance,
		CODCharge:      bd.COD,
		FuelSurcharge:  bd.FuelSurcharge,
		GST:            bd.GST,
		TotalAmount:    bd.Total,
	}
}

// Rounded applies boundary rounding to every component for API responses.
func (bd ChargeBreakdown) Rounded() ChargeBreakdown {
	return ChargeBreakdown{
		BaseRate:      Round2(bd.BaseRate),
		Shipping:      Round2(bd.Shipping),
		Insurance:     Round2(bd.Insurance),
		COD:           Round2(bd.COD),
		FuelSurcharge: Round2(bd.FuelSurcharge),
		Subtotal:      Round2(bd.Subtotal),
		GST:           Round2(bd.GST),
		Total:         Round2(bd.Total),
	}
}

// VolumetricWeight converts parcel dimensions to kilograms. Unit is "cm"
// (default) or "in".
func VolumetricWeight(d models.Dimensions) float64 {
	if d.LengthCm <= 0 || d.WidthCm <= 0 || d.HeightCm <= 0 {
		return 0
	}
	divisor := volumetricDivisorCm
	if d.Unit == "in" {
		divisor = volumetricDivisorInch
	}
	return d.LengthCm * d.WidthCm * d.HeightCm / divisor
}

// ChargeableWeight is the greater of actual and volumetric weight.
func ChargeableWeight(actualKg float64, d *models.Dimensions) float64 {
	if d == nil {
		return actualKg
	}
	if v := VolumetricWeight(*d); v > actualKg {
		return v
	}
	return actualKg
}

// Round2 rounds to two decimals for the wire format.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
