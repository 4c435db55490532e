package handlers

import (
	"encoding/json"
	"net/http"

	"courierhub/models"
	"courierhub/rating"
	"courierhub/repository"
)

type QuoteHandler struct {
	Settings repository.SettingsRepository
}

type quoteRequest struct {
	ServiceType   string             `json:"serviceType"`
	Weight        float64            `json:"weight"`
	Dimensions    *models.Dimensions `json:"dimensions,omitempty"`
	DeclaredValue float64            `json:"declaredValue,omitempty"`
	PaymentMode   string             `json:"paymentMode,omitempty"`
	CODAmount     float64            `json:"codAmount,omitempty"`
}

type quoteResponse struct {
	ServiceType      string  `json:"serviceType"`
	ChargeableWeight float64 `json:"chargeableWeight"`
	VolumetricWeight float64 `json:"volumetricWeight,omitempty"`
	BaseRate         float64 `json:"baseRate"`
	ShippingCharge   float64 `json:"shippingCharge"`
	InsuranceFee     float64 `json:"insuranceFee"`
	CODCharge        float64 `json:"codCharge"`
	FuelSurcharge    float64 `json:"fuelSurcharge"`
	Subtotal         float64 `json:"subtotal"`
	GST              float64 `json:"gst"`
	TotalAmount      float64 `json:"totalAmount"`
}

// GetQuote prices a hypothetical shipment without creating anything.
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if req.ServiceType == "" {
		missing = append(missing, "serviceType")
	}
	if req.Weight <= 0 {
		missing = append(missing, "weight")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	settings, err := h.Settings.GetSettings()
	if err != nil {
		serverError(w, err)
		return
	}
	calc := rating.FromSettings(settings)

	var volumetric float64
	if req.Dimensions != nil {
		volumetric = rating.VolumetricWeight(*req.Dimensions)
	}
	chargeable := rating.ChargeableWeight(req.Weight, req.Dimensions)

	bd := calc.Calculate(rating.RateInput{
		ServiceType:   req.ServiceType,
		WeightKg:      chargeable,
		DeclaredValue: req.DeclaredValue,
		CODAmount:     req.CODAmount,
		PaymentMode:   req.PaymentMode,
	}).Rounded()

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: quoteResponse{
		ServiceType:      req.ServiceType,
		ChargeableWeight: rating.Round2(chargeable),
		VolumetricWeight: rating.Round2(volumetric),
		BaseRate:         bd.BaseRate,
		ShippingCharge:   bd.Shipping,
		InsuranceFee:     bd.Insurance,
		CODCharge:        bd.COD,
		FuelSurcharge:    bd.FuelSurcharge,
		Subtotal:         bd.Subtotal,
		GST:              bd.GST,
		TotalAmount:      bd.Total,
	}})
}
