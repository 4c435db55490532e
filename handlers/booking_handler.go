package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"courierhub/ledger"
	"courierhub/models"
	"courierhub/rating"
	"courierhub/repository"
	"courierhub/sequence"
	"courierhub/utils"
)

type BookingHandler struct {
	Repo     repository.BookingRepository
	Shippers repository.ShipperRepository
	Settings repository.SettingsRepository
	Roles    repository.RoleRepository
	Seq      *sequence.Generator
}

// roundedBooking applies boundary rounding to the charge figures before a
// booking goes on the wire. Stored values keep full precision.
func roundedBooking(b *models.Booking) models.Booking {
	out := *b
	out.Charges.ShippingCharge = rating.Round2(out.Charges.ShippingCharge)
	out.Charges.InsuranceFee = rating.Round2(out.Charges.InsuranceFee)
	out.Charges.CODCharge = rating.Round2(out.Charges.CODCharge)
	out.Charges.FuelSurcharge = rating.Round2(out.Charges.FuelSurcharge)
	out.Charges.GST = rating.Round2(out.Charges.GST)
	out.Charges.TotalAmount = rating.Round2(out.Charges.TotalAmount)
	out.VolumetricWeight = rating.Round2(out.VolumetricWeight)
	out.ChargeableWeight = rating.Round2(out.ChargeableWeight)
	return out
}

func missingBookingFields(b *models.Booking) []string {
	var missing []string
	if b.ShipperID == "" {
		missing = append(missing, "shipperId")
	}
	if b.Consignee.Name == "" {
		missing = append(missing, "consignee.name")
	}
	if b.Consignee.Address == "" {
		missing = append(missing, "consignee.address")
	}
	if b.Consignee.City == "" {
		missing = append(missing, "consignee.city")
	}
	if b.Consignee.State == "" {
		missing = append(missing, "consignee.state")
	}
	if b.Consignee.Pincode == "" {
		missing = append(missing, "consignee.pincode")
	}
	if b.ServiceType == "" {
		missing = append(missing, "serviceType")
	}
	if b.WeightKg <= 0 {
		missing = append(missing, "weight")
	}
	if b.PaymentMode == "" {
		missing = append(missing, "paymentMode")
	}
	return missing
}

// CreateBooking assigns the AWB, prices the shipment and persists it.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var b models.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	if missing := missingBookingFields(&b); len(missing) > 0 {
		validationError(w, missing)
		return
	}

	shipper, err := h.Shippers.GetShipperByID(b.ShipperID)
	if err != nil {
		serverError(w, err)
		return
	}
	if shipper == nil {
		notFound(w, "shipper not found")
		return
	}

	settings, err := h.Settings.GetSettings()
	if err != nil {
		serverError(w, err)
		return
	}
	calc := rating.FromSettings(settings)

	if b.Dimensions != nil {
		b.VolumetricWeight = rating.VolumetricWeight(*b.Dimensions)
	}
	b.ChargeableWeight = rating.ChargeableWeight(b.WeightKg, b.Dimensions)

	bd := calc.Calculate(rating.RateInput{
		ServiceType:   b.ServiceType,
		WeightKg:      b.ChargeableWeight,
		DeclaredValue: b.DeclaredValue,
		CODAmount:     b.CODAmount,
		PaymentMode:   b.PaymentMode,
	})
	b.Charges = bd.Charges()

	awb, err := h.Seq.Next(r.Context(), sequence.ClassBooking)
	if err != nil {
		serverError(w, err)
		return
	}
	b.AWBNumber = awb

	b.Status = ""
	b.StatusHistory = nil
	if err := ledger.AppendBookingStatus(&b, models.BookingStatusBooked, b.OriginCity, "Booking created", actorFrom(r), false); err != nil {
		respondError(w, err)
		return
	}
	b.CreatedBy = actorFrom(r)

	if err := h.Repo.CreateBooking(&b); err != nil {
		respondError(w, err)
		return
	}

	// Independent stat write; a failure here is logged, never rolled back.
	if err := h.Shippers.IncrementBookingCount(b.ShipperID); err != nil {
		log.Printf("failed to increment booking count for shipper %s: %v", b.ShipperID, err)
	}

	writeJSON(w, http.StatusCreated, ApiResponse{
		Success: true,
		Message: "Booking created",
		Data:    roundedBooking(&b),
	})
}

func (h *BookingHandler) GetBookingByAWB(w http.ResponseWriter, r *http.Request, awb string) {
	b, err := h.Repo.GetBookingByAWB(awb)
	if err != nil {
		serverError(w, err)
		return
	}
	if b == nil {
		notFound(w, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: roundedBooking(b)})
}

// GetBookings lists bookings with query filters plus the caller's data
// scope applied ad hoc to the filter map.
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]interface{})
	q := r.URL.Query()
	for _, key := range []string{"status", "shipperId", "serviceType", "paymentMode", "manifestNumber", "dispatchNumber"} {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}

	if err := h.applyScope(r, filters); err != nil {
		serverError(w, err)
		return
	}

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	list, err := h.Repo.GetBookings(filters, page, limit)
	if err != nil {
		serverError(w, err)
		return
	}

	out := make([]models.Booking, 0, len(list))
	for _, b := range list {
		out = append(out, roundedBooking(b))
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: out})
}

func (h *BookingHandler) applyScope(r *http.Request, filters map[string]interface{}) error {
	claims := ClaimsFromContext(r)
	if claims == nil {
		return nil
	}
	role, err := h.Roles.GetRoleByName(claims.Role)
	if err != nil || role == nil {
		return err
	}
	switch role.DataScope {
	case models.DataScopeOwn:
		filters["createdBy"] = claims.Email
	case models.DataScopeBranch:
		filters["branch"] = claims.Branch
	case models.DataScopeZone:
		filters["zone"] = claims.Zone
	}
	return nil
}

type statusUpdateRequest struct {
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
	Remarks  string `json:"remarks,omitempty"`
	Override bool   `json:"override,omitempty"`
}

// UpdateStatus appends a tracking entry. Override of a terminal state is
// only honoured for callers whose role carries booking delete rights.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, awb string) {
	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if req.Status == "" {
		validationError(w, []string{"status"})
		return
	}

	b, err := h.Repo.GetBookingByAWB(awb)
	if err != nil {
		serverError(w, err)
		return
	}
	if b == nil {
		notFound(w, "booking not found")
		return
	}

	override := false
	if req.Override {
		claims := ClaimsFromContext(r)
		if claims != nil {
			role, err := h.Roles.GetRoleByName(claims.Role)
			if err != nil {
				serverError(w, err)
				return
			}
			override = role != nil && role.Allows("booking", "delete")
		}
		if !override {
			forbidden(w, "terminal-state override not permitted")
			return
		}
	}

	if err := ledger.AppendBookingStatus(b, req.Status, req.Location, req.Remarks, actorFrom(r), override); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Repo.UpdateBooking(b); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Status updated", Data: roundedBooking(b)})
}

// UploadPOD accepts a multipart proof-of-delivery image, stores it in R2
// and marks the booking Delivered.
func (h *BookingHandler) UploadPOD(w http.ResponseWriter, r *http.Request, awb string) {
	b, err := h.Repo.GetBookingByAWB(awb)
	if err != nil {
		serverError(w, err)
		return
	}
	if b == nil {
		notFound(w, "booking not found")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		badRequest(w, "invalid multipart payload: "+err.Error())
		return
	}
	file, header, err := r.FormFile("pod")
	if err != nil {
		validationError(w, []string{"pod"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		serverError(w, err)
		return
	}

	url, err := utils.UploadPOD(awb, header.Filename, data, header.Header.Get("Content-Type"))
	if err != nil {
		serverError(w, err)
		return
	}

	b.PODImageURL = url
	b.PODReceivedBy = r.FormValue("receivedBy")

	if b.Status != models.BookingStatusDelivered {
		if err := ledger.AppendBookingStatus(b, models.BookingStatusDelivered, r.FormValue("location"), "POD received", actorFrom(r), false); err != nil {
			respondError(w, err)
			return
		}
	}

	if err := h.Repo.UpdateBooking(b); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "POD uploaded", Data: map[string]string{"podImageUrl": url}})
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request, awb string) {
	if err := h.Repo.DeleteBooking(awb); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Booking deleted"})
}

// TrackByAWB is the public (and integrator) tracking view: current status
// plus the full history, no charges.
func (h *BookingHandler) TrackByAWB(w http.ResponseWriter, r *http.Request, awb string) {
	b, err := h.Repo.GetBookingByAWB(awb)
	if err != nil {
		serverError(w, err)
		return
	}
	if b == nil {
		notFound(w, "booking not found")
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]interface{}{
		"awbNumber":     b.AWBNumber,
		"status":        b.Status,
		"serviceType":   b.ServiceType,
		"origin":        b.OriginCity,
		"destination":   b.Consignee.City,
		"bookingDate":   b.BookingDate,
		"deliveryDate":  b.DeliveryDate,
		"statusHistory": b.StatusHistory,
	}})
}
