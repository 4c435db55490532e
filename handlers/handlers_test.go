package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courierhub/models"
	"courierhub/utils"
)

// --- MOCKS ---

type mockSettingsRepo struct {
	settings *models.CompanySettings
	err      error
}

func (m *mockSettingsRepo) SaveSettings(s *models.CompanySettings) error { return m.err }
func (m *mockSettingsRepo) GetSettings() (*models.CompanySettings, error) {
	return m.settings, m.err
}

type mockBookingRepo struct {
	bookings map[string]*models.Booking
	updated  *models.Booking
	err      error
}

func (m *mockBookingRepo) CreateBooking(b *models.Booking) error { return m.err }
func (m *mockBookingRepo) GetBookingByAWB(awb string) (*models.Booking, error) {
	return m.bookings[awb], m.err
}
func (m *mockBookingRepo) GetBookings(filters map[string]interface{}, page, limit int64) ([]*models.Booking, error) {
	return nil, m.err
}
func (m *mockBookingRepo) GetBookingsByAWBs(awbs []string) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, awb := range awbs {
		if b, ok := m.bookings[awb]; ok {
			out = append(out, b)
		}
	}
	return out, m.err
}
func (m *mockBookingRepo) GetBookingsBetween(from, to time.Time) ([]*models.Booking, error) {
	return nil, m.err
}
func (m *mockBookingRepo) UpdateBooking(b *models.Booking) error {
	m.updated = b
	return m.err
}
func (m *mockBookingRepo) DeleteBooking(awb string) error           { return m.err }
func (m *mockBookingRepo) CountByStatus() (map[string]int64, error) { return nil, m.err }

type mockInvoiceRepo struct {
	invoices map[string]*models.Invoice
	updated  *models.Invoice
	err      error
}

func (m *mockInvoiceRepo) CreateInvoice(inv *models.Invoice) error { return m.err }
func (m *mockInvoiceRepo) GetInvoiceByNumber(number string) (*models.Invoice, error) {
	return m.invoices[number], m.err
}
func (m *mockInvoiceRepo) GetInvoices(filters map[string]interface{}, page, limit int64) ([]*models.Invoice, error) {
	return nil, m.err
}
func (m *mockInvoiceRepo) GetInvoicesBetween(from, to time.Time) ([]*models.Invoice, error) {
	return nil, m.err
}
func (m *mockInvoiceRepo) UpdateInvoice(inv *models.Invoice) error {
	m.updated = inv
	return m.err
}
func (m *mockInvoiceRepo) DeleteInvoice(number string) error { return m.err }
func (m *mockInvoiceRepo) LastInvoiceSuffix() (int64, error) { return 0, m.err }

type mockAPIKeyRepo struct {
	key       *models.APIKey
	usageSets int
	err       error
}

func (m *mockAPIKeyRepo) CreateAPIKey(k *models.APIKey) error { return m.err }
func (m *mockAPIKeyRepo) GetAPIKeyByKey(apiKey string) (*models.APIKey, error) {
	if m.key != nil && m.key.APIKey == apiKey {
		return m.key, m.err
	}
	return nil, m.err
}
func (m *mockAPIKeyRepo) GetAPIKeys(filters map[string]interface{}) ([]*models.APIKey, error) {
	return nil, m.err
}
func (m *mockAPIKeyRepo) UpdateUsage(k *models.APIKey) error {
	m.usageSets++
	m.key = k
	return m.err
}
func (m *mockAPIKeyRepo) UpdateAPIKey(k *models.APIKey) error { return m.err }

// --- QUOTE HANDLER ---

func TestGetQuoteExpress(t *testing.T) {
	h := &QuoteHandler{Settings: &mockSettingsRepo{}}

	body := `{"serviceType":"Express","weight":2.5,"declaredValue":5000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.GetQuote(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool          `json:"success"`
		Data    quoteResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Data.ShippingCharge != 125 {
		t.Errorf("shipping: got %v, want 125", resp.Data.ShippingCharge)
	}
	if resp.Data.InsuranceFee != 100 {
		t.Errorf("insurance: got %v, want 100", resp.Data.InsuranceFee)
	}
	if resp.Data.GST != 42.75 {
		t.Errorf("gst: got %v, want 42.75", resp.Data.GST)
	}
	if resp.Data.TotalAmount != 280.25 {
		t.Errorf("total: got %v, want 280.25", resp.Data.TotalAmount)
	}
}

func TestGetQuoteValidation(t *testing.T) {
	h := &QuoteHandler{Settings: &mockSettingsRepo{}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.GetQuote(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}

	var resp struct {
		RequiredFields []string `json:"requiredFields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.RequiredFields) != 2 {
		t.Errorf("requiredFields: got %v, want serviceType and weight", resp.RequiredFields)
	}
}

// --- TRACKING ---

func TestTrackByAWB(t *testing.T) {
	b := &models.Booking{
		AWBNumber:   "AWB250000007",
		Status:      models.BookingStatusInTransit,
		ServiceType: "Express",
		Charges:     models.Charges{TotalAmount: 280.25},
		StatusHistory: []models.StatusEvent{
			{Status: models.BookingStatusBooked},
			{Status: models.BookingStatusInTransit},
		},
	}
	h := &BookingHandler{Repo: &mockBookingRepo{bookings: map[string]*models.Booking{b.AWBNumber: b}}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/track/AWB250000007", nil)
	rec := httptest.NewRecorder()

	h.TrackByAWB(rec, req, "AWB250000007")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "AWB250000007") || !strings.Contains(body, "In Transit") {
		t.Errorf("tracking body missing fields: %s", body)
	}
	// Charges never leak through the public view.
	if strings.Contains(body, "280.25") {
		t.Error("tracking view must not expose charges")
	}
}

func TestTrackByAWBNotFound(t *testing.T) {
	h := &BookingHandler{Repo: &mockBookingRepo{bookings: map[string]*models.Booking{}}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/track/AWB259999999", nil)
	rec := httptest.NewRecorder()

	h.TrackByAWB(rec, req, "AWB259999999")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

// --- MANIFEST TOTALS ---

func TestSnapshotTotals(t *testing.T) {
	bookings := []*models.Booking{
		{AWBNumber: "AWB250000001", WeightKg: 2.5, PaymentMode: models.PaymentModeCOD, CODAmount: 1500},
		{AWBNumber: "AWB250000002", WeightKg: 4, PaymentMode: models.PaymentModePrepaid, CODAmount: 0},
		{AWBNumber: "AWB250000003", WeightKg: 1.5, PaymentMode: models.PaymentModeCOD, CODAmount: 500},
	}

	weight, pieces, cod := snapshotTotals(bookings)

	if weight != 8 {
		t.Errorf("weight: got %v, want 8", weight)
	}
	if pieces != 3 {
		t.Errorf("pieces: got %d, want 3", pieces)
	}
	// Only COD bookings contribute to the COD total.
	if cod != 2000 {
		t.Errorf("cod: got %v, want 2000", cod)
	}
}

// --- INVOICE EDITS ---

func patchInvoiceRequest(number, body string) *http.Request {
	return httptest.NewRequest(http.MethodPatch, "/api/v1/invoices/"+number, strings.NewReader(body))
}

func TestUpdateInvoice(t *testing.T) {
	inv := &models.Invoice{
		InvoiceNumber: "INV000042",
		PaymentStatus: models.InvoiceStatusUnpaid,
		GrandTotal:    1062,
		BalanceAmount: 1062,
		DueDate:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	repo := &mockInvoiceRepo{invoices: map[string]*models.Invoice{inv.InvoiceNumber: inv}}
	h := &InvoiceHandler{Repo: repo}

	rec := httptest.NewRecorder()
	h.UpdateInvoice(rec, patchInvoiceRequest(inv.InvoiceNumber, `{"dueDate":"2099-04-30T00:00:00Z","notes":"extended terms"}`), inv.InvoiceNumber)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if repo.updated == nil {
		t.Fatal("invoice was not persisted")
	}
	if repo.updated.Notes != "extended terms" {
		t.Errorf("notes: got %q, want %q", repo.updated.Notes, "extended terms")
	}
	if !repo.updated.DueDate.Equal(time.Date(2099, 4, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dueDate: got %v", repo.updated.DueDate)
	}
	// Pushing the due date forward clears Overdue back to Unpaid.
	if repo.updated.PaymentStatus != models.InvoiceStatusUnpaid {
		t.Errorf("status: got %q, want Unpaid", repo.updated.PaymentStatus)
	}
}

func TestUpdateInvoiceLocked(t *testing.T) {
	tests := []struct {
		name   string
		status string
	}{
		{"paid invoice", models.InvoiceStatusPaid},
		{"cancelled invoice", models.InvoiceStatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &models.Invoice{InvoiceNumber: "INV000042", PaymentStatus: tt.status}
			repo := &mockInvoiceRepo{invoices: map[string]*models.Invoice{inv.InvoiceNumber: inv}}
			h := &InvoiceHandler{Repo: repo}

			rec := httptest.NewRecorder()
			h.UpdateInvoice(rec, patchInvoiceRequest(inv.InvoiceNumber, `{"notes":"late edit"}`), inv.InvoiceNumber)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rec.Code)
			}
			if repo.updated != nil {
				t.Error("locked invoice must not be persisted")
			}
		})
	}
}

func TestUpdateInvoiceEmptyPayload(t *testing.T) {
	h := &InvoiceHandler{Repo: &mockInvoiceRepo{}}

	rec := httptest.NewRecorder()
	h.UpdateInvoice(rec, patchInvoiceRequest("INV000042", `{}`), "INV000042")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

// --- API KEY MIDDLEWARE ---

func activeKey(secretHash string) *models.APIKey {
	return &models.APIKey{
		Name:        "integrator-1",
		APIKey:      "ak_" + strings.Repeat("a", 32),
		SecretHash:  secretHash,
		Permissions: []string{"tracking.read"},
		DailyLimit:  1000,
		MinuteLimit: 2,
		Active:      true,
	}
}

func apiKeyRequest(key, secret string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/integrator/track/AWB250000001", nil)
	req.Header.Set("X-API-Key", key)
	req.Header.Set("X-API-Secret", secret)
	return req
}

func TestRequireAPIKeyHappyPath(t *testing.T) {
	secret := "sk_" + strings.Repeat("b", 64)
	repo := &mockAPIKeyRepo{key: activeKey(utils.HashAPISecret(secret))}
	mw := &AuthMiddleware{Keys: repo}

	called := false
	handler := mw.RequireAPIKey("tracking.read")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if APIKeyFromContext(r) == nil {
			t.Error("key missing from request context")
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, apiKeyRequest(repo.key.APIKey, secret))

	if !called {
		t.Fatalf("handler not reached: status %d body %s", rec.Code, rec.Body.String())
	}
	if repo.usageSets != 1 {
		t.Errorf("usage updates: got %d, want 1", repo.usageSets)
	}
	if repo.key.DayCount != 1 || repo.key.MinuteCount != 1 {
		t.Errorf("counters: got day %d minute %d, want 1/1", repo.key.DayCount, repo.key.MinuteCount)
	}
}

func TestRequireAPIKeyWrongSecret(t *testing.T) {
	secret := "sk_" + strings.Repeat("b", 64)
	repo := &mockAPIKeyRepo{key: activeKey(utils.HashAPISecret(secret))}
	mw := &AuthMiddleware{Keys: repo}

	handler := mw.RequireAPIKey("tracking.read")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with a wrong secret")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, apiKeyRequest(repo.key.APIKey, "sk_"+strings.Repeat("c", 64)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireAPIKeyMissingPermission(t *testing.T) {
	secret := "sk_" + strings.Repeat("b", 64)
	repo := &mockAPIKeyRepo{key: activeKey(utils.HashAPISecret(secret))}
	mw := &AuthMiddleware{Keys: repo}

	handler := mw.RequireAPIKey("booking.create")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without the permission")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, apiKeyRequest(repo.key.APIKey, secret))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
}

func TestRequireAPIKeyMinuteLimit(t *testing.T) {
	secret := "sk_" + strings.Repeat("b", 64)
	repo := &mockAPIKeyRepo{key: activeKey(utils.HashAPISecret(secret))}
	mw := &AuthMiddleware{Keys: repo}

	handler := mw.RequireAPIKey("tracking.read")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// The minute limit is 2; the third request inside the window is refused.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, apiKeyRequest(repo.key.APIKey, secret))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, apiKeyRequest(repo.key.APIKey, secret))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status: got %d, want 429", rec.Code)
	}

	var resp struct {
		Window string `json:"window"`
		Usage  int64  `json:"usage"`
		Limit  int64  `json:"limit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Window != "minute" || resp.Usage != 2 || resp.Limit != 2 {
		t.Errorf("429 payload: got %+v, want window=minute usage=2 limit=2", resp)
	}
}

func TestRequireAPIKeyInactiveKey(t *testing.T) {
	secret := "sk_" + strings.Repeat("b", 64)
	key := activeKey(utils.HashAPISecret(secret))
	key.Active = false
	repo := &mockAPIKeyRepo{key: key}
	mw := &AuthMiddleware{Keys: repo}

	handler := mw.RequireAPIKey("tracking.read")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for a revoked key")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, apiKeyRequest(key.APIKey, secret))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireAPIKeyMalformedKey(t *testing.T) {
	mw := &AuthMiddleware{Keys: &mockAPIKeyRepo{}}

	handler := mw.RequireAPIKey("tracking.read")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for a malformed key")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, apiKeyRequest("not-a-key", "sk_x"))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}
