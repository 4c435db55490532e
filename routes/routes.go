package routes

import (
	"net/http"

	"courierhub/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth       *handlers.AuthMiddleware
	Bookings   *handlers.BookingHandler
	Quotes     *handlers.QuoteHandler
	Invoices   *handlers.InvoiceHandler
	Payments   *handlers.PaymentHandler
	Manifests  *handlers.ManifestHandler
	Dispatches *handlers.DispatchHandler
	Exceptions *handlers.ExceptionHandler
	Tickets    *handlers.TicketHandler
	Shippers   *handlers.ShipperHandler
	Users      *handlers.UserHandler
	Roles      *handlers.RoleHandler
	APIKeys    *handlers.APIKeyHandler
	Settings   *handlers.SettingsHandler
	Reports    *handlers.ReportHandler
}

// param adapts a handler that takes a path parameter to chi's HandlerFunc.
func param(name string, fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, chi.URLParam(r, name))
	}
}

// SetupRoutes builds the full route tree: a public surface (login and
// tracking), the back-office surface behind JWT sessions with per-module
// permission checks, and the integrator surface behind API keys.
func SetupRoutes(h Handlers) http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-API-Secret"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// --- Public routes ---
	mux.Post("/api/v1/auth/signup", h.Users.Signup)
	mux.Post("/api/v1/auth/login", h.Users.Login)
	mux.Get("/api/v1/track/{awb}", param("awb", h.Bookings.TrackByAWB))

	// --- Back-office routes ---
	mux.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireUser)

		r.With(h.Auth.RequirePermission("booking", "add")).Post("/api/v1/bookings", h.Bookings.CreateBooking)
		r.With(h.Auth.RequirePermission("booking", "view")).Get("/api/v1/bookings", h.Bookings.GetBookings)
		r.With(h.Auth.RequirePermission("booking", "view")).Get("/api/v1/bookings/{awb}", param("awb", h.Bookings.GetBookingByAWB))
		r.With(h.Auth.RequirePermission("booking", "edit")).Patch("/api/v1/bookings/{awb}/status", param("awb", h.Bookings.UpdateStatus))
		r.With(h.Auth.RequirePermission("booking", "edit")).Post("/api/v1/bookings/{awb}/pod", param("awb", h.Bookings.UploadPOD))
		r.With(h.Auth.RequirePermission("booking", "delete")).Delete("/api/v1/bookings/{awb}", param("awb", h.Bookings.DeleteBooking))

		r.With(h.Auth.RequirePermission("booking", "view")).Post("/api/v1/quotes", h.Quotes.GetQuote)

		r.With(h.Auth.RequirePermission("invoice", "add")).Post("/api/v1/invoices", h.Invoices.CreateInvoice)
		r.With(h.Auth.RequirePermission("invoice", "view")).Get("/api/v1/invoices", h.Invoices.GetInvoices)
		r.With(h.Auth.RequirePermission("invoice", "view")).Get("/api/v1/invoices/{number}", param("number", h.Invoices.GetInvoiceByNumber))
		r.With(h.Auth.RequirePermission("invoice", "edit")).Patch("/api/v1/invoices/{number}", param("number", h.Invoices.UpdateInvoice))
		r.With(h.Auth.RequirePermission("invoice", "edit")).Post("/api/v1/invoices/{number}/payments", param("number", h.Invoices.RecordPayment))
		r.With(h.Auth.RequirePermission("invoice", "edit")).Post("/api/v1/invoices/{number}/cancel", param("number", h.Invoices.CancelInvoice))
		r.With(h.Auth.RequirePermission("invoice", "delete")).Delete("/api/v1/invoices/{number}", param("number", h.Invoices.DeleteInvoice))
		r.With(h.Auth.RequirePermission("invoice", "print")).Get("/api/v1/invoices/{number}/pdf", param("number", h.Invoices.DownloadPDF))
		r.With(h.Auth.RequirePermission("invoice", "print")).Post("/api/v1/invoices/{number}/pdf", param("number", h.Invoices.PublishPDF))

		r.With(h.Auth.RequirePermission("payment", "add")).Post("/api/v1/payments", h.Payments.CreatePayment)
		r.With(h.Auth.RequirePermission("payment", "view")).Get("/api/v1/payments", h.Payments.GetPayments)
		r.With(h.Auth.RequirePermission("payment", "view")).Get("/api/v1/payments/{txn}", param("txn", h.Payments.GetPaymentByTransactionID))
		r.With(h.Auth.RequirePermission("payment", "edit")).Patch("/api/v1/payments/{txn}/status", param("txn", h.Payments.UpdateStatus))
		r.With(h.Auth.RequirePermission("payment", "edit")).Post("/api/v1/payments/{txn}/refund", param("txn", h.Payments.Refund))

		r.With(h.Auth.RequirePermission("manifest", "add")).Post("/api/v1/manifests", h.Manifests.CreateManifest)
		r.With(h.Auth.RequirePermission("manifest", "view")).Get("/api/v1/manifests", h.Manifests.GetManifests)
		r.With(h.Auth.RequirePermission("manifest", "view")).Get("/api/v1/manifests/{number}", param("number", h.Manifests.GetManifestByNumber))
		r.With(h.Auth.RequirePermission("manifest", "edit")).Patch("/api/v1/manifests/{number}/status", param("number", h.Manifests.UpdateStatus))

		r.With(h.Auth.RequirePermission("dispatch", "add")).Post("/api/v1/dispatches", h.Dispatches.CreateDispatch)
		r.With(h.Auth.RequirePermission("dispatch", "view")).Get("/api/v1/dispatches", h.Dispatches.GetDispatches)
		r.With(h.Auth.RequirePermission("dispatch", "view")).Get("/api/v1/dispatches/{number}", param("number", h.Dispatches.GetDispatchByNumber))
		r.With(h.Auth.RequirePermission("dispatch", "edit")).Patch("/api/v1/dispatches/{number}/status", param("number", h.Dispatches.UpdateStatus))

		r.With(h.Auth.RequirePermission("exception", "add")).Post("/api/v1/exceptions", h.Exceptions.CreateException)
		r.With(h.Auth.RequirePermission("exception", "view")).Get("/api/v1/exceptions", h.Exceptions.GetExceptions)
		r.With(h.Auth.RequirePermission("exception", "view")).Get("/api/v1/exceptions/{number}", param("number", h.Exceptions.GetExceptionByNumber))
		r.With(h.Auth.RequirePermission("exception", "edit")).Patch("/api/v1/exceptions/{number}/status", param("number", h.Exceptions.UpdateStatus))
		r.With(h.Auth.RequirePermission("exception", "edit")).Post("/api/v1/exceptions/{number}/comments", param("number", h.Exceptions.AddComment))

		r.With(h.Auth.RequirePermission("ticket", "add")).Post("/api/v1/tickets", h.Tickets.CreateTicket)
		r.With(h.Auth.RequirePermission("ticket", "view")).Get("/api/v1/tickets", h.Tickets.GetTickets)
		r.With(h.Auth.RequirePermission("ticket", "view")).Get("/api/v1/tickets/{number}", param("number", h.Tickets.GetTicketByNumber))
		r.With(h.Auth.RequirePermission("ticket", "edit")).Patch("/api/v1/tickets/{number}/status", param("number", h.Tickets.UpdateStatus))
		r.With(h.Auth.RequirePermission("ticket", "edit")).Post("/api/v1/tickets/{number}/comments", param("number", h.Tickets.AddComment))

		r.With(h.Auth.RequirePermission("shipper", "add")).Post("/api/v1/shippers", h.Shippers.CreateShipper)
		r.With(h.Auth.RequirePermission("shipper", "view")).Get("/api/v1/shippers", h.Shippers.GetShippers)
		r.With(h.Auth.RequirePermission("shipper", "view")).Get("/api/v1/shippers/{id}", param("id", h.Shippers.GetShipperByID))
		r.With(h.Auth.RequirePermission("shipper", "edit")).Put("/api/v1/shippers/{id}", param("id", h.Shippers.UpdateShipper))

		r.With(h.Auth.RequirePermission("user", "view")).Get("/api/v1/users", h.Users.GetUsers)
		r.With(h.Auth.RequirePermission("user", "edit")).Put("/api/v1/users/{email}", param("email", h.Users.UpdateUser))

		r.With(h.Auth.RequirePermission("role", "add")).Post("/api/v1/roles", h.Roles.CreateRole)
		r.With(h.Auth.RequirePermission("role", "view")).Get("/api/v1/roles", h.Roles.GetRoles)
		r.With(h.Auth.RequirePermission("role", "view")).Get("/api/v1/roles/{name}", param("name", h.Roles.GetRoleByName))
		r.With(h.Auth.RequirePermission("role", "edit")).Put("/api/v1/roles/{name}", param("name", h.Roles.UpdateRole))
		r.With(h.Auth.RequirePermission("role", "delete")).Delete("/api/v1/roles/{name}", param("name", h.Roles.DeleteRole))

		r.With(h.Auth.RequirePermission("apikey", "add")).Post("/api/v1/apikeys", h.APIKeys.CreateAPIKey)
		r.With(h.Auth.RequirePermission("apikey", "view")).Get("/api/v1/apikeys", h.APIKeys.GetAPIKeys)
		r.With(h.Auth.RequirePermission("apikey", "edit")).Put("/api/v1/apikeys/{key}", param("key", h.APIKeys.UpdateAPIKey))
		r.With(h.Auth.RequirePermission("apikey", "delete")).Post("/api/v1/apikeys/{key}/revoke", param("key", h.APIKeys.RevokeAPIKey))

		r.With(h.Auth.RequirePermission("settings", "view")).Get("/api/v1/settings", h.Settings.GetSettings)
		r.With(h.Auth.RequirePermission("settings", "edit")).Put("/api/v1/settings", h.Settings.SaveSettings)

		r.With(h.Auth.RequirePermission("report", "view")).Get("/api/v1/reports/bookings", h.Reports.BookingRegister)
		r.With(h.Auth.RequirePermission("report", "view")).Get("/api/v1/reports/status-counts", h.Reports.StatusCounts)
		r.With(h.Auth.RequirePermission("report", "view")).Get("/api/v1/reports/revenue", h.Reports.RevenueSummary)
	})

	// --- Integrator routes ---
	mux.Group(func(r chi.Router) {
		r.With(h.Auth.RequireAPIKey("booking.create")).Post("/api/v1/integrator/bookings", h.Bookings.CreateBooking)
		r.With(h.Auth.RequireAPIKey("tracking.read")).Get("/api/v1/integrator/track/{awb}", param("awb", h.Bookings.TrackByAWB))
		r.With(h.Auth.RequireAPIKey("rate.read")).Post("/api/v1/integrator/quotes", h.Quotes.GetQuote)
	})

	return handlers.RecoverWrapper(mux)
}
