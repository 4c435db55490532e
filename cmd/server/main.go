package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"courierhub/config"
	"courierhub/db/mongo"
	"courierhub/handlers"
	"courierhub/repository"
	"courierhub/routes"
	"courierhub/sequence"
	"courierhub/utils"
)

func main() {
	cfg := config.LoadConfig()

	mg := mongo.NewMongoDB(cfg.MongoURL)
	if err := mg.Connect(); err != nil {
		panic(err)
	}
	defer mg.Disconnect()

	if err := mg.EnsureIndexes(cfg.DatabaseName); err != nil {
		panic(err)
	}

	bookingRepo := repository.NewMongoBookingRepo(mg.Client, cfg.DatabaseName)
	invoiceRepo := repository.NewMongoInvoiceRepo(mg.Client, cfg.DatabaseName)
	paymentRepo := repository.NewMongoPaymentRepo(mg.Client, cfg.DatabaseName)
	shipperRepo := repository.NewMongoShipperRepo(mg.Client, cfg.DatabaseName)
	manifestRepo := repository.NewMongoManifestRepo(mg.Client, cfg.DatabaseName)
	dispatchRepo := repository.NewMongoDispatchRepo(mg.Client, cfg.DatabaseName)
	exceptionRepo := repository.NewMongoExceptionRepo(mg.Client, cfg.DatabaseName)
	ticketRepo := repository.NewMongoTicketRepo(mg.Client, cfg.DatabaseName)
	userRepo := repository.NewMongoUserRepo(mg.Client, cfg.DatabaseName)
	roleRepo := repository.NewMongoRoleRepo(mg.Client, cfg.DatabaseName)
	apiKeyRepo := repository.NewMongoAPIKeyRepo(mg.Client, cfg.DatabaseName)
	settingsRepo := repository.NewMongoSettingsRepo(mg.Client, cfg.DatabaseName)
	counterRepo := repository.NewMongoCounterRepo(mg.Client, cfg.DatabaseName)

	seq := sequence.NewGenerator(counterRepo)

	// Continue invoice numbering from legacy data on first boot.
	lastSuffix, err := invoiceRepo.LastInvoiceSuffix()
	if err != nil {
		panic(err)
	}
	if err := seq.SeedInvoiceCounter(context.Background(), lastSuffix); err != nil {
		panic(err)
	}

	jwtCfg := utils.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Expiry:    cfg.JWTExpiry,
	}

	pdfRepo := &repository.PDFRepository{InvoiceRepo: invoiceRepo, SettingsRepo: settingsRepo}

	h := routes.Handlers{
		Auth:       &handlers.AuthMiddleware{JWT: jwtCfg, Roles: roleRepo, Keys: apiKeyRepo},
		Bookings:   &handlers.BookingHandler{Repo: bookingRepo, Shippers: shipperRepo, Settings: settingsRepo, Roles: roleRepo, Seq: seq},
		Quotes:     &handlers.QuoteHandler{Settings: settingsRepo},
		Invoices:   &handlers.InvoiceHandler{Repo: invoiceRepo, Bookings: bookingRepo, Shippers: shipperRepo, Settings: settingsRepo, Seq: seq, PDF: pdfRepo},
		Payments:   &handlers.PaymentHandler{Repo: paymentRepo, Seq: seq},
		Manifests:  &handlers.ManifestHandler{Repo: manifestRepo, Bookings: bookingRepo, Seq: seq},
		Dispatches: &handlers.DispatchHandler{Repo: dispatchRepo, Bookings: bookingRepo, Seq: seq},
		Exceptions: &handlers.ExceptionHandler{Repo: exceptionRepo, Bookings: bookingRepo, Seq: seq},
		Tickets:    &handlers.TicketHandler{Repo: ticketRepo, Seq: seq},
		Shippers:   &handlers.ShipperHandler{Repo: shipperRepo},
		Users:      &handlers.UserHandler{Repo: userRepo, Roles: roleRepo, JWT: jwtCfg},
		Roles:      &handlers.RoleHandler{Repo: roleRepo},
		APIKeys:    &handlers.APIKeyHandler{Repo: apiKeyRepo},
		Settings:   &handlers.SettingsHandler{Repo: settingsRepo},
		Reports:    &handlers.ReportHandler{Bookings: bookingRepo, Invoices: invoiceRepo},
	}

	router := routes.SetupRoutes(h)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("server listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		panic(err)
	}
}
