package repository

import (
	"time"

	"courierhub/models"
)

type InvoiceRepository interface {
	CreateInvoice(inv *models.Invoice) error
	GetInvoiceByNumber(number string) (*models.Invoice, error)
	GetInvoices(filters map[string]interface{}, page, limit int64) ([]*models.Invoice, error)
	GetInvoicesBetween(from, to time.Time) ([]*models.Invoice, error)
	UpdateInvoice(inv *models.Invoice) error
	DeleteInvoice(number string) error
	// LastInvoiceSuffix returns the numeric suffix of the highest invoice
	// number on record, or 0 when no invoices exist. Used once to seed the
	// invoice counter from legacy data.
	LastInvoiceSuffix() (int64, error)
}
