package repository

import "courierhub/models"

// PDFRepository bundles the lookups the invoice PDF renderer needs.
type PDFRepository struct {
	InvoiceRepo  InvoiceRepository
	SettingsRepo SettingsRepository
}

func (r *PDFRepository) GetInvoiceForPDF(number string) (*models.Invoice, error) {
	return r.InvoiceRepo.GetInvoiceByNumber(number)
}

func (r *PDFRepository) GetSettingsForPDF() (*models.CompanySettings, error) {
	return r.SettingsRepo.GetSettings()
}
