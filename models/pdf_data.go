package models

type InvoicePDFData struct {
	Company    *CompanySettings
	Invoice    *Invoice
	Contacts   string // formatted contact numbers
	Date       string // formatted invoice date
	DueDate    string
	TotalWords string
	SameState  bool // CGST/SGST columns vs single IGST column
}
