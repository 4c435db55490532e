package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"courierhub/models"
	"courierhub/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GenerateInvoicePDF renders a tax invoice to PDF via headless Chrome.
// Amounts on the template are already rounded; the words line uses the
// rounded grand total.
func GenerateInvoicePDF(repo *repository.PDFRepository, invoiceNumber string) ([]byte, error) {
	company, err := repo.GetSettingsForPDF()
	if err != nil {
		return nil, err
	}

	inv, err := repo.GetInvoiceForPDF(invoiceNumber)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}

	formattedDate := "-"
	if !inv.InvoiceDate.IsZero() {
		formattedDate = inv.InvoiceDate.Format("02-Jan-2006")
	}
	formattedDue := "-"
	if !inv.DueDate.IsZero() {
		formattedDue = inv.DueDate.Format("02-Jan-2006")
	}

	contacts := ""
	if company != nil {
		for _, c := range company.Contacts {
			contacts += c.Number + "(" + c.Label + "), "
		}
		if len(contacts) > 2 {
			contacts = contacts[:len(contacts)-2]
		}
	}

	tmpl, err := template.ParseFiles("templates/invoice_template.html")
	if err != nil {
		return nil, err
	}

	data := models.InvoicePDFData{
		Company:    company,
		Invoice:    inv,
		Contacts:   contacts,
		Date:       formattedDate,
		DueDate:    formattedDue,
		TotalWords: NumberToCurrencyWords(inv.GrandTotal),
		SameState:  inv.IGST == 0,
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		.invoice-page {
			page-break-inside: avoid;
		}
		</style>
		</head>
		<body><div class='invoice-page'>` + body.String() + `</div></body></html>`

	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "invoice_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
