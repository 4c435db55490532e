package repository

import "courierhub/models"

type PaymentRepository interface {
	CreatePayment(p *models.Payment) error
	GetPaymentByTransactionID(txnID string) (*models.Payment, error)
	GetPayments(filters map[string]interface{}, page, limit int64) ([]*models.Payment, error)
	UpdatePayment(p *models.Payment) error
}
