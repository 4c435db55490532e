package repository

import "courierhub/models"

type ExceptionRepository interface {
	CreateException(e *models.Exception) error
	GetExceptionByNumber(number string) (*models.Exception, error)
	GetExceptions(filters map[string]interface{}, page, limit int64) ([]*models.Exception, error)
	UpdateException(e *models.Exception) error
}

type TicketRepository interface {
	CreateTicket(t *models.SupportTicket) error
	GetTicketByNumber(number string) (*models.SupportTicket, error)
	GetTickets(filters map[string]interface{}, page, limit int64) ([]*models.SupportTicket, error)
	UpdateTicket(t *models.SupportTicket) error
}
