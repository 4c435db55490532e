package repository

import (
	"time"

	"courierhub/models"
)

type BookingRepository interface {
	CreateBooking(b *models.Booking) error
	GetBookingByAWB(awb string) (*models.Booking, error)
	GetBookings(filters map[string]interface{}, page, limit int64) ([]*models.Booking, error)
	GetBookingsByAWBs(awbs []string) ([]*models.Booking, error)
	GetBookingsBetween(from, to time.Time) ([]*models.Booking, error)
	UpdateBooking(b *models.Booking) error
	DeleteBooking(awb string) error
	CountByStatus() (map[string]int64, error)
}
