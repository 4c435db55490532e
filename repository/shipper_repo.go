package repository

import "courierhub/models"

type ShipperRepository interface {
	CreateShipper(s *models.Shipper) error
	GetShipperByID(shipperID string) (*models.Shipper, error)
	GetShippers(filters map[string]interface{}, page, limit int64) ([]*models.Shipper, error)
	UpdateShipper(s *models.Shipper) error
	// IncrementBookingCount bumps the shipper's booking stat. This is a
	// second, independent write after booking creation; there is no
	// rollback if it fails.
	IncrementBookingCount(shipperID string) error
}
