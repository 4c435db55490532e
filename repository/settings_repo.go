package repository

import "courierhub/models"

type SettingsRepository interface {
	SaveSettings(s *models.CompanySettings) error
	GetSettings() (*models.CompanySettings, error)
}
