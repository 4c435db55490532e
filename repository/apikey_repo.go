package repository

import "courierhub/models"

type APIKeyRepository interface {
	CreateAPIKey(k *models.APIKey) error
	GetAPIKeyByKey(apiKey string) (*models.APIKey, error)
	GetAPIKeys(filters map[string]interface{}) ([]*models.APIKey, error)
	// UpdateUsage persists the key's usage counters and windows after a
	// request is admitted. Read-increment-write; the race is accepted.
	UpdateUsage(k *models.APIKey) error
	UpdateAPIKey(k *models.APIKey) error
}
