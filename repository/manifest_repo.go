package repository

import "courierhub/models"

type ManifestRepository interface {
	CreateManifest(m *models.Manifest) error
	GetManifestByNumber(number string) (*models.Manifest, error)
	GetManifests(filters map[string]interface{}, page, limit int64) ([]*models.Manifest, error)
	UpdateManifest(m *models.Manifest) error
}

type DispatchRepository interface {
	CreateDispatch(d *models.Dispatch) error
	GetDispatchByNumber(number string) (*models.Dispatch, error)
	GetDispatches(filters map[string]interface{}, page, limit int64) ([]*models.Dispatch, error)
	UpdateDispatch(d *models.Dispatch) error
}
