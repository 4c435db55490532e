package repository

import "courierhub/models"

type UserRepository interface {
	CreateUser(user *models.AppUser) error
	GetUserByEmail(email string) (*models.AppUser, error)
	GetUsers() ([]*models.AppUser, error)
	UpdateUser(user *models.AppUser) error
}

type RoleRepository interface {
	CreateRole(role *models.Role) error
	GetRoleByName(name string) (*models.Role, error)
	GetRoles() ([]*models.Role, error)
	UpdateRole(role *models.Role) error
	DeleteRole(name string) error
}
