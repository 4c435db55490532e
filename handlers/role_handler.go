package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"courierhub/models"
	"courierhub/repository"
)

type RoleHandler struct {
	Repo repository.RoleRepository
}

func validScope(scope string) bool {
	switch scope {
	case models.DataScopeOwn, models.DataScopeBranch, models.DataScopeZone, models.DataScopeAll:
		return true
	}
	return false
}

func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var role models.Role
	if err := json.NewDecoder(r.Body).Decode(&role); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if role.Name == "" {
		missing = append(missing, "name")
	}
	if role.DataScope == "" {
		missing = append(missing, "dataScope")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}
	if !validScope(role.DataScope) {
		badRequest(w, "dataScope must be one of own, branch, zone, all")
		return
	}

	existing, err := h.Repo.GetRoleByName(role.Name)
	if err != nil {
		serverError(w, err)
		return
	}
	if existing != nil {
		badRequest(w, "role "+role.Name+" already exists")
		return
	}

	if role.Permissions == nil {
		role.Permissions = make(map[string]models.ModulePermissions)
	}
	role.CreatedAt = time.Now().UTC()

	if err := h.Repo.CreateRole(&role); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Role created", Data: role})
}

func (h *RoleHandler) GetRoles(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.GetRoles()
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

func (h *RoleHandler) GetRoleByName(w http.ResponseWriter, r *http.Request, name string) {
	role, err := h.Repo.GetRoleByName(name)
	if err != nil {
		serverError(w, err)
		return
	}
	if role == nil {
		notFound(w, "role not found")
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: role})
}

// UpdateRole replaces the permission matrix and data scope of a role.
func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request, name string) {
	existing, err := h.Repo.GetRoleByName(name)
	if err != nil {
		serverError(w, err)
		return
	}
	if existing == nil {
		notFound(w, "role not found")
		return
	}

	var role models.Role
	if err := json.NewDecoder(r.Body).Decode(&role); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}
	if role.DataScope != "" && !validScope(role.DataScope) {
		badRequest(w, "dataScope must be one of own, branch, zone, all")
		return
	}

	now := time.Now().UTC()
	if role.Description != "" {
		existing.Description = role.Description
	}
	if role.DataScope != "" {
		existing.DataScope = role.DataScope
	}
	if role.Permissions != nil {
		existing.Permissions = role.Permissions
	}
	existing.UpdatedAt = &now

	if err := h.Repo.UpdateRole(existing); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Role updated", Data: existing})
}

func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request, name string) {
	role, err := h.Repo.GetRoleByName(name)
	if err != nil {
		serverError(w, err)
		return
	}
	if role == nil {
		notFound(w, "role not found")
		return
	}

	if err := h.Repo.DeleteRole(name); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Role deleted"})
}
