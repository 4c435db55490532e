package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Data scopes control which records a role's bearer may see.
const (
	DataScopeOwn    = "own"
	DataScopeBranch = "branch"
	DataScopeZone   = "zone"
	DataScopeAll    = "all"
)

type ModulePermissions struct {
	CanView   bool `json:"canView" bson:"canView"`
	CanAdd    bool `json:"canAdd" bson:"canAdd"`
	CanEdit   bool `json:"canEdit" bson:"canEdit"`
	CanDelete bool `json:"canDelete" bson:"canDelete"`
	CanExport bool `json:"canExport" bson:"canExport"`
	CanPrint  bool `json:"canPrint" bson:"canPrint"`
}

// Role bundles per-module permission flags with a data scope. Module keys
// are lowercase ("booking", "invoice", "manifest", ...).
type Role struct {
	ID          primitive.ObjectID           `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string                       `json:"name" bson:"name"`
	Description string                       `json:"description,omitempty" bson:"description,omitempty"`
	Permissions map[string]ModulePermissions `json:"permissions" bson:"permissions"`
	DataScope   string                       `json:"dataScope" bson:"dataScope"`
	CreatedAt   time.Time                    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   *time.Time                   `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Allows checks one action flag for a module; unknown modules deny.
func (r *Role) Allows(module, action string) bool {
	p, ok := r.Permissions[module]
	if !ok {
		return false
	}
	switch action {
	case "view":
		return p.CanView
	case "add":
		return p.CanAdd
	case "edit":
		return p.CanEdit
	case "delete":
		return p.CanDelete
	case "export":
		return p.CanExport
	case "print":
		return p.CanPrint
	default:
		return false
	}
}
