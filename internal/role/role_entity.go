package role

import (
	"resto-admin/internal/feature"
	"resto-admin/internal/permission"
)

type Role struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Code        string                  `json:"code"`
	IsActive    bool                    `json:"isActive"`
	Description *string                 `json:"description,omitempty"`
	Features    []feature.Feature       `json:"features,omitempty"`
	Permissions []permission.Permission `json:"permissions,omitempty"`
}

// Stats is the platform's permission summary for one role.
type Stats struct {
	Total      int            `json:"total"`
	Assigned   int            `json:"assigned"`
	ByResource map[string]int `json:"byResource,omitempty"`
}

// ResourceGroup is a role's permissions for one resource.
type ResourceGroup struct {
	Resource    string                  `json:"resource"`
	Permissions []permission.Permission `json:"permissions"`
}

// Detail is everything the role screen shows, fetched in one call.
type Detail struct {
	Role        Role                    `json:"role"`
	Permissions []permission.Permission `json:"permissions"`
	Groups      []ResourceGroup         `json:"groups"`
	Stats       Stats                   `json:"stats"`
}
