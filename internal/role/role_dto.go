package role

type CreateRoleRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Code        string  `json:"code" binding:"required,max=50"`
	IsActive    *bool   `json:"isActive"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type UpdateRoleRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Code        string  `json:"code" binding:"required,max=50"`
	IsActive    *bool   `json:"isActive"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// PermissionIDsRequest replaces a role's permissions. An empty list clears them.
type PermissionIDsRequest struct {
	PermissionIDs []int64 `json:"permissionIds" binding:"dive,gt=0"`
}

type FeatureIDsRequest struct {
	FeatureIDs []int64 `json:"featureIds" binding:"dive,gt=0"`
}
