package feature

type CreateFeatureRequest struct {
	Label         string `json:"label" binding:"required,max=100"`
	Link          string `json:"link" binding:"max=255"`
	Icon          string `json:"icon"`
	IconType      string `json:"iconType"`
	IconSize      int    `json:"iconSize" binding:"gte=0"`
	IsActive      *bool  `json:"isActive"`
	SortOrder     int    `json:"sortOrder"`
	ParentID      *int64 `json:"parentId" binding:"omitempty,gt=0"`
	FeatureTypeID *int64 `json:"featureTypeId" binding:"omitempty,gt=0"`
}

type UpdateFeatureRequest struct {
	Label         string `json:"label" binding:"required,max=100"`
	Link          string `json:"link" binding:"max=255"`
	Icon          string `json:"icon"`
	IconType      string `json:"iconType"`
	IconSize      int    `json:"iconSize" binding:"gte=0"`
	IsActive      *bool  `json:"isActive"`
	SortOrder     int    `json:"sortOrder"`
	ParentID      *int64 `json:"parentId" binding:"omitempty,gt=0"`
	FeatureTypeID *int64 `json:"featureTypeId" binding:"omitempty,gt=0"`
}

type PermissionIDsRequest struct {
	PermissionIDs []int64 `json:"permissionIds" binding:"required,min=1,dive,gt=0"`
}

// NavItem is a sidebar entry.
type NavItem struct {
	ID       int64     `json:"id"`
	Label    string    `json:"label"`
	Link     string    `json:"link"`
	Icon     string    `json:"icon"`
	IconType string    `json:"iconType"`
	IconSize int       `json:"iconSize"`
	Children []NavItem `json:"children,omitempty"`
}
