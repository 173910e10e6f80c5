package feature

// Feature is one sidebar/menu entry as stored by the platform API.
// ParentID makes the flat list a forest.
type Feature struct {
	ID            int64  `json:"id"`
	Label         string `json:"label"`
	Link          string `json:"link"`
	Icon          string `json:"icon"`
	IconType      string `json:"iconType"`
	IconSize      int    `json:"iconSize"`
	IsActive      bool   `json:"isActive"`
	SortOrder     int    `json:"sortOrder"`
	ParentID      *int64 `json:"parentId"`
	FeatureTypeID *int64 `json:"featureTypeId"`
}

// Node is a Feature placed in a tree.
type Node struct {
	Feature
	Children []*Node `json:"children"`
}

// Viewer is what the sidebar needs to know about the signed-in user.
type Viewer struct {
	IsAdmin    bool
	FeatureIDs []int64
}
