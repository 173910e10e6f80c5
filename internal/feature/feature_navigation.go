package feature

// BuildSidebar builds the navigation for viewer from the full flat feature list. Inactive features are
// dropped; non-admins only see features granted through their roles. A granted child whose parent is not
// granted is promoted to the top level.
func BuildSidebar(flat []Feature, viewer Viewer) ([]NavItem, error) {
	allowed := make(map[int64]struct{}, len(viewer.FeatureIDs))
	for _, id := range viewer.FeatureIDs {
		allowed[id] = struct{}{}
	}

	visible := make([]Feature, 0, len(flat))
	for _, f := range flat {
		if !f.IsActive {
			continue
		}
		if _, ok := allowed[f.ID]; ok || viewer.IsAdmin {
			visible = append(visible, f)
		}
	}

	roots, err := BuildTree(visible)
	if err != nil {
		return nil, err
	}
	SortTree(roots)

	return toNavItems(roots), nil
}

func toNavItems(nodes []*Node) []NavItem {
	items := make([]NavItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, NavItem{
			ID:       n.ID,
			Label:    n.Label,
			Link:     n.Link,
			Icon:     n.Icon,
			IconType: n.IconType,
			IconSize: n.IconSize,
			Children: toNavItems(n.Children),
		})
	}
	return items
}
