package role

import (
	"strings"

	"resto-admin/internal/permission"
)

// UnknownResource labels permissions that carry no resource.
const UnknownResource = "Unknown"

// GroupByResource groups perms by resource. Groups appear in the order their resource is first seen;
// permissions keep input order inside a group.
func GroupByResource(perms []permission.Permission) []ResourceGroup {
	groups := make([]ResourceGroup, 0)
	index := make(map[string]int)

	for _, p := range perms {
		key := UnknownResource
		if p.Resource != nil && strings.TrimSpace(*p.Resource) != "" {
			key = *p.Resource
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ResourceGroup{Resource: key})
		}
		groups[i].Permissions = append(groups[i].Permissions, p)
	}
	return groups
}
