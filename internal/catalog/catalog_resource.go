package catalog

// Resource describes one platform collection proxied by resto-admin.
type Resource struct {
	// Name is the RBAC and audit resource name.
	Name string
	// Route is mounted under the API group.
	Route string
	// Remote is the platform path.
	Remote string
	// Cacheable lists are served from redis when requested without filters.
	Cacheable bool
}

func (r Resource) cacheKey() string {
	return CacheKeyPrefix + r.Name
}

var Resources = []Resource{
	{Name: "category", Route: "/categories", Remote: "/categories", Cacheable: true},
	{Name: "category-type", Route: "/category-types", Remote: "/category-types", Cacheable: true},
	{Name: "exam", Route: "/exams", Remote: "/exam"},
	{Name: "article", Route: "/articles", Remote: "/article"},
	{Name: "table", Route: "/tables", Remote: "/table"},
	{Name: "food-item", Route: "/food-items", Remote: "/food-items"},
	{Name: "payment", Route: "/payments", Remote: "/payments"},
}

// Lookup finds a resource by name.
func Lookup(name string) (Resource, bool) {
	for _, r := range Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}
