package permission

import "strings"

type Permission struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Action      *string `json:"action,omitempty"`
	Resource    *string `json:"resource,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
	FeatureID   *int64  `json:"featureId,omitempty"`
}

// TemplateAction is one permission a template can generate for its resource.
type TemplateAction struct {
	Action string `json:"action"`
	Name   string `json:"name"`
	Code   string `json:"code"`
}

// Template lists the actions available for one resource.
type Template struct {
	Resource    string           `json:"resource"`
	Permissions []TemplateAction `json:"permissions"`
}

// find returns the template action whose name matches action, ignoring case.
func (t Template) find(action string) (TemplateAction, bool) {
	action = strings.TrimSpace(action)
	for _, a := range t.Permissions {
		if strings.EqualFold(a.Action, action) {
			return a, true
		}
	}
	return TemplateAction{}, false
}

// TemplateSet maps resource keys to their templates.
type TemplateSet map[string]Template

func (s TemplateSet) Lookup(resource string) (Template, bool) {
	t, ok := s[strings.TrimSpace(resource)]
	return t, ok
}
