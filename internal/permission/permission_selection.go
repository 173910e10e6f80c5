package permission

import (
	"fmt"
	"slices"

	permissionerrors "resto-admin/internal/permission/errors"
)

// Selection tracks which template actions the admin has ticked, in the order they were ticked.
type Selection struct {
	template Template
	selected []string
}

func NewSelection(t Template) *Selection {
	return &Selection{template: t, selected: make([]string, 0, len(t.Permissions))}
}

func (s *Selection) resolve(action string) (string, error) {
	a, ok := s.template.find(action)
	if !ok {
		return "", permissionerrors.ErrUnknownAction.WithErr(
			fmt.Errorf("action %q on resource %q", action, s.template.Resource))
	}
	return a.Action, nil
}

func (s *Selection) Select(action string) error {
	name, err := s.resolve(action)
	if err != nil {
		return err
	}
	if !slices.Contains(s.selected, name) {
		s.selected = append(s.selected, name)
	}
	return nil
}

func (s *Selection) Deselect(action string) error {
	name, err := s.resolve(action)
	if err != nil {
		return err
	}
	s.selected = slices.DeleteFunc(s.selected, func(a string) bool { return a == name })
	return nil
}

// Toggle selects action when it is not selected and deselects it otherwise.
func (s *Selection) Toggle(action string) error {
	name, err := s.resolve(action)
	if err != nil {
		return err
	}
	if slices.Contains(s.selected, name) {
		return s.Deselect(name)
	}
	return s.Select(name)
}

// SelectAll selects every template action in template order.
func (s *Selection) SelectAll() {
	s.selected = s.selected[:0]
	for _, a := range s.template.Permissions {
		s.selected = append(s.selected, a.Action)
	}
}

func (s *Selection) DeselectAll() {
	s.selected = s.selected[:0]
}

// Apply runs one selection op. toggle, select and deselect name an action; the *_all ops ignore it.
func (s *Selection) Apply(op SelectionOp) error {
	switch op.Op {
	case OpToggle:
		return s.Toggle(op.Action)
	case OpSelect:
		return s.Select(op.Action)
	case OpDeselect:
		return s.Deselect(op.Action)
	case OpSelectAll:
		s.SelectAll()
		return nil
	case OpDeselectAll:
		s.DeselectAll()
		return nil
	}
	return permissionerrors.ErrUnknownSelectionOp.WithErr(fmt.Errorf("op %q", op.Op))
}

// Selected returns the selected action names in selection order.
func (s *Selection) Selected() []string {
	return slices.Clone(s.selected)
}

// Candidates returns the permission tuples the selection would create.
func (s *Selection) Candidates() []TemplateAction {
	out := make([]TemplateAction, 0, len(s.selected))
	for _, name := range s.selected {
		if a, ok := s.template.find(name); ok {
			out = append(out, a)
		}
	}
	return out
}
