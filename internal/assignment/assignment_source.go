package assignment

import (
	"context"

	"resto-admin/internal/feature"
	"resto-admin/internal/permission"
	"resto-admin/internal/role"
	"resto-admin/internal/user"
)

// Source loads and persists one kind of assignment. The owner is the record things are assigned to:
// a role, a user or a feature.
type Source interface {
	// OwnerResource is the RBAC resource guarding the owner.
	OwnerResource() string
	Universe(ctx context.Context) ([]*Item, error)
	Current(ctx context.Context, ownerID int64) ([]int64, error)
	Save(ctx context.Context, ownerID int64, before, after []int64) error
}

// NewSources returns the Source for every Kind, backed by the module services.
func NewSources(features feature.Service, permissions permission.Service, roles role.Service, users user.Service) map[Kind]Source {
	return map[Kind]Source{
		KindRoleFeatures:       &roleFeatures{features: features, roles: roles},
		KindRolePermissions:    &rolePermissions{permissions: permissions, roles: roles},
		KindUserRoles:          &userRoles{roles: roles, users: users},
		KindFeaturePermissions: &featurePermissions{features: features, permissions: permissions},
	}
}

func featureItems(nodes []*feature.Node) []*Item {
	out := make([]*Item, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &Item{ID: n.ID, Label: n.Label, Children: featureItems(n.Children)})
	}
	return out
}

func permissionItems(perms []permission.Permission) []*Item {
	out := make([]*Item, 0, len(perms))
	for _, p := range perms {
		label := p.Name
		if label == "" {
			label = p.Code
		}
		out = append(out, &Item{ID: p.ID, Label: label})
	}
	return out
}

type roleFeatures struct {
	features feature.Service
	roles    role.Service
}

func (s *roleFeatures) OwnerResource() string { return "role" }

func (s *roleFeatures) Universe(ctx context.Context) ([]*Item, error) {
	tree, err := s.features.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return featureItems(tree), nil
}

func (s *roleFeatures) Current(ctx context.Context, ownerID int64) ([]int64, error) {
	r, err := s.roles.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(r.Features))
	for _, f := range r.Features {
		ids = append(ids, f.ID)
	}
	return ids, nil
}

func (s *roleFeatures) Save(ctx context.Context, ownerID int64, _, after []int64) error {
	return s.roles.AssignFeatures(ctx, ownerID, after)
}

type rolePermissions struct {
	permissions permission.Service
	roles       role.Service
}

func (s *rolePermissions) OwnerResource() string { return "role" }

func (s *rolePermissions) Universe(ctx context.Context) ([]*Item, error) {
	perms, err := s.permissions.List(ctx)
	if err != nil {
		return nil, err
	}
	return permissionItems(perms), nil
}

func (s *rolePermissions) Current(ctx context.Context, ownerID int64) ([]int64, error) {
	perms, err := s.roles.Permissions(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return permission.IDs(perms), nil
}

func (s *rolePermissions) Save(ctx context.Context, ownerID int64, _, after []int64) error {
	return s.roles.AssignPermissions(ctx, ownerID, after)
}

type userRoles struct {
	roles role.Service
	users user.Service
}

func (s *userRoles) OwnerResource() string { return "user" }

func (s *userRoles) Universe(ctx context.Context) ([]*Item, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Item, 0, len(roles))
	for _, r := range roles {
		out = append(out, &Item{ID: r.ID, Label: r.Name})
	}
	return out, nil
}

func (s *userRoles) Current(ctx context.Context, ownerID int64) ([]int64, error) {
	u, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return u.RoleIDs(), nil
}

func (s *userRoles) Save(ctx context.Context, ownerID int64, _, after []int64) error {
	return s.users.AssignRoles(ctx, ownerID, after)
}

// featurePermissions has no replace-all endpoint on the platform, so Save sends the difference.
type featurePermissions struct {
	features    feature.Service
	permissions permission.Service
}

func (s *featurePermissions) OwnerResource() string { return "feature" }

func (s *featurePermissions) Universe(ctx context.Context) ([]*Item, error) {
	perms, err := s.permissions.List(ctx)
	if err != nil {
		return nil, err
	}
	return permissionItems(perms), nil
}

func (s *featurePermissions) Current(ctx context.Context, ownerID int64) ([]int64, error) {
	if _, err := s.features.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	perms, err := s.permissions.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for _, p := range perms {
		if p.FeatureID != nil && *p.FeatureID == ownerID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (s *featurePermissions) Save(ctx context.Context, ownerID int64, before, after []int64) error {
	added, removed := Diff(before, after)
	if len(removed) > 0 {
		if err := s.features.DetachPermissions(ctx, ownerID, removed); err != nil {
			return err
		}
	}
	if len(added) > 0 {
		return s.features.AttachPermissions(ctx, ownerID, added)
	}
	return nil
}
