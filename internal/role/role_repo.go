package role

import (
	"context"
	"fmt"
	"net/http"

	"resto-admin/internal/permission"
	"resto-admin/internal/platform"
	roleerrors "resto-admin/internal/role/errors"
)

const basePath = "/roles"

//go:generate mockgen -source=role_repo.go -destination=mock/role_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, id int64) (*Role, error)
	Create(ctx context.Context, req CreateRoleRequest) (*Role, error)
	Update(ctx context.Context, id int64, req UpdateRoleRequest) (*Role, error)
	Delete(ctx context.Context, id int64) error
	Permissions(ctx context.Context, id int64) ([]permission.Permission, error)
	Stats(ctx context.Context, id int64) (*Stats, error)
	AssignPermissions(ctx context.Context, id int64, permissionIDs []int64) error
	AssignFeatures(ctx context.Context, id int64, featureIDs []int64) error
}

type repository struct {
	api platform.Requester
}

func NewRepository(api platform.Requester) Repository {
	return &repository{api: api}
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

func mapErr(err error) error {
	switch {
	case platform.IsStatus(err, http.StatusNotFound):
		return roleerrors.ErrRoleNotFound
	case platform.IsStatus(err, http.StatusConflict):
		return roleerrors.ErrRoleCodeTaken
	}
	return err
}

func (r *repository) List(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := r.api.Get(ctx, basePath, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Role, error) {
	var role Role
	if err := r.api.Get(ctx, itemPath(id), nil, &role); err != nil {
		return nil, mapErr(err)
	}
	return &role, nil
}

func (r *repository) Create(ctx context.Context, req CreateRoleRequest) (*Role, error) {
	var role Role
	if err := r.api.Post(ctx, basePath, req, &role); err != nil {
		return nil, mapErr(err)
	}
	return &role, nil
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateRoleRequest) (*Role, error) {
	var role Role
	if err := r.api.Put(ctx, itemPath(id), req, &role); err != nil {
		return nil, mapErr(err)
	}
	return &role, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return mapErr(r.api.Delete(ctx, itemPath(id), nil, nil))
}

func (r *repository) Permissions(ctx context.Context, id int64) ([]permission.Permission, error) {
	var perms []permission.Permission
	if err := r.api.Get(ctx, itemPath(id)+"/permissions", nil, &perms); err != nil {
		return nil, mapErr(err)
	}
	return perms, nil
}

func (r *repository) Stats(ctx context.Context, id int64) (*Stats, error) {
	var stats Stats
	if err := r.api.Get(ctx, itemPath(id)+"/permissions/stats", nil, &stats); err != nil {
		return nil, mapErr(err)
	}
	return &stats, nil
}

func (r *repository) AssignPermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	return mapErr(r.api.Post(ctx, itemPath(id)+"/permissions", PermissionIDsRequest{PermissionIDs: permissionIDs}, nil))
}

// AssignFeatures replaces the role's features through a role update.
func (r *repository) AssignFeatures(ctx context.Context, id int64, featureIDs []int64) error {
	return mapErr(r.api.Put(ctx, itemPath(id), FeatureIDsRequest{FeatureIDs: featureIDs}, nil))
}
