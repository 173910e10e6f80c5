package permission

import (
	"context"
	"fmt"
	"net/http"

	permissionerrors "resto-admin/internal/permission/errors"
	"resto-admin/internal/platform"
)

const basePath = "/permissions"

//go:generate mockgen -source=permission_repo.go -destination=mock/permission_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context) ([]Permission, error)
	GetByID(ctx context.Context, id int64) (*Permission, error)
	Create(ctx context.Context, req CreatePermissionRequest) (*Permission, error)
	Update(ctx context.Context, id int64, req UpdatePermissionRequest) (*Permission, error)
	Delete(ctx context.Context, id int64) error
	Resources(ctx context.Context) ([]string, error)
	Actions(ctx context.Context) ([]string, error)
	Templates(ctx context.Context) (TemplateSet, error)
	BulkCreateFromTemplate(ctx context.Context, req TemplateRequest) ([]Permission, error)
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

func notFound(err error) error {
	if platform.IsStatus(err, http.StatusNotFound) {
		return permissionerrors.ErrPermissionNotFound
	}
	return err
}

func (r *repository) List(ctx context.Context) ([]Permission, error) {
	var perms []Permission
	if err := r.api.Get(ctx, basePath, nil, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Permission, error) {
	var p Permission
	if err := r.api.Get(ctx, itemPath(id), nil, &p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, req CreatePermissionRequest) (*Permission, error) {
	var p Permission
	if err := r.api.Post(ctx, basePath, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id int64, req UpdatePermissionRequest) (*Permission, error) {
	var p Permission
	if err := r.api.Put(ctx, itemPath(id), req, &p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return notFound(r.api.Delete(ctx, itemPath(id), nil, nil))
}

func (r *repository) Resources(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.api.Get(ctx, basePath+"/resources", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Actions(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.api.Get(ctx, basePath+"/actions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Templates decodes the platform's resource -> {permissions} map.
func (r *repository) Templates(ctx context.Context) (TemplateSet, error) {
	var raw map[string]struct {
		Permissions []TemplateAction `json:"permissions"`
	}
	if err := r.api.Get(ctx, basePath+"/templates", nil, &raw); err != nil {
		return nil, err
	}

	set := make(TemplateSet, len(raw))
	for resource, t := range raw {
		set[resource] = Template{Resource: resource, Permissions: t.Permissions}
	}
	return set, nil
}

func (r *repository) BulkCreateFromTemplate(ctx context.Context, req TemplateRequest) ([]Permission, error) {
	var created []Permission
	if err := r.api.Post(ctx, basePath+"/bulk-from-template", req, &created); err != nil {
		return nil, err
	}
	return created, nil
}
