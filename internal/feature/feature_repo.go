package feature

import (
	"context"
	"fmt"
	"net/http"

	featureerrors "resto-admin/internal/feature/errors"
	"resto-admin/internal/platform"
)

const basePath = "/feature"

//go:generate mockgen -source=feature_repo.go -destination=mock/feature_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context) ([]Feature, error)
	GetByID(ctx context.Context, id int64) (*Feature, error)
	Create(ctx context.Context, req CreateFeatureRequest) (*Feature, error)
	Update(ctx context.Context, id int64, req UpdateFeatureRequest) (*Feature, error)
	Delete(ctx context.Context, id int64) error
	AttachPermissions(ctx context.Context, id int64, permissionIDs []int64) error
	DetachPermissions(ctx context.Context, id int64, permissionIDs []int64) error
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

func (r *repository) List(ctx context.Context) ([]Feature, error) {
	var features []Feature
	if err := r.api.Get(ctx, basePath, nil, &features); err != nil {
		return nil, err
	}
	return features, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Feature, error) {
	var f Feature
	if err := r.api.Get(ctx, itemPath(id), nil, &f); err != nil {
		if platform.IsStatus(err, http.StatusNotFound) {
			return nil, featureerrors.ErrFeatureNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *repository) Create(ctx context.Context, req CreateFeatureRequest) (*Feature, error) {
	var f Feature
	if err := r.api.Post(ctx, basePath, req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateFeatureRequest) (*Feature, error) {
	var f Feature
	if err := r.api.Put(ctx, itemPath(id), req, &f); err != nil {
		if platform.IsStatus(err, http.StatusNotFound) {
			return nil, featureerrors.ErrFeatureNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	err := r.api.Delete(ctx, itemPath(id), nil, nil)
	if platform.IsStatus(err, http.StatusNotFound) {
		return featureerrors.ErrFeatureNotFound
	}
	return err
}

type permissionIDsBody struct {
	PermissionIDs []int64 `json:"permissionIds"`
}

func (r *repository) AttachPermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	return r.api.Post(ctx, itemPath(id)+"/permissions", permissionIDsBody{PermissionIDs: permissionIDs}, nil)
}

func (r *repository) DetachPermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	return r.api.Delete(ctx, itemPath(id)+"/permissions", permissionIDsBody{PermissionIDs: permissionIDs}, nil)
}
