package user

import (
	"context"
	"fmt"
	"net/http"

	"resto-admin/internal/platform"
	usererrors "resto-admin/internal/user/errors"
)

const basePath = "/users"

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id int64) error
	SetRoles(ctx context.Context, id int64, roleIDs []int64) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
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

// mapErr turns platform 404/409 responses into user errors. A conflict is attributed to the
// field the platform names, or guessed from its message.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if platform.IsStatus(err, http.StatusNotFound) {
		return usererrors.ErrUserNotFound
	}
	field, ok := platform.ConflictField(err)
	if !ok {
		return err
	}
	if field == "email" {
		return usererrors.ErrEmailTaken.WithErr(err)
	}
	return usererrors.ErrUsernameTaken.WithErr(err)
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.api.Get(ctx, basePath, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := r.api.Get(ctx, itemPath(id), nil, &u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	var u User
	if err := r.api.Post(ctx, basePath, req, &u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *repository) Update(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	var u User
	if err := r.api.Put(ctx, itemPath(id), req, &u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return mapErr(r.api.Delete(ctx, itemPath(id), nil, nil))
}

// SetRoles replaces the user's roles through a user update.
func (r *repository) SetRoles(ctx context.Context, id int64, roleIDs []int64) error {
	return mapErr(r.api.Put(ctx, itemPath(id), AssignRolesRequest{RoleIDs: roleIDs}, nil))
}

func (r *repository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	return mapErr(r.api.Put(ctx, itemPath(id), SetBlockedRequest{IsBlocked: &blocked}, nil))
}
