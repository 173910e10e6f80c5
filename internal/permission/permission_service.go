package permission

import (
	"context"
	"fmt"
	"slices"
	"time"

	"resto-admin/internal/audit"
	permissionerrors "resto-admin/internal/permission/errors"
	"resto-admin/internal/shared/cache"
	"resto-admin/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	CacheKeyPrefix = "permissions:"
	AllKey         = CacheKeyPrefix + "all"
	TemplatesKey   = CacheKeyPrefix + "templates"
	ResourcesKey   = CacheKeyPrefix + "resources"
	ActionsKey     = CacheKeyPrefix + "actions"
)

type Service interface {
	List(ctx context.Context) ([]Permission, error)
	GetByID(ctx context.Context, id int64) (Permission, error)
	Create(ctx context.Context, req CreatePermissionRequest) (Permission, error)
	Update(ctx context.Context, id int64, req UpdatePermissionRequest) (Permission, error)
	Delete(ctx context.Context, id int64) error
	Resources(ctx context.Context) ([]string, error)
	Actions(ctx context.Context) ([]string, error)
	Templates(ctx context.Context) (TemplateSet, error)
	Preview(ctx context.Context, req TemplateRequest) (PreviewResponse, error)
	BulkCreateFromTemplate(ctx context.Context, req TemplateRequest) ([]Permission, error)
}

type Config struct {
	TTL         time.Duration
	TemplateTTL time.Duration
}

type service struct {
	repo   Repository
	cache  *cache.Cache
	cfg    Config
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, c *cache.Cache, cfg Config, recorder audit.Recorder) Service {
	if recorder == nil {
		recorder = audit.Nop()
	}
	return &service{
		repo:   repo,
		cache:  c,
		cfg:    cfg,
		audit:  recorder,
		logger: zap.L().Named("permission.service"),
	}
}

func (s *service) List(ctx context.Context) ([]Permission, error) {
	return cache.GetOrLoad(ctx, s.cache, AllKey, s.cfg.TTL, s.repo.List)
}

func (s *service) GetByID(ctx context.Context, id int64) (Permission, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Permission{}, err
	}
	return *p, nil
}

func (s *service) Create(ctx context.Context, req CreatePermissionRequest) (Permission, error) {
	p, err := s.repo.Create(ctx, req)
	if err != nil {
		return Permission{}, err
	}
	s.afterWrite(ctx, "permission.create", audit.ID(p.ID), req)
	return *p, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdatePermissionRequest) (Permission, error) {
	p, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return Permission{}, err
	}
	s.afterWrite(ctx, "permission.update", audit.ID(id), req)
	return *p, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, "permission.delete", audit.ID(id), nil)
	return nil
}

func (s *service) Resources(ctx context.Context) ([]string, error) {
	return cache.GetOrLoad(ctx, s.cache, ResourcesKey, s.cfg.TemplateTTL, s.repo.Resources)
}

func (s *service) Actions(ctx context.Context) ([]string, error) {
	return cache.GetOrLoad(ctx, s.cache, ActionsKey, s.cfg.TemplateTTL, s.repo.Actions)
}

// Templates is reference data; it is fetched once and served from cache until TemplateTTL expires.
func (s *service) Templates(ctx context.Context) (TemplateSet, error) {
	return cache.GetOrLoad(ctx, s.cache, TemplatesKey, s.cfg.TemplateTTL, s.repo.Templates)
}

func (s *service) selection(ctx context.Context, req TemplateRequest) (*Selection, error) {
	set, err := s.Templates(ctx)
	if err != nil {
		return nil, err
	}

	t, ok := set.Lookup(req.Resource)
	if !ok {
		return nil, permissionerrors.ErrUnknownResource.WithErr(fmt.Errorf("resource %q", req.Resource))
	}

	sel := NewSelection(t)
	for _, action := range req.SelectedActions {
		if err := sel.Select(action); err != nil {
			return nil, err
		}
	}
	for _, op := range req.Ops {
		if err := sel.Apply(op); err != nil {
			return nil, err
		}
	}
	return sel, nil
}

func (s *service) Preview(ctx context.Context, req TemplateRequest) (PreviewResponse, error) {
	sel, err := s.selection(ctx, req)
	if err != nil {
		return PreviewResponse{}, err
	}
	return PreviewResponse{
		Resource:        req.Resource,
		SelectedActions: sel.Selected(),
		Candidates:      sel.Candidates(),
	}, nil
}

// BulkCreateFromTemplate validates the selection against the cached template, then lets the platform
// resolve and create the concrete permissions.
func (s *service) BulkCreateFromTemplate(ctx context.Context, req TemplateRequest) ([]Permission, error) {
	sel, err := s.selection(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(sel.Selected()) == 0 {
		return nil, permissionerrors.ErrEmptySelection
	}

	body := TemplateRequest{Resource: req.Resource, SelectedActions: sel.Selected()}
	created, err := s.repo.BulkCreateFromTemplate(ctx, body)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, "permission.bulk_create", req.Resource, body)
	return created, nil
}

func (s *service) afterWrite(ctx context.Context, action, resourceID string, payload any) {
	s.cache.Invalidate(ctx, AllKey)

	if err := s.audit.Record(ctx, audit.Entry{
		Action:     action,
		Resource:   "permission",
		ResourceID: resourceID,
		Payload:    payload,
	}); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("audit record failed",
			zap.String("action", action),
			zap.String("resource_id", resourceID),
			zap.Error(err),
		)
	}
}

// IDs returns the IDs of perms in ascending order.
func IDs(perms []Permission) []int64 {
	out := make([]int64, 0, len(perms))
	for _, p := range perms {
		out = append(out, p.ID)
	}
	slices.Sort(out)
	return out
}
