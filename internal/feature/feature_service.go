package feature

import (
	"context"
	"errors"
	"time"

	"resto-admin/internal/audit"
	featureerrors "resto-admin/internal/feature/errors"
	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/cache"
	"resto-admin/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	CacheKeyPrefix = "features:"
	AllKey         = CacheKeyPrefix + "all"
)

type Service interface {
	List(ctx context.Context) ([]Feature, error)
	Tree(ctx context.Context) ([]*Node, error)
	Sidebar(ctx context.Context, viewer Viewer) ([]NavItem, error)
	GetByID(ctx context.Context, id int64) (Feature, error)
	Create(ctx context.Context, req CreateFeatureRequest) (Feature, error)
	Update(ctx context.Context, id int64, req UpdateFeatureRequest) (Feature, error)
	Delete(ctx context.Context, id int64) error
	AttachPermissions(ctx context.Context, id int64, permissionIDs []int64) error
	DetachPermissions(ctx context.Context, id int64, permissionIDs []int64) error
}

type service struct {
	repo   Repository
	cache  *cache.Cache
	ttl    time.Duration
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, c *cache.Cache, ttl time.Duration, recorder audit.Recorder) Service {
	if recorder == nil {
		recorder = audit.Nop()
	}
	return &service{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		audit:  recorder,
		logger: zap.L().Named("feature.service"),
	}
}

func (s *service) List(ctx context.Context) ([]Feature, error) {
	return cache.GetOrLoad(ctx, s.cache, AllKey, s.ttl, s.repo.List)
}

func (s *service) Tree(ctx context.Context) ([]*Node, error) {
	flat, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	roots, err := BuildTree(flat)
	if err != nil {
		s.reportBadHierarchy(ctx, err)
		return nil, err
	}
	SortTree(roots)
	return roots, nil
}

func (s *service) Sidebar(ctx context.Context, viewer Viewer) ([]NavItem, error) {
	flat, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	items, err := BuildSidebar(flat, viewer)
	if err != nil {
		s.reportBadHierarchy(ctx, err)
		return nil, err
	}
	return items, nil
}

func (s *service) reportBadHierarchy(ctx context.Context, err error) {
	contextutil.GetLogger(ctx, s.logger).Error("platform returned an invalid feature hierarchy", zap.Error(err))
}

func (s *service) GetByID(ctx context.Context, id int64) (Feature, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Feature{}, err
	}
	return *f, nil
}

func (s *service) Create(ctx context.Context, req CreateFeatureRequest) (Feature, error) {
	f, err := s.repo.Create(ctx, req)
	if err != nil {
		return Feature{}, err
	}

	s.afterWrite(ctx, "feature.create", f.ID, req)
	return *f, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateFeatureRequest) (Feature, error) {
	if err := s.checkParent(ctx, id, req.ParentID); err != nil {
		return Feature{}, err
	}

	f, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return Feature{}, err
	}

	s.afterWrite(ctx, "feature.update", id, req)
	return *f, nil
}

// checkParent refuses re-parenting that would create a cycle.
func (s *service) checkParent(ctx context.Context, id int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if *parentID == id {
		return featureerrors.ErrSelfParent
	}

	roots, err := s.Tree(ctx)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeUpstreamDataInvalid {
			// The stored hierarchy is already broken; let the platform decide on this edit.
			return nil
		}
		return err
	}

	node := Find(roots, id)
	if node == nil {
		return nil
	}
	for _, descendant := range CollectIDs(node)[1:] {
		if descendant == *parentID {
			return featureerrors.ErrParentIsDescendant
		}
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.afterWrite(ctx, "feature.delete", id, nil)
	return nil
}

func (s *service) AttachPermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	if err := s.repo.AttachPermissions(ctx, id, permissionIDs); err != nil {
		return err
	}

	s.afterWrite(ctx, "feature.permissions.attach", id, permissionIDs)
	return nil
}

func (s *service) DetachPermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	if err := s.repo.DetachPermissions(ctx, id, permissionIDs); err != nil {
		return err
	}

	s.afterWrite(ctx, "feature.permissions.detach", id, permissionIDs)
	return nil
}

// afterWrite drops the cached list and records the change. The platform has already committed the write,
// so failures here are logged rather than returned.
func (s *service) afterWrite(ctx context.Context, action string, id int64, payload any) {
	s.cache.Invalidate(ctx, AllKey)

	if err := s.audit.Record(ctx, audit.Entry{
		Action:     action,
		Resource:   "feature",
		ResourceID: audit.ID(id),
		Payload:    payload,
	}); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("audit record failed",
			zap.String("action", action),
			zap.Int64("feature_id", id),
			zap.Error(err),
		)
	}
}
