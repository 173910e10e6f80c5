package role

import (
	"context"
	"time"

	"resto-admin/internal/audit"
	"resto-admin/internal/permission"
	"resto-admin/internal/shared/cache"
	"resto-admin/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	CacheKeyPrefix = "roles:"
	AllKey         = CacheKeyPrefix + "all"
)

type Service interface {
	List(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, id int64) (Role, error)
	Create(ctx context.Context, req CreateRoleRequest) (Role, error)
	Update(ctx context.Context, id int64, req UpdateRoleRequest) (Role, error)
	Delete(ctx context.Context, id int64) error
	Permissions(ctx context.Context, id int64) ([]permission.Permission, error)
	GroupedPermissions(ctx context.Context, id int64) ([]ResourceGroup, error)
	Stats(ctx context.Context, id int64) (Stats, error)
	AssignPermissions(ctx context.Context, id int64, permissionIDs []int64) error
	AssignFeatures(ctx context.Context, id int64, featureIDs []int64) error
	Detail(ctx context.Context, id int64) (Detail, error)
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
		logger: zap.L().Named("role.service"),
	}
}

func (s *service) List(ctx context.Context) ([]Role, error) {
	return cache.GetOrLoad(ctx, s.cache, AllKey, s.ttl, s.repo.List)
}

func (s *service) GetByID(ctx context.Context, id int64) (Role, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Role{}, err
	}
	return *r, nil
}

func (s *service) Create(ctx context.Context, req CreateRoleRequest) (Role, error) {
	r, err := s.repo.Create(ctx, req)
	if err != nil {
		return Role{}, err
	}
	s.afterWrite(ctx, "role.create", r.ID, req)
	return *r, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRoleRequest) (Role, error) {
	r, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return Role{}, err
	}
	s.afterWrite(ctx, "role.update", id, req)
	return *r, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, "role.delete", id, nil)
	return nil
}

func (s *service) Permissions(ctx context.Context, id int64) ([]permission.Permission, error) {
	perms, err := s.repo.Permissions(ctx, id)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		perms = []permission.Permission{}
	}
	return perms, nil
}

// GroupedPermissions is recomputed from a fresh fetch on every call.
func (s *service) GroupedPermissions(ctx context.Context, id int64) ([]ResourceGroup, error) {
	perms, err := s.Permissions(ctx, id)
	if err != nil {
		return nil, err
	}
	return GroupByResource(perms), nil
}

func (s *service) Stats(ctx context.Context, id int64) (Stats, error) {
	st, err := s.repo.Stats(ctx, id)
	if err != nil {
		return Stats{}, err
	}
	return *st, nil
}

func (s *service) AssignPermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	if permissionIDs == nil {
		permissionIDs = []int64{}
	}
	if err := s.repo.AssignPermissions(ctx, id, permissionIDs); err != nil {
		return err
	}
	s.afterWrite(ctx, "role.permissions.assign", id, permissionIDs)
	return nil
}

func (s *service) AssignFeatures(ctx context.Context, id int64, featureIDs []int64) error {
	if featureIDs == nil {
		featureIDs = []int64{}
	}
	if err := s.repo.AssignFeatures(ctx, id, featureIDs); err != nil {
		return err
	}
	s.afterWrite(ctx, "role.features.assign", id, featureIDs)
	return nil
}

// Detail loads the role, its permissions and its stats concurrently. The first failure cancels the others
// and is returned.
func (s *service) Detail(ctx context.Context, id int64) (Detail, error) {
	var (
		role  Role
		perms []permission.Permission
		stats Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		role, err = s.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		perms, err = s.Permissions(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.Stats(gctx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return Detail{}, err
	}

	return Detail{
		Role:        role,
		Permissions: perms,
		Groups:      GroupByResource(perms),
		Stats:       stats,
	}, nil
}

func (s *service) afterWrite(ctx context.Context, action string, id int64, payload any) {
	s.cache.Invalidate(ctx, AllKey)

	if err := s.audit.Record(ctx, audit.Entry{
		Action:     action,
		Resource:   "role",
		ResourceID: audit.ID(id),
		Payload:    payload,
	}); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("audit record failed",
			zap.String("action", action),
			zap.Int64("role_id", id),
			zap.Error(err),
		)
	}
}
