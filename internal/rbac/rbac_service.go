package rbac

import (
	"strings"
	"sync"

	"resto-admin/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{
		enforcer: enforcer,
		logger:   zap.L().Named("rbac.service"),
	}
}

// loadGrantsUnlocked replaces the enforcer policy with the grants carried by one request.
func (s *service) loadGrantsUnlocked(req domain.EnforceRequest) error {
	s.enforcer.ClearPolicy()

	roles := make(map[string]struct{})
	for _, g := range req.Grants {
		role := strings.TrimSpace(g.Role)
		resource := strings.ToLower(strings.TrimSpace(g.Resource))
		action := strings.ToLower(strings.TrimSpace(g.Action))
		if role == "" || resource == "" || action == "" {
			continue
		}

		if _, seen := roles[role]; !seen {
			roles[role] = struct{}{}
			if _, err := s.enforcer.AddGroupingPolicy(req.UserID, role); err != nil {
				return err
			}
		}
		if _, err := s.enforcer.AddPolicy(role, resource, action); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if req.IsAdmin {
		return true, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadGrantsUnlocked(req); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.UserID,
		strings.ToLower(req.Resource),
		strings.ToLower(req.Action),
	)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("user_id", req.UserID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("user_id", req.UserID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
		zap.Int("grants", len(req.Grants)),
	)
	return allowed, nil
}
