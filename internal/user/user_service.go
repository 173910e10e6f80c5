package user

import (
	"context"
	"sort"
	"strings"

	"resto-admin/internal/audit"
	"resto-admin/internal/shared/contextutil"
	"resto-admin/internal/shared/request"
	usererrors "resto-admin/internal/user/errors"

	"go.uber.org/zap"
)

type Page struct {
	Items []User
	Total int64
}

type Service interface {
	List(ctx context.Context, q ListQuery) (Page, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error)
	Delete(ctx context.Context, id int64) error
	AssignRoles(ctx context.Context, id int64, roleIDs []int64) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
}

type service struct {
	repo   Repository
	audit  audit.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder) Service {
	if recorder == nil {
		recorder = audit.Nop()
	}
	return &service{repo: repo, audit: recorder, logger: zap.L().Named("user.service")}
}

// List filters by username or email, sorts and pages in memory; the platform list is unpaged.
func (s *service) List(ctx context.Context, q ListQuery) (Page, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return Page{}, err
	}

	term := strings.TrimSpace(strings.ToLower(q.Q))
	if term != "" {
		filtered := make([]User, 0, len(users))
		for _, u := range users {
			if strings.Contains(strings.ToLower(u.Username), term) || strings.Contains(strings.ToLower(u.Email), term) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	desc := strings.EqualFold(q.SortDir, "desc")
	sortBy := strings.ToLower(strings.TrimSpace(q.SortBy))
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		if desc {
			a, b = b, a
		}
		switch sortBy {
		case "id":
			return a.ID < b.ID
		case "email":
			return strings.ToLower(a.Email) < strings.ToLower(b.Email)
		default:
			return strings.ToLower(a.Username) < strings.ToLower(b.Username)
		}
	})

	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	total := len(users)
	start := min(request.Offset(page, size), total)
	end := start + min(size, total-start)

	return Page{Items: users[start:end], Total: int64(total)}, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	return *u, nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Info("creating user", zap.String("username", req.Username))

	u, err := s.repo.Create(ctx, req)
	if err != nil {
		l.Warn("create user failed", zap.Error(err))
		return User{}, err
	}

	s.record(ctx, "user.create", u.ID, map[string]any{
		"username": req.Username,
		"email":    req.Email,
		"isAdmin":  req.IsAdmin,
		"roleIds":  req.RoleIDs,
	})
	return *u, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	u, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return User{}, err
	}
	s.record(ctx, "user.update", id, req)
	return *u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "user.delete", id, nil)
	return nil
}

func (s *service) AssignRoles(ctx context.Context, id int64, roleIDs []int64) error {
	if roleIDs == nil {
		roleIDs = []int64{}
	}
	if err := s.repo.SetRoles(ctx, id, roleIDs); err != nil {
		return err
	}
	s.record(ctx, "user.roles.assign", id, roleIDs)
	return nil
}

func (s *service) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	if blocked && contextutil.GetUserID(ctx) == audit.ID(id) {
		return usererrors.ErrCannotBlockSelf
	}
	if err := s.repo.SetBlocked(ctx, id, blocked); err != nil {
		return err
	}

	action := "user.unblock"
	if blocked {
		action = "user.block"
	}
	s.record(ctx, action, id, nil)
	return nil
}

func (s *service) record(ctx context.Context, action string, id int64, payload any) {
	if err := s.audit.Record(ctx, audit.Entry{
		Action:     action,
		Resource:   "user",
		ResourceID: audit.ID(id),
		Payload:    payload,
	}); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("audit record failed",
			zap.String("action", action),
			zap.Int64("user_id", id),
			zap.Error(err),
		)
	}
}
