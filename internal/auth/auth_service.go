package auth

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	autherrors "resto-admin/internal/auth/errors"
	"resto-admin/internal/session"
	"resto-admin/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*session.Session, error)
	Register(ctx context.Context, req RegisterRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	OAuthURL(provider string) (string, error)
	Exchange(ctx context.Context, req ExchangeRequest) (*session.Session, error)
	Refresh(ctx context.Context, s *session.Session) (*session.Session, error)
	EnsureFresh(ctx context.Context, s *session.Session) (*session.Session, error)
	Logout(ctx context.Context, s *session.Session) error
}

type Config struct {
	SessionTTL  time.Duration
	RememberTTL time.Duration
	RefreshSkew time.Duration
	// PlatformURL is the public base URL of the platform API, used for OAuth redirects.
	PlatformURL string
}

type service struct {
	repo   Repository
	store  session.Store
	cfg    Config
	now    func() time.Time
	flight singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, store session.Store, cfg Config) Service {
	if cfg.RememberTTL < cfg.SessionTTL {
		cfg.RememberTTL = cfg.SessionTTL
	}
	return &service{
		repo:   repo,
		store:  store,
		cfg:    cfg,
		now:    time.Now,
		logger: zap.L().Named("auth.service"),
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*session.Session, error) {
	tokens, err := s.repo.Login(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, tokens, req.Remember)
}

func (s *service) Register(ctx context.Context, req RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	return s.repo.Register(ctx, req)
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	return s.repo.ForgotPassword(ctx, strings.TrimSpace(email))
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return s.repo.ResetPassword(ctx, req)
}

// OAuthURL is where the browser goes to sign in with provider. The platform redirects back with a code
// that Exchange turns into a session.
func (s *service) OAuthURL(provider string) (string, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if _, ok := Providers[provider]; !ok {
		return "", autherrors.ErrUnknownProvider.WithErr(fmt.Errorf("provider %q", provider))
	}
	return url.JoinPath(s.cfg.PlatformURL, "auth", provider)
}

func (s *service) Exchange(ctx context.Context, req ExchangeRequest) (*session.Session, error) {
	tokens, err := s.repo.Exchange(ctx, strings.TrimSpace(req.Code))
	if err != nil {
		return nil, err
	}
	return s.start(ctx, tokens, req.Remember)
}

// start resolves the token owner and persists a new session for them.
func (s *service) start(ctx context.Context, tokens Tokens, remember bool) (*session.Session, error) {
	profile, err := s.repo.Me(contextutil.WithAccessToken(ctx, tokens.AccessToken))
	if err != nil {
		return nil, err
	}
	if profile.IsBlocked {
		return nil, autherrors.ErrAccountBlocked
	}

	ttl := s.cfg.SessionTTL
	if remember {
		ttl = s.cfg.RememberTTL
	}
	roles, grants, featureIDs := derive(profile)
	sess := &session.Session{
		UserID:       profile.ID,
		Username:     profile.Username,
		IsAdmin:      profile.IsAdmin,
		Roles:        roles,
		Grants:       grants,
		FeatureIDs:   featureIDs,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Remember:     remember,
		ExpiresAt:    s.now().Add(ttl),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("session started",
		zap.Int64("user_id", sess.UserID),
		zap.Bool("remember", remember),
		zap.Int("grants", len(grants)),
	)
	return sess, nil
}

// derive flattens the profile's roles into role codes, resource/action grants and the set of
// feature IDs the user may see. Permissions missing a resource or action grant nothing.
func derive(p Profile) (roles []string, grants []session.Grant, featureIDs []int64) {
	seenFeature := make(map[int64]struct{})
	for _, r := range p.Roles {
		code := r.Code
		if code == "" {
			code = r.Name
		}
		roles = append(roles, code)

		for _, perm := range r.Permissions {
			if !perm.IsActive || perm.Resource == nil || perm.Action == nil {
				continue
			}
			grants = append(grants, session.Grant{
				Role:     code,
				Resource: strings.ToLower(*perm.Resource),
				Action:   strings.ToLower(*perm.Action),
			})
		}
		for _, f := range r.Features {
			if _, ok := seenFeature[f.ID]; ok {
				continue
			}
			seenFeature[f.ID] = struct{}{}
			featureIDs = append(featureIDs, f.ID)
		}
	}
	slices.Sort(featureIDs)
	return roles, grants, featureIDs
}

// EnsureFresh refreshes the platform tokens when the access token expires within the configured skew.
// Opaque tokens are passed through untouched.
func (s *service) EnsureFresh(ctx context.Context, sess *session.Session) (*session.Session, error) {
	exp, ok := tokenExpiry(sess.AccessToken)
	if !ok || exp.After(s.now().Add(s.cfg.RefreshSkew)) {
		return sess, nil
	}
	return s.Refresh(ctx, sess)
}

// Refresh swaps the refresh token for new platform tokens. Concurrent refreshes of one session share a
// single platform call, since a rotated refresh token is only good once.
func (s *service) Refresh(ctx context.Context, sess *session.Session) (*session.Session, error) {
	if sess.RefreshToken == "" {
		return nil, autherrors.ErrSessionExpired
	}

	key := sess.ID
	if key == "" {
		key = "token:" + sess.RefreshToken
	}
	v, err, shared := s.flight.Do(key, func() (any, error) {
		return s.refresh(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("session refresh coalesced", zap.String("session_id", sess.ID))
	}
	fresh := *v.(*session.Session)
	return &fresh, nil
}

func (s *service) refresh(ctx context.Context, sess *session.Session) (*session.Session, error) {
	// A request that loaded the session before another one refreshed it still holds the old tokens.
	if sess.ID != "" {
		if stored, err := s.store.Load(ctx, sess.ID); err == nil && stored.AccessToken != sess.AccessToken {
			return stored, nil
		}
	}

	tokens, err := s.repo.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		return nil, err
	}

	fresh := *sess
	fresh.AccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		fresh.RefreshToken = tokens.RefreshToken
	}
	if err := s.store.Save(ctx, &fresh); err != nil {
		return nil, err
	}
	return &fresh, nil
}

// Logout ends the platform session (best effort) and always deletes the local one.
func (s *service) Logout(ctx context.Context, sess *session.Session) error {
	if err := s.repo.Logout(contextutil.WithAccessToken(ctx, sess.AccessToken)); err != nil {
		s.logger.Warn("platform logout failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
	}
	return s.store.Delete(ctx, sess.ID)
}
