package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"resto-admin/internal/session"
	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/contextutil"
	"resto-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionRefresher renews the platform access token held by a session when it is about to expire.
type SessionRefresher interface {
	EnsureFresh(ctx context.Context, s *session.Session) (*session.Session, error)
}

// SessionTTL is the idle lifetime a session gets back on every authenticated request.
// A zero value turns sliding expiry off.
type SessionTTL struct {
	Default  time.Duration
	Remember time.Duration
}

func (t SessionTTL) For(s *session.Session) time.Duration {
	if s.Remember && t.Remember > 0 {
		return t.Remember
	}
	return t.Default
}

// AuthMiddleware resolves the session from the session cookie or an "Authorization: Bearer <session id>"
// header, refreshes its platform token when needed, slides its expiry and exposes it to handlers and
// outgoing platform calls.
func AuthMiddleware(store session.Store, refresher SessionRefresher, ttl SessionTTL, cookieName string) gin.HandlerFunc {
	log := zap.L().Named("middleware.auth")

	return func(c *gin.Context) {
		sessionID, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || strings.TrimSpace(sessionID) == "" {
			sessionID = ""
			if cookie, err := c.Cookie(cookieName); err == nil {
				sessionID = cookie
			}
		}

		if sessionID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Session not found", nil)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		sess, err := store.Load(ctx, strings.TrimSpace(sessionID))
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Error("load session failed", zap.Error(err))
			}
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Session expired", nil)
			c.Abort()
			return
		}

		if refresher != nil {
			fresh, err := refresher.EnsureFresh(ctx, sess)
			if err != nil {
				log.Warn("session refresh failed", zap.Int64("user_id", sess.UserID), zap.Error(err))
				httpErr := apperror.ToHTTP(err)
				response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
				c.Abort()
				return
			}
			sess = fresh
		}

		if d := ttl.For(sess); d > 0 {
			if err := store.Touch(ctx, sess, d); err != nil {
				log.Warn("session touch failed", zap.String("session_id", sess.ID), zap.Error(err))
			}
		}

		userID := strconv.FormatInt(sess.UserID, 10)
		session.Attach(c, sess)
		c.Set("user_id", userID)

		ctx = contextutil.WithUserID(ctx, userID)
		ctx = contextutil.WithAccessToken(ctx, sess.AccessToken)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", userID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
