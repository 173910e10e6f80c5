package auth

import (
	"net/http"
	"time"

	autherrors "resto-admin/internal/auth/errors"
	"resto-admin/internal/session"
	"resto-admin/internal/shared/apperror"
	"resto-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const rememberCookie = "remember_user"

type CookieConfig struct {
	Name        string
	Secure      bool
	RememberTTL time.Duration
}

type Handler struct {
	service Service
	sealer  *Sealer
	cookies CookieConfig
	logger  *zap.Logger
}

func NewHandler(s Service, sealer *Sealer, cookies CookieConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.L()
	}
	return &Handler{service: s, sealer: sealer, cookies: cookies, logger: logger.Named("auth.handler")}
}

func (h *Handler) fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) started(c *gin.Context, sess *session.Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	h.setCookie(c, h.cookies.Name, sess.ID, maxAge)

	if sess.Remember && h.sealer != nil {
		sealed, err := h.sealer.Seal(sess.Username)
		if err != nil {
			h.logger.Warn("seal remembered user", zap.Error(err))
		} else {
			h.setCookie(c, rememberCookie, sealed, int(h.cookies.RememberTTL.Seconds()))
		}
	} else {
		h.setCookie(c, rememberCookie, "", -1)
	}

	response.Success(c, http.StatusOK, SessionResponse{SessionID: sess.ID, User: toMe(sess)}, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.started(c, sess)
}

func (h *Handler) Exchange(c *gin.Context) {
	var req ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}

	sess, err := h.service.Exchange(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.started(c, sess)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}
	if err := h.service.Register(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"registered": true}, nil)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}
	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true}, nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperror.MapValidationError(err))
		return
	}
	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reset": true}, nil)
}

func (h *Handler) OAuthRedirect(c *gin.Context) {
	target, err := h.service.OAuthURL(c.Param("provider"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// Remembered returns the username sealed in the remember-me cookie, for prefilling the login form.
func (h *Handler) Remembered(c *gin.Context) {
	sealed, err := c.Cookie(rememberCookie)
	if err != nil || h.sealer == nil {
		h.fail(c, autherrors.ErrNoRememberedUser)
		return
	}
	username, err := h.sealer.Open(sealed)
	if err != nil {
		h.setCookie(c, rememberCookie, "", -1)
		h.fail(c, autherrors.ErrNoRememberedUser)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"username": username}, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	sess, ok := session.Current(c)
	if !ok {
		h.fail(c, apperror.ErrUnauthorized)
		return
	}
	fresh, err := h.service.Refresh(c.Request.Context(), sess)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toMe(fresh), nil)
}

func (h *Handler) Logout(c *gin.Context) {
	sess, ok := session.Current(c)
	if !ok {
		h.fail(c, apperror.ErrUnauthorized)
		return
	}
	if err := h.service.Logout(c.Request.Context(), sess); err != nil {
		h.fail(c, err)
		return
	}
	h.setCookie(c, h.cookies.Name, "", -1)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	sess, ok := session.Current(c)
	if !ok {
		h.fail(c, apperror.ErrUnauthorized)
		return
	}
	response.Success(c, http.StatusOK, toMe(sess), nil)
}
