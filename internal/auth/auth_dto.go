package auth

import (
	"time"

	"resto-admin/internal/session"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// ExchangeRequest carries the one-time code the platform redirected back with after OAuth.
type ExchangeRequest struct {
	Code     string `json:"code" binding:"required"`
	Remember bool   `json:"remember"`
}

type MeResponse struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	IsAdmin    bool            `json:"isAdmin"`
	Roles      []string        `json:"roles"`
	Grants     []session.Grant `json:"grants"`
	FeatureIDs []int64         `json:"featureIds"`
	ExpiresAt  time.Time       `json:"expiresAt"`
}

// SessionResponse is returned when a session starts. SessionID lets non-browser clients use
// "Authorization: Bearer <sessionId>" instead of the cookie.
type SessionResponse struct {
	SessionID string     `json:"sessionId"`
	User      MeResponse `json:"user"`
}

func toMe(s *session.Session) MeResponse {
	return MeResponse{
		ID:         s.UserID,
		Username:   s.Username,
		IsAdmin:    s.IsAdmin,
		Roles:      s.Roles,
		Grants:     s.Grants,
		FeatureIDs: s.FeatureIDs,
		ExpiresAt:  s.ExpiresAt,
	}
}
