// Package session holds the signed-in admin's state server-side, keyed by an opaque session ID.
package session

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Grant is one resource/action pair the user holds through a role.
type Grant struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type Session struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"userId"`
	Username     string    `json:"username"`
	IsAdmin      bool      `json:"isAdmin"`
	Roles        []string  `json:"roles"`
	Grants       []Grant   `json:"grants"`
	FeatureIDs   []int64   `json:"featureIds"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	Remember     bool      `json:"remember"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

const ginKey = "session"

// Attach makes s available to later handlers in the chain.
func Attach(c *gin.Context, s *Session) {
	c.Set(ginKey, s)
}

// Current returns the session attached by the auth middleware.
func Current(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(ginKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}
