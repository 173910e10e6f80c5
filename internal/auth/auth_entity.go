package auth

import (
	"resto-admin/internal/feature"
	"resto-admin/internal/permission"
)

// Tokens is what the platform hands out on sign-in and refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Profile is the platform's view of the signed-in user, roles expanded.
type Profile struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	IsAdmin   bool          `json:"isAdmin"`
	IsBlocked bool          `json:"isBlocked"`
	Roles     []ProfileRole `json:"roles"`
}

type ProfileRole struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Code        string                  `json:"code"`
	Permissions []permission.Permission `json:"permissions"`
	Features    []feature.Feature       `json:"features"`
}

// Providers are the OAuth identity providers the platform supports.
var Providers = map[string]struct{}{
	"google":   {},
	"facebook": {},
}
