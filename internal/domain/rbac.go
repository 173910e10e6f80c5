package domain

import "resto-admin/internal/session"

// EnforceRequest asks whether a signed-in user may perform action on resource.
// It lives outside the rbac package so middleware can depend on it without importing rbac.
type EnforceRequest struct {
	UserID   string          `json:"userId"`
	IsAdmin  bool            `json:"isAdmin"`
	Grants   []session.Grant `json:"-"`
	Resource string          `json:"resource" binding:"required"`
	Action   string          `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
