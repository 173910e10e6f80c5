package user

type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	IsAdmin  bool    `json:"isAdmin"`
	RoleIDs  []int64 `json:"roleIds" binding:"omitempty,dive,gt=0"`
}

type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	IsAdmin  bool   `json:"isAdmin"`
}

type AssignRolesRequest struct {
	RoleIDs []int64 `json:"roleIds" binding:"dive,gt=0"`
}

type SetBlockedRequest struct {
	IsBlocked *bool `json:"isBlocked" binding:"required"`
}

// ListQuery filters and pages the user list.
type ListQuery struct {
	Q        string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}
