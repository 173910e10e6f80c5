package user

// RoleRef is the role summary embedded in a user record.
type RoleRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	IsBlocked bool      `json:"isBlocked"`
	Roles     []RoleRef `json:"roles"`
}

// RoleIDs returns the IDs of the user's roles in platform order.
func (u User) RoleIDs() []int64 {
	out := make([]int64, 0, len(u.Roles))
	for _, r := range u.Roles {
		out = append(out, r.ID)
	}
	return out
}
