package models

// Role gates write access to the board.
type Role string

const (
	RoleViewer Role = "viewer" // read-only
	RoleUpper  Role = "upper"  // read + propose fines
)

// Valid reports whether r is one of the two permitted roles.
func (r Role) Valid() bool {
	return r == RoleViewer || r == RoleUpper
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don't expose hash
	Role         Role   `json:"role"`
}
