package collab

import "time"

// Role expresses the platform-wide role of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User is the identity record other aggregates reference by ID.
// Immutable after creation except Role and Active.
type User struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Role      Role      `db:"role"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// IsAdmin tells whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
