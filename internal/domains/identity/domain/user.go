package domain

import "time"

// Role is the access role of a store account. Unknown roles are kept as-is.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleCustomer Role = "CUSTOMER"
)

// Label returns the display label for the role, or the raw value when unknown.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Quản trị viên"
	case RoleEmployee:
		return "Nhân viên"
	case RoleCustomer:
		return "Khách hàng"
	default:
		return string(r)
	}
}

// IsStaff reports whether the role may use staff-only order endpoints.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User is a read-only view of a store account.
type User struct {
	ID        int64
	Username  string
	Email     string
	FullName  string
	Phone     string
	Address   string
	Role      Role
	Active    bool
	CreatedAt time.Time
}

// DisplayName prefers the full name and falls back to the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
