package models

// Role is the authorization level the backend assigns to a user.
// Elevated users see every organization; standard users are scoped
// to their own.
type Role string

const (
	RoleElevated Role = "elevated"
	RoleStandard Role = "standard"
)

// User is the identity payload returned by GET /auth/me and embedded
// in a successful login response.
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	OrganizationID string `json:"organization_id,omitempty"`
}

// IsElevated reports whether the user may access cross-tenant views.
func (u *User) IsElevated() bool {
	return u.Role == RoleElevated
}
