package models

// Role defines the closed set of role grants the auth collaborator issues.
type Role string

const (
	RoleBuyer        Role = "buyer"
	RoleProjectOwner Role = "project_owner"
	RoleAdmin        Role = "admin"
	RoleTrader       Role = "trader"
)

// ValidRole reports whether r is a known role grant. Unknown grants are
// dropped at the boundary rather than carried as strings.
func ValidRole(r Role) bool {
	switch r {
	case RoleBuyer, RoleProjectOwner, RoleAdmin, RoleTrader:
		return true
	}
	return false
}
