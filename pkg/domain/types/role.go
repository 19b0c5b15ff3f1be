package types

// Role represents a privilege level stored in the user_roles table
type Role string

const (
	RoleHRAdmin     Role = "hr_admin"
	RoleMasterAdmin Role = "master_admin"
	RoleStatusAdmin Role = "status_admin"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is one of the known privilege levels
func (r Role) IsValid() bool {
	switch r {
	case RoleHRAdmin, RoleMasterAdmin, RoleStatusAdmin:
		return true
	default:
		return false
	}
}
