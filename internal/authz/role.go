package authz

import "fmt"

// Role is the closed set of caller roles recognised by the gate.
type Role string

const (
	RoleSuperadmin         Role = "superadmin"
	RoleAccommodationOwner Role = "accommodation_owner"
	RoleCustomer           Role = "customer"
)

// IsValid returns true if the role is one of the canonical roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperadmin, RoleAccommodationOwner, RoleCustomer:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a claim value to a Role. Only canonical spellings are accepted.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}
