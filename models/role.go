package models

import "slices"

// Role is the rank a member holds inside one organization. Ranks are totally
// ordered: OWNER > ADMIN > MEMBER. The numeric values are carried in api key
// claims and must not be renumbered.
type Role int

const (
	NO_ROLE Role = 0
	MEMBER  Role = 100
	ADMIN   Role = 200
	OWNER   Role = 300
)

func (r Role) String() string {
	switch r {
	case MEMBER:
		return "MEMBER"
	case ADMIN:
		return "ADMIN"
	case OWNER:
		return "OWNER"
	default:
		return "NO_ROLE"
	}
}

func RoleFromString(s string) Role {
	switch s {
	case "MEMBER":
		return MEMBER
	case "ADMIN":
		return ADMIN
	case "OWNER":
		return OWNER
	}
	return NO_ROLE
}

func (r Role) IsValid() bool {
	return r == MEMBER || r == ADMIN || r == OWNER
}

// Rank exposes the numeric ordering used by the api key visibility filter and
// the rank monotonicity checks of the policy layer.
func (r Role) Rank() int {
	return int(r)
}

func (r Role) AtLeast(other Role) bool {
	return r >= other
}

func (r Role) Permissions() []Permission {
	permissions := ROLES_PERMISSIONS[r]
	if permissions == nil {
		return []Permission{}
	}
	return permissions
}

func (r Role) HasPermission(permission Permission) bool {
	return slices.Contains(r.Permissions(), permission)
}
