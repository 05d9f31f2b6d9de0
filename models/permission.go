package models

// Permission is one gate of the authorization decision table. Every exposed
// operation checks exactly one permission, plus the extra rank constraints
// enforced by the security layer.
type Permission int

const (
	ORGANIZATION_READ Permission = iota
	ORGANIZATION_UPDATE
	ORGANIZATION_DELETE
	MEMBERS_READ
	MEMBER_INVITE
	MEMBER_KICKOUT
	MEMBER_ROLE_UPDATE
	MEMBER_LEAVE
	APIKEY_READ
	APIKEY_CREATE
	APIKEY_DELETE
)

func (p Permission) String() string {
	switch p {
	case ORGANIZATION_READ:
		return "ORGANIZATION_READ"
	case ORGANIZATION_UPDATE:
		return "ORGANIZATION_UPDATE"
	case ORGANIZATION_DELETE:
		return "ORGANIZATION_DELETE"
	case MEMBERS_READ:
		return "MEMBERS_READ"
	case MEMBER_INVITE:
		return "MEMBER_INVITE"
	case MEMBER_KICKOUT:
		return "MEMBER_KICKOUT"
	case MEMBER_ROLE_UPDATE:
		return "MEMBER_ROLE_UPDATE"
	case MEMBER_LEAVE:
		return "MEMBER_LEAVE"
	case APIKEY_READ:
		return "APIKEY_READ"
	case APIKEY_CREATE:
		return "APIKEY_CREATE"
	case APIKEY_DELETE:
		return "APIKEY_DELETE"
	default:
		return "UNKNOWN_PERMISSION"
	}
}

var memberPermissions = []Permission{
	ORGANIZATION_READ,
	MEMBERS_READ,
	MEMBER_LEAVE,
	APIKEY_READ,
}

var adminPermissions = append([]Permission{
	ORGANIZATION_UPDATE,
	MEMBER_INVITE,
	MEMBER_KICKOUT,
	MEMBER_ROLE_UPDATE,
	APIKEY_CREATE,
	APIKEY_DELETE,
}, memberPermissions...)

var ownerPermissions = append([]Permission{
	ORGANIZATION_DELETE,
}, adminPermissions...)

var ROLES_PERMISSIONS = map[Role][]Permission{
	MEMBER: memberPermissions,
	ADMIN:  adminPermissions,
	OWNER:  ownerPermissions,
}
