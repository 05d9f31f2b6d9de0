package security

import (
	"errors"

	"github.com/portcullis-hq/portcullis-backend/models"
)

type EnforceSecurityMembership interface {
	EnforceSecurity
	ReadMembers() error
	InviteMember(role models.Role) error
	KickoutMember(target models.OrganizationMember) error
	UpdateMemberRole(target models.OrganizationMember, newRole models.Role) error
	LeaveOrganization() error
}

type EnforceSecurityMembershipImpl struct {
	EnforceSecurityImpl
}

func (e *EnforceSecurityMembershipImpl) ReadMembers() error {
	return e.Permission(models.MEMBERS_READ)
}

// InviteMember: admins and above may invite, but never at a rank above their
// own.
func (e *EnforceSecurityMembershipImpl) InviteMember(role models.Role) error {
	return errors.Join(
		e.Permission(models.MEMBER_INVITE),
		e.rankCeiling(role, "invite a member"),
	)
}

// KickoutMember: an admin cannot kick an owner. Whether the removal would
// strand the organization without an owner is the aggregate's concern, not
// this one.
func (e *EnforceSecurityMembershipImpl) KickoutMember(target models.OrganizationMember) error {
	return errors.Join(
		e.Permission(models.MEMBER_KICKOUT),
		e.rankCeiling(target.Role, "kick out a member"),
	)
}

// UpdateMemberRole: the caller's rank caps both the target's current rank and
// the rank being assigned.
func (e *EnforceSecurityMembershipImpl) UpdateMemberRole(target models.OrganizationMember, newRole models.Role) error {
	return errors.Join(
		e.Permission(models.MEMBER_ROLE_UPDATE),
		e.rankCeiling(target.Role, "change the role of a member"),
		e.rankCeiling(newRole, "promote a member"),
	)
}

func (e *EnforceSecurityMembershipImpl) LeaveOrganization() error {
	return e.Permission(models.MEMBER_LEAVE)
}
