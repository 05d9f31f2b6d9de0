package usecases

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/repositories"
	"github.com/portcullis-hq/portcullis-backend/usecases/security"
)

type MembershipUseCase struct {
	profile    models.Profile
	repository repositories.OrganizationRepository
}

func (usecase MembershipUseCase) membershipSecurity(ctx context.Context, organizationId string) (security.EnforceSecurityMembership, error) {
	org, err := usecase.repository.GetOrganization(ctx, organizationId)
	if err != nil {
		return nil, err
	}
	caller, err := callerForOrganization(usecase.profile, org)
	if err != nil {
		return nil, err
	}
	return newEnforceMembershipSecurity(caller), nil
}

func (usecase MembershipUseCase) GetOrganizationMembers(ctx context.Context, organizationId string) ([]models.OrganizationMember, error) {
	enforceSecurity, err := usecase.membershipSecurity(ctx, organizationId)
	if err != nil {
		return nil, err
	}
	if err := enforceSecurity.ReadMembers(); err != nil {
		return nil, err
	}
	return usecase.repository.GetMembers(ctx, organizationId)
}

// InviteMember adds userId at the requested role. Inviting an existing
// member is a no-op that keeps their current role.
func (usecase MembershipUseCase) InviteMember(ctx context.Context, organizationId string, userId models.UserId, role models.Role) (models.Organization, error) {
	enforceSecurity, err := usecase.membershipSecurity(ctx, organizationId)
	if err != nil {
		return models.Organization{}, err
	}
	if err := enforceSecurity.InviteMember(role); err != nil {
		return models.Organization{}, err
	}

	return usecase.repository.MutateOrganization(ctx, organizationId,
		func(org models.Organization) (models.Organization, error) {
			return org.AddMember(userId, role)
		})
}

func (usecase MembershipUseCase) KickoutMember(ctx context.Context, organizationId string, userId models.UserId) (models.Organization, error) {
	org, err := usecase.repository.GetOrganization(ctx, organizationId)
	if err != nil {
		return models.Organization{}, err
	}
	caller, err := callerForOrganization(usecase.profile, org)
	if err != nil {
		return models.Organization{}, err
	}
	target, ok := org.MemberByUserId(userId)
	if !ok {
		return models.Organization{}, errors.Wrap(models.NotFoundError,
			fmt.Sprintf("user %s is not a member of organization %s", userId, organizationId))
	}

	enforceSecurity := newEnforceMembershipSecurity(caller)
	if err := enforceSecurity.KickoutMember(target); err != nil {
		return models.Organization{}, err
	}

	return usecase.repository.MutateOrganization(ctx, organizationId,
		func(org models.Organization) (models.Organization, error) {
			return org.RemoveMember(userId)
		})
}

// LeaveOrganization removes the caller. The last owner cannot leave.
func (usecase MembershipUseCase) LeaveOrganization(ctx context.Context, organizationId string) (models.Organization, error) {
	enforceSecurity, err := usecase.membershipSecurity(ctx, organizationId)
	if err != nil {
		return models.Organization{}, err
	}
	if err := enforceSecurity.LeaveOrganization(); err != nil {
		return models.Organization{}, err
	}

	return usecase.repository.MutateOrganization(ctx, organizationId,
		func(org models.Organization) (models.Organization, error) {
			return org.RemoveMember(usecase.profile.UserId)
		})
}

func (usecase MembershipUseCase) UpdateMemberRole(ctx context.Context, organizationId string, userId models.UserId, role models.Role) (models.Organization, error) {
	org, err := usecase.repository.GetOrganization(ctx, organizationId)
	if err != nil {
		return models.Organization{}, err
	}
	caller, err := callerForOrganization(usecase.profile, org)
	if err != nil {
		return models.Organization{}, err
	}
	target, ok := org.MemberByUserId(userId)
	if !ok {
		return models.Organization{}, errors.Wrap(models.NotFoundError,
			fmt.Sprintf("user %s is not a member of organization %s", userId, organizationId))
	}

	enforceSecurity := newEnforceMembershipSecurity(caller)
	if err := enforceSecurity.UpdateMemberRole(target, role); err != nil {
		return models.Organization{}, err
	}

	return usecase.repository.MutateOrganization(ctx, organizationId,
		func(org models.Organization) (models.Organization, error) {
			return org.ChangeRole(userId, role)
		})
}
