package usecases

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/repositories"
	"github.com/portcullis-hq/portcullis-backend/usecases/auth"
	"github.com/portcullis-hq/portcullis-backend/usecases/security"
)

// Usecases is the composition root of the service layer: it owns the
// collaborators and hands out per-request usecase instances.
type Usecases struct {
	OrganizationRepository repositories.OrganizationRepository
	KeyStore               repositories.KeyStore
	CredentialIssuer       *repositories.CredentialIssuer
	TokenVerifier          *auth.TokenVerifier
}

// WithProfile binds a verified caller identity to the container for the
// duration of one request.
func (u Usecases) WithProfile(profile models.Profile) UsecasesWithProfile {
	return UsecasesWithProfile{Usecases: u, Profile: profile}
}

type UsecasesWithProfile struct {
	Usecases
	Profile models.Profile
}

func (u UsecasesWithProfile) NewOrganizationUseCase() OrganizationUseCase {
	return OrganizationUseCase{
		profile:    u.Profile,
		repository: u.OrganizationRepository,
		keyStore:   u.KeyStore,
	}
}

func (u UsecasesWithProfile) NewMembershipUseCase() MembershipUseCase {
	return MembershipUseCase{
		profile:    u.Profile,
		repository: u.OrganizationRepository,
	}
}

func (u UsecasesWithProfile) NewApiKeyUseCase() ApiKeyUseCase {
	return ApiKeyUseCase{
		profile:    u.Profile,
		repository: u.OrganizationRepository,
		issuer:     u.CredentialIssuer,
	}
}

func (u Usecases) NewTokenUseCase() TokenUseCase {
	return TokenUseCase{
		verifier: u.TokenVerifier,
		keyStore: u.KeyStore,
	}
}

func newEnforceOrganizationSecurity(caller models.OrganizationCaller) security.EnforceSecurityOrganization {
	return &security.EnforceSecurityOrganizationImpl{
		EnforceSecurityImpl: security.EnforceSecurityImpl{OrganizationCaller: caller},
	}
}

func newEnforceMembershipSecurity(caller models.OrganizationCaller) security.EnforceSecurityMembership {
	return &security.EnforceSecurityMembershipImpl{
		EnforceSecurityImpl: security.EnforceSecurityImpl{OrganizationCaller: caller},
	}
}

func newEnforceApiKeySecurity(caller models.OrganizationCaller) security.EnforceSecurityApiKey {
	return &security.EnforceSecurityApiKeyImpl{
		EnforceSecurityImpl: security.EnforceSecurityImpl{OrganizationCaller: caller},
	}
}

// callerForOrganization resolves the caller's rank inside the target
// organization. User identities are looked up in the member set; api keys
// carry their rank in the authoritative role claim and are bound to the
// organization they were issued for.
func callerForOrganization(profile models.Profile, org models.Organization) (models.OrganizationCaller, error) {
	if profile.Claims["iss"] == models.ServiceIssuer {
		if string(profile.UserId) != org.Id {
			return models.OrganizationCaller{}, errors.WithDetail(models.ErrNotAMember,
				fmt.Sprintf("api key is not scoped to organization %s", org.Id))
		}
		return models.OrganizationCaller{
			Profile:        profile,
			OrganizationId: org.Id,
			Role:           models.RoleFromString(profile.Claims[models.ClaimRole]),
		}, nil
	}

	member, ok := org.MemberByUserId(profile.UserId)
	if !ok {
		return models.OrganizationCaller{}, errors.WithDetail(models.ErrNotAMember,
			fmt.Sprintf("user %s in organization %s", profile.UserId, org.Id))
	}
	return models.OrganizationCaller{
		Profile:        profile,
		OrganizationId: org.Id,
		Role:           member.Role,
	}, nil
}
