package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/repositories"
)

type OrganizationUseCase struct {
	profile    models.Profile
	repository repositories.OrganizationRepository
	keyStore   repositories.KeyStore
}

// CreateOrganization is open to any authenticated caller; the creator becomes
// the sole owner. A fresh signing key pair is generated and stored under the
// organization's key id before the organization is persisted, so an
// organization that exists can always issue api keys.
func (usecase OrganizationUseCase) CreateOrganization(ctx context.Context, input models.CreateOrganizationInput) (models.Organization, error) {
	taken, err := usecase.repository.ExistsByName(ctx, input.Name)
	if err != nil {
		return models.Organization{}, err
	}
	if taken {
		return models.Organization{}, models.ErrOrganizationNameTaken
	}

	signingKeyId := uuid.NewString()
	keyPair, err := repositories.GenerateSigningKeyPair()
	if err != nil {
		return models.Organization{}, err
	}
	if err := usecase.keyStore.Store(signingKeyId, keyPair); err != nil {
		return models.Organization{}, err
	}

	org := models.NewOrganization(
		uuid.NewString(),
		input.Name,
		input.Email,
		signingKeyId,
		usecase.profile.UserId,
	)
	if err := usecase.repository.CreateOrganization(ctx, org); err != nil {
		// roll back the orphaned key pair; the organization was never visible
		_ = usecase.keyStore.Delete(signingKeyId)
		return models.Organization{}, err
	}
	return org, nil
}

// GetOrganization projects the organization for the caller: api keys are
// filtered down to those whose rank does not exceed the caller's.
func (usecase OrganizationUseCase) GetOrganization(ctx context.Context, organizationId string) (models.Organization, error) {
	org, caller, err := usecase.loadWithCaller(ctx, organizationId)
	if err != nil {
		return models.Organization{}, err
	}

	enforceSecurity := newEnforceOrganizationSecurity(caller)
	if err := enforceSecurity.ReadOrganization(); err != nil {
		return models.Organization{}, err
	}

	org.ApiKeys = org.VisibleApiKeys(caller.Role)
	return org, nil
}

func (usecase OrganizationUseCase) UpdateOrganization(ctx context.Context, input models.UpdateOrganizationInput) (models.Organization, error) {
	org, caller, err := usecase.loadWithCaller(ctx, input.Id)
	if err != nil {
		return models.Organization{}, err
	}

	enforceSecurity := newEnforceOrganizationSecurity(caller)
	if err := enforceSecurity.UpdateOrganization(); err != nil {
		return models.Organization{}, err
	}

	if input.Name != nil && *input.Name != org.Name {
		taken, err := usecase.repository.ExistsByName(ctx, *input.Name)
		if err != nil {
			return models.Organization{}, err
		}
		if taken {
			return models.Organization{}, models.ErrOrganizationNameTaken
		}
	}

	return usecase.repository.MutateOrganization(ctx, input.Id,
		func(org models.Organization) (models.Organization, error) {
			var err error
			if input.Name != nil {
				org, err = org.Rename(*input.Name)
				if err != nil {
					return models.Organization{}, err
				}
			}
			if input.Email != nil {
				org, err = org.ChangeEmail(*input.Email)
				if err != nil {
					return models.Organization{}, err
				}
			}
			return org, nil
		})
}

// DeleteOrganization requires the owner rank. The organization's signing key
// pair goes away with it, so already issued api keys stop verifying.
func (usecase OrganizationUseCase) DeleteOrganization(ctx context.Context, organizationId string) error {
	org, caller, err := usecase.loadWithCaller(ctx, organizationId)
	if err != nil {
		return err
	}

	enforceSecurity := newEnforceOrganizationSecurity(caller)
	if err := enforceSecurity.DeleteOrganization(); err != nil {
		return err
	}

	if err := usecase.repository.DeleteOrganization(ctx, organizationId); err != nil {
		return err
	}
	return usecase.keyStore.Delete(org.SigningKeyId)
}

// GetUserMemberships lists the caller's own organization memberships. It only
// ever answers for the authenticated caller, so there is nothing to enforce.
func (usecase OrganizationUseCase) GetUserMemberships(ctx context.Context) ([]models.OrganizationMembership, error) {
	return usecase.repository.GetUserMemberships(ctx, usecase.profile.UserId)
}

func (usecase OrganizationUseCase) loadWithCaller(ctx context.Context, organizationId string) (models.Organization, models.OrganizationCaller, error) {
	org, err := usecase.repository.GetOrganization(ctx, organizationId)
	if err != nil {
		return models.Organization{}, models.OrganizationCaller{}, err
	}
	caller, err := callerForOrganization(usecase.profile, org)
	if err != nil {
		return models.Organization{}, models.OrganizationCaller{}, err
	}
	return org, caller, nil
}
