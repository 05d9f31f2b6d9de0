package usecases

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/repositories"
)

type ApiKeyUseCase struct {
	profile    models.Profile
	repository repositories.OrganizationRepository
	issuer     *repositories.CredentialIssuer
}

// AddApiKey issues a signed api key and attaches it to the organization. The
// key's role claim (defaulted to MEMBER by the issuer) is capped by the
// caller's rank.
func (usecase ApiKeyUseCase) AddApiKey(ctx context.Context, input models.CreateApiKeyInput) (models.ApiKey, error) {
	org, err := usecase.repository.GetOrganization(ctx, input.OrganizationId)
	if err != nil {
		return models.ApiKey{}, err
	}
	caller, err := callerForOrganization(usecase.profile, org)
	if err != nil {
		return models.ApiKey{}, err
	}

	keyRole := models.RoleFromString(input.Claims[models.ClaimRole])
	if !keyRole.IsValid() {
		keyRole = models.MEMBER
	}
	enforceSecurity := newEnforceApiKeySecurity(caller)
	if err := enforceSecurity.CreateApiKey(keyRole); err != nil {
		return models.ApiKey{}, err
	}

	apiKey, err := usecase.issuer.IssueApiKey(org, uuid.NewString(), input.Name, input.Claims)
	if err != nil {
		return models.ApiKey{}, err
	}

	if _, err := usecase.repository.MutateOrganization(ctx, input.OrganizationId,
		func(org models.Organization) (models.Organization, error) {
			return org.AddApiKey(apiKey)
		}); err != nil {
		return models.ApiKey{}, err
	}
	return apiKey, nil
}

func (usecase ApiKeyUseCase) DeleteApiKey(ctx context.Context, organizationId, keyId string) error {
	org, err := usecase.repository.GetOrganization(ctx, organizationId)
	if err != nil {
		return err
	}
	caller, err := callerForOrganization(usecase.profile, org)
	if err != nil {
		return err
	}
	apiKey, ok := org.ApiKeyById(keyId)
	if !ok {
		return errors.Wrap(models.NotFoundError,
			fmt.Sprintf("api key %s in organization %s", keyId, organizationId))
	}

	enforceSecurity := newEnforceApiKeySecurity(caller)
	if err := enforceSecurity.DeleteApiKey(apiKey); err != nil {
		return err
	}

	_, err = usecase.repository.MutateOrganization(ctx, organizationId,
		func(org models.Organization) (models.Organization, error) {
			return org.RemoveApiKey(keyId)
		})
	return err
}
