package security

import (
	"errors"

	"github.com/portcullis-hq/portcullis-backend/models"
)

type EnforceSecurityApiKey interface {
	EnforceSecurity
	ReadApiKeys() error
	CreateApiKey(role models.Role) error
	DeleteApiKey(apiKey models.ApiKey) error
}

type EnforceSecurityApiKeyImpl struct {
	EnforceSecurityImpl
}

func (e *EnforceSecurityApiKeyImpl) ReadApiKeys() error {
	return e.Permission(models.APIKEY_READ)
}

// CreateApiKey: the key's role claim is capped by the caller's rank, like any
// other record the caller creates.
func (e *EnforceSecurityApiKeyImpl) CreateApiKey(role models.Role) error {
	return errors.Join(
		e.Permission(models.APIKEY_CREATE),
		e.rankCeiling(role, "create an api key"),
	)
}

func (e *EnforceSecurityApiKeyImpl) DeleteApiKey(apiKey models.ApiKey) error {
	return errors.Join(
		e.Permission(models.APIKEY_DELETE),
		e.rankCeiling(apiKey.Role(), "delete an api key"),
	)
}
