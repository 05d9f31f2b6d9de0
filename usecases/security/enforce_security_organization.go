package security

import (
	"github.com/portcullis-hq/portcullis-backend/models"
)

type EnforceSecurityOrganization interface {
	EnforceSecurity
	ReadOrganization() error
	UpdateOrganization() error
	DeleteOrganization() error
}

type EnforceSecurityOrganizationImpl struct {
	EnforceSecurityImpl
}

func (e *EnforceSecurityOrganizationImpl) ReadOrganization() error {
	return e.Permission(models.ORGANIZATION_READ)
}

func (e *EnforceSecurityOrganizationImpl) UpdateOrganization() error {
	return e.Permission(models.ORGANIZATION_UPDATE)
}

func (e *EnforceSecurityOrganizationImpl) DeleteOrganization() error {
	return e.Permission(models.ORGANIZATION_DELETE)
}
