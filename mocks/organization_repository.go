package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/repositories"
)

type OrganizationRepository struct {
	mock.Mock
}

func (r *OrganizationRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := r.Called(name)
	return args.Bool(0), args.Error(1)
}

func (r *OrganizationRepository) GetOrganization(ctx context.Context, organizationId string) (models.Organization, error) {
	args := r.Called(organizationId)
	return args.Get(0).(models.Organization), args.Error(1)
}

func (r *OrganizationRepository) CreateOrganization(ctx context.Context, org models.Organization) error {
	args := r.Called(org)
	return args.Error(0)
}

func (r *OrganizationRepository) DeleteOrganization(ctx context.Context, organizationId string) error {
	args := r.Called(organizationId)
	return args.Error(0)
}

func (r *OrganizationRepository) GetMembers(ctx context.Context, organizationId string) ([]models.OrganizationMember, error) {
	args := r.Called(organizationId)
	return args.Get(0).([]models.OrganizationMember), args.Error(1)
}

func (r *OrganizationRepository) IsMember(ctx context.Context, userId models.UserId, organizationId string) (bool, error) {
	args := r.Called(userId, organizationId)
	return args.Bool(0), args.Error(1)
}

func (r *OrganizationRepository) GetUserMemberships(ctx context.Context, userId models.UserId) ([]models.OrganizationMembership, error) {
	args := r.Called(userId)
	return args.Get(0).([]models.OrganizationMembership), args.Error(1)
}

func (r *OrganizationRepository) MutateOrganization(ctx context.Context, organizationId string,
	mutation repositories.OrganizationMutation,
) (models.Organization, error) {
	args := r.Called(organizationId, mutation)
	return args.Get(0).(models.Organization), args.Error(1)
}
