package repositories

import (
	"context"

	"github.com/portcullis-hq/portcullis-backend/models"
)

// OrganizationMutation is a pure transformation of one organization snapshot.
// Implementations of MutateOrganization re-apply it against the latest
// snapshot under their concurrency control, so it must be side effect free
// and safe to call more than once.
type OrganizationMutation func(models.Organization) (models.Organization, error)

type OrganizationRepository interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	GetOrganization(ctx context.Context, organizationId string) (models.Organization, error)
	CreateOrganization(ctx context.Context, org models.Organization) error
	DeleteOrganization(ctx context.Context, organizationId string) error
	GetMembers(ctx context.Context, organizationId string) ([]models.OrganizationMember, error)
	IsMember(ctx context.Context, userId models.UserId, organizationId string) (bool, error)
	GetUserMemberships(ctx context.Context, userId models.UserId) ([]models.OrganizationMembership, error)

	// MutateOrganization loads the latest snapshot, applies the mutation and
	// persists the result, retrying lost optimistic concurrency races.
	// Mutation errors pass through unchanged.
	MutateOrganization(ctx context.Context, organizationId string, mutation OrganizationMutation) (models.Organization, error)
}
