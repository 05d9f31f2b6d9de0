package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/portcullis-hq/portcullis-backend/models"
)

// OrganizationRepositoryInMemory backs the repository contract with a plain
// map. Used by tests and single-process deployments. The global mutex stands
// in for the optimistic concurrency loop of the postgres implementation:
// mutations run while holding it, so a conflict can never be observed.
type OrganizationRepositoryInMemory struct {
	mu            sync.RWMutex
	organizations map[string]models.Organization
}

func NewOrganizationRepositoryInMemory() *OrganizationRepositoryInMemory {
	return &OrganizationRepositoryInMemory{
		organizations: make(map[string]models.Organization),
	}
}

func (repo *OrganizationRepositoryInMemory) ExistsByName(ctx context.Context, name string) (bool, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, org := range repo.organizations {
		if strings.EqualFold(org.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (repo *OrganizationRepositoryInMemory) GetOrganization(ctx context.Context, organizationId string) (models.Organization, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	org, ok := repo.organizations[organizationId]
	if !ok {
		return models.Organization{}, errors.Wrap(models.NotFoundError,
			fmt.Sprintf("organization %s", organizationId))
	}
	return org, nil
}

func (repo *OrganizationRepositoryInMemory) CreateOrganization(ctx context.Context, org models.Organization) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.organizations {
		if strings.EqualFold(existing.Name, org.Name) {
			return errors.WithDetail(models.ErrOrganizationNameTaken, org.Name)
		}
	}
	if _, ok := repo.organizations[org.Id]; ok {
		return errors.WithDetail(models.ConflictError, org.Id)
	}

	repo.organizations[org.Id] = org
	return nil
}

func (repo *OrganizationRepositoryInMemory) DeleteOrganization(ctx context.Context, organizationId string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.organizations[organizationId]; !ok {
		return errors.Wrap(models.NotFoundError,
			fmt.Sprintf("organization %s", organizationId))
	}
	delete(repo.organizations, organizationId)
	return nil
}

func (repo *OrganizationRepositoryInMemory) GetMembers(ctx context.Context, organizationId string) ([]models.OrganizationMember, error) {
	org, err := repo.GetOrganization(ctx, organizationId)
	if err != nil {
		return nil, err
	}
	return org.Members, nil
}

func (repo *OrganizationRepositoryInMemory) IsMember(ctx context.Context, userId models.UserId, organizationId string) (bool, error) {
	org, err := repo.GetOrganization(ctx, organizationId)
	if err != nil {
		return false, err
	}
	_, ok := org.MemberByUserId(userId)
	return ok, nil
}

func (repo *OrganizationRepositoryInMemory) GetUserMemberships(ctx context.Context, userId models.UserId) ([]models.OrganizationMembership, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	memberships := make([]models.OrganizationMembership, 0)
	for _, org := range repo.organizations {
		if member, ok := org.MemberByUserId(userId); ok {
			memberships = append(memberships, models.OrganizationMembership{
				OrganizationId:   org.Id,
				OrganizationName: org.Name,
				Role:             member.Role,
			})
		}
	}
	return memberships, nil
}

func (repo *OrganizationRepositoryInMemory) MutateOrganization(
	ctx context.Context,
	organizationId string,
	mutation OrganizationMutation,
) (models.Organization, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	org, ok := repo.organizations[organizationId]
	if !ok {
		return models.Organization{}, errors.Wrap(models.NotFoundError,
			fmt.Sprintf("organization %s", organizationId))
	}

	mutated, err := mutation(org)
	if err != nil {
		return models.Organization{}, err
	}
	mutated.Version = org.Version + 1

	repo.organizations[organizationId] = mutated
	return mutated, nil
}
