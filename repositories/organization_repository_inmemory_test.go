package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portcullis-hq/portcullis-backend/models"
)

func TestOrganizationRepositoryInMemory(t *testing.T) {
	ctx := context.Background()

	newRepo := func(t *testing.T) *OrganizationRepositoryInMemory {
		t.Helper()
		repo := NewOrganizationRepositoryInMemory()
		org := models.NewOrganization("org-1", "Acme", "ops@acme.test", "key-1", "alice")
		require.NoError(t, repo.CreateOrganization(ctx, org))
		return repo
	}

	t.Run("create and get", func(t *testing.T) {
		repo := newRepo(t)

		org, err := repo.GetOrganization(ctx, "org-1")
		require.NoError(t, err)
		assert.Equal(t, "Acme", org.Name)

		_, err = repo.GetOrganization(ctx, "org-2")
		assert.ErrorIs(t, err, models.NotFoundError)
	})

	t.Run("name uniqueness is case insensitive", func(t *testing.T) {
		repo := newRepo(t)

		exists, err := repo.ExistsByName(ctx, "ACME")
		require.NoError(t, err)
		assert.True(t, exists)

		err = repo.CreateOrganization(ctx,
			models.NewOrganization("org-2", "acme", "other@acme.test", "key-2", "bob"))
		assert.ErrorIs(t, err, models.ErrOrganizationNameTaken)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.DeleteOrganization(ctx, "org-1"))
		assert.ErrorIs(t, repo.DeleteOrganization(ctx, "org-1"), models.NotFoundError)
	})

	t.Run("membership reads", func(t *testing.T) {
		repo := newRepo(t)

		isMember, err := repo.IsMember(ctx, "alice", "org-1")
		require.NoError(t, err)
		assert.True(t, isMember)

		isMember, err = repo.IsMember(ctx, "bob", "org-1")
		require.NoError(t, err)
		assert.False(t, isMember)

		members, err := repo.GetMembers(ctx, "org-1")
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("user memberships across organizations", func(t *testing.T) {
		repo := newRepo(t)
		other := models.NewOrganization("org-2", "Globex", "ops@globex.test", "key-2", "bob")
		other, err := other.AddMember("alice", models.MEMBER)
		require.NoError(t, err)
		require.NoError(t, repo.CreateOrganization(ctx, other))

		memberships, err := repo.GetUserMemberships(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, memberships, 2)

		byOrg := make(map[string]models.Role, len(memberships))
		for _, m := range memberships {
			byOrg[m.OrganizationId] = m.Role
		}
		assert.Equal(t, models.OWNER, byOrg["org-1"])
		assert.Equal(t, models.MEMBER, byOrg["org-2"])
	})

	t.Run("mutate persists the new snapshot and bumps the version", func(t *testing.T) {
		repo := newRepo(t)

		mutated, err := repo.MutateOrganization(ctx, "org-1", func(org models.Organization) (models.Organization, error) {
			return org.AddMember("bob", models.ADMIN)
		})
		require.NoError(t, err)
		assert.Equal(t, 1, mutated.Version)

		org, err := repo.GetOrganization(ctx, "org-1")
		require.NoError(t, err)
		_, ok := org.MemberByUserId("bob")
		assert.True(t, ok)
	})

	t.Run("mutation errors leave the snapshot untouched", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.MutateOrganization(ctx, "org-1", func(org models.Organization) (models.Organization, error) {
			return org.RemoveMember("alice")
		})
		assert.ErrorIs(t, err, models.ErrLastOwner)

		org, err := repo.GetOrganization(ctx, "org-1")
		require.NoError(t, err)
		assert.Len(t, org.Members, 1)
		assert.Equal(t, 0, org.Version)
	})

	t.Run("mutating an unknown organization", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.MutateOrganization(ctx, "org-404", func(org models.Organization) (models.Organization, error) {
			return org, nil
		})
		assert.ErrorIs(t, err, models.NotFoundError)
	})
}
