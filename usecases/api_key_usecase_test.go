package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portcullis-hq/portcullis-backend/models"
)

func TestAddApiKey(t *testing.T) {
	ctx := context.Background()

	t.Run("admin issues a key at their own rank", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "bob", models.ADMIN)
		require.NoError(t, err)

		apiKey, err := usecases.WithProfile(userProfile("bob")).NewApiKeyUseCase().
			AddApiKey(ctx, models.CreateApiKeyInput{
				OrganizationId: org.Id,
				Name:           "deploy",
				Claims:         map[string]string{models.ClaimRole: models.ADMIN.String()},
			})
		require.NoError(t, err)

		assert.Equal(t, models.ADMIN, apiKey.Role())
		assert.NotEmpty(t, apiKey.SignedToken)

		stored, err := usecases.WithProfile(userProfile("alice")).NewOrganizationUseCase().
			GetOrganization(ctx, org.Id)
		require.NoError(t, err)
		_, ok := stored.ApiKeyById(apiKey.KeyId)
		assert.True(t, ok)
	})

	t.Run("admin cannot issue an owner key", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "bob", models.ADMIN)
		require.NoError(t, err)

		_, err = usecases.WithProfile(userProfile("bob")).NewApiKeyUseCase().
			AddApiKey(ctx, models.CreateApiKeyInput{
				OrganizationId: org.Id,
				Name:           "root",
				Claims:         map[string]string{models.ClaimRole: models.OWNER.String()},
			})
		assert.ErrorIs(t, err, models.ForbiddenError)
	})

	t.Run("members cannot issue keys", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "bob", models.MEMBER)
		require.NoError(t, err)

		_, err = usecases.WithProfile(userProfile("bob")).NewApiKeyUseCase().
			AddApiKey(ctx, models.CreateApiKeyInput{OrganizationId: org.Id, Name: "nope"})
		assert.ErrorIs(t, err, models.ForbiddenError)
	})

	t.Run("the role claim defaults to MEMBER", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")

		apiKey, err := usecases.WithProfile(userProfile("alice")).NewApiKeyUseCase().
			AddApiKey(ctx, models.CreateApiKeyInput{OrganizationId: org.Id, Name: "reader"})
		require.NoError(t, err)
		assert.Equal(t, models.MEMBER, apiKey.Role())
	})

	t.Run("duplicate key name", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		apiKeys := usecases.WithProfile(userProfile("alice")).NewApiKeyUseCase()

		_, err := apiKeys.AddApiKey(ctx, models.CreateApiKeyInput{OrganizationId: org.Id, Name: "ci"})
		require.NoError(t, err)
		_, err = apiKeys.AddApiKey(ctx, models.CreateApiKeyInput{OrganizationId: org.Id, Name: "ci"})
		assert.ErrorIs(t, err, models.ErrApiKeyNameTaken)
	})
}

func TestDeleteApiKey(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Usecases, models.Organization, models.ApiKey) {
		t.Helper()
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "bob", models.ADMIN)
		require.NoError(t, err)

		ownerKey, err := usecases.WithProfile(userProfile("alice")).NewApiKeyUseCase().
			AddApiKey(ctx, models.CreateApiKeyInput{
				OrganizationId: org.Id,
				Name:           "root",
				Claims:         map[string]string{models.ClaimRole: models.OWNER.String()},
			})
		require.NoError(t, err)
		return usecases, org, ownerKey
	}

	t.Run("owner deletes an owner key", func(t *testing.T) {
		usecases, org, ownerKey := setup(t)

		err := usecases.WithProfile(userProfile("alice")).NewApiKeyUseCase().
			DeleteApiKey(ctx, org.Id, ownerKey.KeyId)
		require.NoError(t, err)

		stored, err := usecases.WithProfile(userProfile("alice")).NewOrganizationUseCase().
			GetOrganization(ctx, org.Id)
		require.NoError(t, err)
		assert.Empty(t, stored.ApiKeys)
	})

	t.Run("admin cannot delete an owner key", func(t *testing.T) {
		usecases, org, ownerKey := setup(t)

		err := usecases.WithProfile(userProfile("bob")).NewApiKeyUseCase().
			DeleteApiKey(ctx, org.Id, ownerKey.KeyId)
		assert.ErrorIs(t, err, models.ForbiddenError)
	})

	t.Run("unknown key id", func(t *testing.T) {
		usecases, org, _ := setup(t)

		err := usecases.WithProfile(userProfile("alice")).NewApiKeyUseCase().
			DeleteApiKey(ctx, org.Id, "ffffffff-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, models.NotFoundError)
	})
}
