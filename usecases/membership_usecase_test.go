package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portcullis-hq/portcullis-backend/models"
)

func TestInviteMemberUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("owner invites an admin, admin invites a member", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")

		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "bob", models.ADMIN)
		require.NoError(t, err)

		updated, err := usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "carol", models.MEMBER)
		require.NoError(t, err)
		assert.Len(t, updated.Members, 3)
	})

	t.Run("admin cannot invite an owner", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "bob", models.ADMIN)
		require.NoError(t, err)

		_, err = usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "carol", models.OWNER)
		assert.ErrorIs(t, err, models.ForbiddenError)
	})

	t.Run("members cannot invite", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "bob", models.MEMBER)
		require.NoError(t, err)

		_, err = usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "carol", models.MEMBER)
		assert.ErrorIs(t, err, models.ForbiddenError)
	})

	t.Run("re-inviting keeps the existing role", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		membership := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase()

		_, err := membership.InviteMember(ctx, org.Id, "bob", models.ADMIN)
		require.NoError(t, err)
		updated, err := membership.InviteMember(ctx, org.Id, "bob", models.MEMBER)
		require.NoError(t, err)

		member, ok := updated.MemberByUserId("bob")
		require.True(t, ok)
		assert.Equal(t, models.ADMIN, member.Role)
		assert.Len(t, updated.Members, 2)
	})

	t.Run("non members cannot see or touch the organization", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")

		_, err := usecases.WithProfile(userProfile("mallory")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "eve", models.MEMBER)
		assert.ErrorIs(t, err, models.ErrNotAMember)

		_, err = usecases.WithProfile(userProfile("mallory")).NewMembershipUseCase().
			GetOrganizationMembers(ctx, org.Id)
		assert.ErrorIs(t, err, models.ErrNotAMember)
	})
}

func TestGetOrganizationMembers(t *testing.T) {
	ctx := context.Background()
	usecases := newTestUsecases(t)
	org := createOrganization(t, usecases, "alice", "acme")
	_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
		InviteMember(ctx, org.Id, "bob", models.MEMBER)
	require.NoError(t, err)

	// any member can list, including plain members
	members, err := usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
		GetOrganizationMembers(ctx, org.Id)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestKickoutMemberUseCase(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Usecases, models.Organization) {
		t.Helper()
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		membership := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase()
		_, err := membership.InviteMember(ctx, org.Id, "bob", models.ADMIN)
		require.NoError(t, err)
		_, err = membership.InviteMember(ctx, org.Id, "carol", models.MEMBER)
		require.NoError(t, err)
		return usecases, org
	}

	t.Run("admin kicks a member", func(t *testing.T) {
		usecases, org := setup(t)

		updated, err := usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
			KickoutMember(ctx, org.Id, "carol")
		require.NoError(t, err)
		_, ok := updated.MemberByUserId("carol")
		assert.False(t, ok)
	})

	t.Run("admin cannot kick the owner", func(t *testing.T) {
		usecases, org := setup(t)

		_, err := usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
			KickoutMember(ctx, org.Id, "alice")
		assert.ErrorIs(t, err, models.ForbiddenError)
	})

	t.Run("kicking the sole owner is rejected even for an owner", func(t *testing.T) {
		usecases, org := setup(t)

		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			KickoutMember(ctx, org.Id, "alice")
		assert.ErrorIs(t, err, models.ErrLastOwner)
	})

	t.Run("kicking an absent user", func(t *testing.T) {
		usecases, org := setup(t)

		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			KickoutMember(ctx, org.Id, "ghost")
		assert.ErrorIs(t, err, models.NotFoundError)
	})

	t.Run("members cannot kick", func(t *testing.T) {
		usecases, org := setup(t)

		_, err := usecases.WithProfile(userProfile("carol")).NewMembershipUseCase().
			KickoutMember(ctx, org.Id, "bob")
		assert.ErrorIs(t, err, models.ForbiddenError)
	})

	t.Run("an owner kicks the founding owner after taking over", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "bob", models.OWNER)
		require.NoError(t, err)

		updated, err := usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
			KickoutMember(ctx, org.Id, "alice")
		require.NoError(t, err)
		require.Len(t, updated.Members, 1)
		assert.Equal(t, models.UserId("bob"), updated.Members[0].UserId)
		assert.Equal(t, models.OWNER, updated.Members[0].Role)

		// the evicted founder holds no rank anymore, not even to read or delete
		err = usecases.WithProfile(userProfile("alice")).NewOrganizationUseCase().
			DeleteOrganization(ctx, org.Id)
		assert.ErrorIs(t, err, models.ErrNotAMember)
	})
}

func TestLeaveOrganizationUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("a member leaves", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			InviteMember(ctx, org.Id, "bob", models.MEMBER)
		require.NoError(t, err)

		updated, err := usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
			LeaveOrganization(ctx, org.Id)
		require.NoError(t, err)
		_, ok := updated.MemberByUserId("bob")
		assert.False(t, ok)
	})

	t.Run("the sole owner cannot leave", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")

		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			LeaveOrganization(ctx, org.Id)
		assert.ErrorIs(t, err, models.ErrLastOwner)
	})

	t.Run("an owner leaves after handing over ownership", func(t *testing.T) {
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		membership := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase()
		_, err := membership.InviteMember(ctx, org.Id, "bob", models.OWNER)
		require.NoError(t, err)

		updated, err := membership.LeaveOrganization(ctx, org.Id)
		require.NoError(t, err)
		_, ok := updated.MemberByUserId("alice")
		assert.False(t, ok)
	})
}

func TestUpdateMemberRoleUseCase(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Usecases, models.Organization) {
		t.Helper()
		usecases := newTestUsecases(t)
		org := createOrganization(t, usecases, "alice", "acme")
		membership := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase()
		_, err := membership.InviteMember(ctx, org.Id, "bob", models.ADMIN)
		require.NoError(t, err)
		_, err = membership.InviteMember(ctx, org.Id, "carol", models.MEMBER)
		require.NoError(t, err)
		return usecases, org
	}

	t.Run("admin promotes a member to admin", func(t *testing.T) {
		usecases, org := setup(t)

		updated, err := usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
			UpdateMemberRole(ctx, org.Id, "carol", models.ADMIN)
		require.NoError(t, err)
		member, _ := updated.MemberByUserId("carol")
		assert.Equal(t, models.ADMIN, member.Role)
	})

	t.Run("admin cannot promote to owner", func(t *testing.T) {
		usecases, org := setup(t)

		_, err := usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
			UpdateMemberRole(ctx, org.Id, "carol", models.OWNER)
		assert.ErrorIs(t, err, models.ForbiddenError)
	})

	t.Run("admin cannot touch the owner", func(t *testing.T) {
		usecases, org := setup(t)

		_, err := usecases.WithProfile(userProfile("bob")).NewMembershipUseCase().
			UpdateMemberRole(ctx, org.Id, "alice", models.MEMBER)
		assert.ErrorIs(t, err, models.ForbiddenError)
	})

	t.Run("demoting the sole owner is rejected", func(t *testing.T) {
		usecases, org := setup(t)

		_, err := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase().
			UpdateMemberRole(ctx, org.Id, "alice", models.ADMIN)
		assert.ErrorIs(t, err, models.ErrLastOwner)
	})

	t.Run("ownership handover then demotion", func(t *testing.T) {
		usecases, org := setup(t)
		membership := usecases.WithProfile(userProfile("alice")).NewMembershipUseCase()

		_, err := membership.UpdateMemberRole(ctx, org.Id, "bob", models.OWNER)
		require.NoError(t, err)
		updated, err := membership.UpdateMemberRole(ctx, org.Id, "alice", models.MEMBER)
		require.NoError(t, err)

		member, _ := updated.MemberByUserId("alice")
		assert.Equal(t, models.MEMBER, member.Role)
	})
}
