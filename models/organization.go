package models

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
)

type UserId string

// OrganizationMember ties an external user identity to a rank inside one
// organization. Uniqueness is by UserId.
type OrganizationMember struct {
	UserId UserId
	Role   Role
}

// Organization is the membership aggregate. All mutations are pure: they
// return a new snapshot or an error, never a partially applied one. The
// repository re-applies them against the latest snapshot under its optimistic
// concurrency loop, which is only safe because nothing here has side effects.
type Organization struct {
	Id           string
	Name         string
	Email        string
	SigningKeyId string
	Members      []OrganizationMember
	ApiKeys      []ApiKey

	// Version is the optimistic concurrency token. It is owned by the
	// repository; the aggregate carries it through mutations untouched.
	Version int
}

// NewOrganization creates an organization with its creator as sole owner.
// An organization cannot exist, even transiently, without an owner.
func NewOrganization(id, name, email, signingKeyId string, creator UserId) Organization {
	return Organization{
		Id:           id,
		Name:         name,
		Email:        email,
		SigningKeyId: signingKeyId,
		Members:      []OrganizationMember{{UserId: creator, Role: OWNER}},
	}
}

func (org Organization) MemberByUserId(userId UserId) (OrganizationMember, bool) {
	for _, member := range org.Members {
		if member.UserId == userId {
			return member, true
		}
	}
	return OrganizationMember{}, false
}

func (org Organization) countOwners() int {
	count := 0
	for _, member := range org.Members {
		if member.Role == OWNER {
			count++
		}
	}
	return count
}

func (org Organization) cloneMembers() []OrganizationMember {
	return slices.Clone(org.Members)
}

// AddMember adds userId at the given role. Re-inviting an existing member is
// a no-op and keeps the existing role.
func (org Organization) AddMember(userId UserId, role Role) (Organization, error) {
	if !role.IsValid() {
		return Organization{}, errors.Wrap(BadParameterError,
			fmt.Sprintf("invalid role %s", role))
	}
	if _, ok := org.MemberByUserId(userId); ok {
		return org, nil
	}

	org.Members = append(org.cloneMembers(), OrganizationMember{UserId: userId, Role: role})
	return org, nil
}

// RemoveMember implements both kickout and leave. Removing the last owner is
// rejected before any state change.
func (org Organization) RemoveMember(userId UserId) (Organization, error) {
	member, ok := org.MemberByUserId(userId)
	if !ok {
		return Organization{}, errors.Wrap(NotFoundError,
			fmt.Sprintf("user %s is not a member of organization %s", userId, org.Id))
	}
	if member.Role == OWNER && org.countOwners() == 1 {
		return Organization{}, errors.WithDetail(ErrLastOwner,
			fmt.Sprintf("cannot remove user %s from organization %s", userId, org.Id))
	}

	org.Members = slices.DeleteFunc(org.cloneMembers(), func(m OrganizationMember) bool {
		return m.UserId == userId
	})
	return org, nil
}

// ChangeRole updates an existing member's rank. Demoting the last owner is
// rejected.
func (org Organization) ChangeRole(userId UserId, role Role) (Organization, error) {
	if !role.IsValid() {
		return Organization{}, errors.Wrap(BadParameterError,
			fmt.Sprintf("invalid role %s", role))
	}
	member, ok := org.MemberByUserId(userId)
	if !ok {
		return Organization{}, errors.Wrap(NotFoundError,
			fmt.Sprintf("user %s is not a member of organization %s", userId, org.Id))
	}
	if member.Role == OWNER && role != OWNER && org.countOwners() == 1 {
		return Organization{}, errors.WithDetail(ErrLastOwner,
			fmt.Sprintf("cannot demote user %s in organization %s", userId, org.Id))
	}

	members := org.cloneMembers()
	for i := range members {
		if members[i].UserId == userId {
			members[i].Role = role
		}
	}
	org.Members = members
	return org, nil
}

// AddApiKey appends a key; names are unique per organization.
func (org Organization) AddApiKey(apiKey ApiKey) (Organization, error) {
	for _, existing := range org.ApiKeys {
		if existing.Name == apiKey.Name {
			return Organization{}, errors.WithDetail(ErrApiKeyNameTaken,
				fmt.Sprintf("api key %s in organization %s", apiKey.Name, org.Id))
		}
	}

	org.ApiKeys = append(slices.Clone(org.ApiKeys), apiKey)
	return org, nil
}

func (org Organization) RemoveApiKey(keyId string) (Organization, error) {
	if _, ok := org.ApiKeyById(keyId); !ok {
		return Organization{}, errors.Wrap(NotFoundError,
			fmt.Sprintf("api key %s in organization %s", keyId, org.Id))
	}

	org.ApiKeys = slices.DeleteFunc(slices.Clone(org.ApiKeys), func(k ApiKey) bool {
		return k.KeyId == keyId
	})
	return org, nil
}

func (org Organization) ApiKeyById(keyId string) (ApiKey, bool) {
	for _, apiKey := range org.ApiKeys {
		if apiKey.KeyId == keyId {
			return apiKey, true
		}
	}
	return ApiKey{}, false
}

func (org Organization) Rename(name string) (Organization, error) {
	if name == "" {
		return Organization{}, errors.Wrap(BadParameterError, "organization name cannot be empty")
	}
	org.Name = name
	return org, nil
}

func (org Organization) ChangeEmail(email string) (Organization, error) {
	if email == "" {
		return Organization{}, errors.Wrap(BadParameterError, "organization email cannot be empty")
	}
	org.Email = email
	return org, nil
}

// VisibleApiKeys filters the key set by viewer rank: a key is visible iff its
// role rank does not exceed the viewer's.
func (org Organization) VisibleApiKeys(viewer Role) []ApiKey {
	visible := make([]ApiKey, 0, len(org.ApiKeys))
	for _, apiKey := range org.ApiKeys {
		if apiKey.Role().Rank() <= viewer.Rank() {
			visible = append(visible, apiKey)
		}
	}
	return visible
}

type CreateOrganizationInput struct {
	Name  string
	Email string
}

type UpdateOrganizationInput struct {
	Id    string
	Name  *string
	Email *string
}

// OrganizationMembership is the projection returned when listing the
// organizations a user belongs to.
type OrganizationMembership struct {
	OrganizationId   string
	OrganizationName string
	Role             Role
}
