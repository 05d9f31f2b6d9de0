package security

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/portcullis-hq/portcullis-backend/models"
)

// EnforceSecurity is the base contract shared by the per-concern security
// implementations. Decisions are pure: the caller's rank in the target
// organization was resolved before the check, everything after is a table
// lookup plus the rank constraints.
type EnforceSecurity interface {
	Permission(permission models.Permission) error
}

type EnforceSecurityImpl struct {
	OrganizationCaller models.OrganizationCaller
}

// Permission rejects the operation when the caller's role does not carry the
// permission. The message carries the actor, the required rank and the target
// organization so that denials are auditable without extra context.
func (e *EnforceSecurityImpl) Permission(permission models.Permission) error {
	caller := e.OrganizationCaller
	if caller.Role.HasPermission(permission) {
		return nil
	}
	return errors.Wrap(models.ForbiddenError,
		fmt.Sprintf("user %s (%s) requires at least role %s for %s on organization %s",
			caller.Profile.UserId,
			caller.Profile.Name,
			minimumRoleFor(permission),
			permission,
			caller.OrganizationId))
}

func minimumRoleFor(permission models.Permission) models.Role {
	for _, role := range []models.Role{models.MEMBER, models.ADMIN, models.OWNER} {
		if role.HasPermission(permission) {
			return role
		}
	}
	return models.NO_ROLE
}

func (e *EnforceSecurityImpl) rankCeiling(target models.Role, action string) error {
	caller := e.OrganizationCaller
	if target.Rank() <= caller.Role.Rank() {
		return nil
	}
	return errors.Wrap(models.ForbiddenError,
		fmt.Sprintf("user %s (%s) with role %s cannot %s at role %s on organization %s",
			caller.Profile.UserId,
			caller.Profile.Name,
			caller.Role,
			action,
			target,
			caller.OrganizationId))
}
