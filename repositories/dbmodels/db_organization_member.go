package dbmodels

import (
	"github.com/portcullis-hq/portcullis-backend/models"
)

type DBOrganizationMember struct {
	OrgId  string `db:"org_id"`
	UserId string `db:"user_id"`
	Role   int    `db:"role"`
}

const TABLE_ORGANIZATION_MEMBERS = "organization_members"

var SelectOrganizationMemberColumns = []string{"org_id", "user_id", "role"}

func AdaptOrganizationMember(db DBOrganizationMember) (models.OrganizationMember, error) {
	return models.OrganizationMember{
		UserId: models.UserId(db.UserId),
		Role:   models.Role(db.Role),
	}, nil
}

// DBMembership joins a member row with its organization for the membership
// listing of one user.
type DBMembership struct {
	OrgId   string `db:"org_id"`
	OrgName string `db:"name"`
	Role    int    `db:"role"`
}

func AdaptMembership(db DBMembership) (models.OrganizationMembership, error) {
	return models.OrganizationMembership{
		OrganizationId:   db.OrgId,
		OrganizationName: db.OrgName,
		Role:             models.Role(db.Role),
	}, nil
}
