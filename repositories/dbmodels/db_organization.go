package dbmodels

import (
	"github.com/portcullis-hq/portcullis-backend/models"
)

type DBOrganization struct {
	Id           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	SigningKeyId string `db:"signing_key_id"`
	Version      int    `db:"version"`
}

const TABLE_ORGANIZATIONS = "organizations"

var SelectOrganizationColumns = []string{"id", "name", "email", "signing_key_id", "version"}

func AdaptOrganization(db DBOrganization) (models.Organization, error) {
	return models.Organization{
		Id:           db.Id,
		Name:         db.Name,
		Email:        db.Email,
		SigningKeyId: db.SigningKeyId,
		Version:      db.Version,
	}, nil
}
