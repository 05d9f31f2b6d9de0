package dbmodels

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/portcullis-hq/portcullis-backend/models"
)

type DBApiKey struct {
	KeyId       string `db:"key_id"`
	OrgId       string `db:"org_id"`
	Name        string `db:"name"`
	Claims      []byte `db:"claims"`
	SignedToken string `db:"signed_token"`
}

const TABLE_API_KEYS = "api_keys"

var SelectApiKeyColumns = []string{"key_id", "org_id", "name", "claims", "signed_token"}

func AdaptApiKey(db DBApiKey) (models.ApiKey, error) {
	claims := make(map[string]string)
	if len(db.Claims) > 0 {
		if err := json.Unmarshal(db.Claims, &claims); err != nil {
			return models.ApiKey{}, errors.Wrapf(err, "decoding claims of api key %s", db.KeyId)
		}
	}
	return models.ApiKey{
		KeyId:       db.KeyId,
		Name:        db.Name,
		Claims:      claims,
		SignedToken: db.SignedToken,
	}, nil
}
