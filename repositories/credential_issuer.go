package repositories

import (
	"maps"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/portcullis-hq/portcullis-backend/models"
)

var SigningAlgo = jwt.SigningMethodRS256

// CredentialIssuer builds signed api keys bound to one organization. Issuance
// is all or nothing: any signing failure surfaces as ErrCredentialSigning and
// no key is produced.
type CredentialIssuer struct {
	keyStore KeyStore
	ttl      time.Duration
	now      func() time.Time
}

func NewCredentialIssuer(keyStore KeyStore, ttl time.Duration) *CredentialIssuer {
	return &CredentialIssuer{
		keyStore: keyStore,
		ttl:      ttl,
		now:      time.Now,
	}
}

// IssueApiKey signs a credential with the organization's private key. The
// role claim is defaulted to MEMBER when absent or not a valid role name,
// then the supplied claims ride along as custom claims.
func (issuer *CredentialIssuer) IssueApiKey(
	org models.Organization,
	keyId string,
	name string,
	claims map[string]string,
) (models.ApiKey, error) {
	normalized := make(map[string]string, len(claims)+1)
	maps.Copy(normalized, claims)
	if !models.RoleFromString(normalized[models.ClaimRole]).IsValid() {
		normalized[models.ClaimRole] = models.MEMBER.String()
	}

	issuedAt := issuer.now()

	tokenClaims := jwt.MapClaims{
		"iss": models.ServiceIssuer,
		"sub": org.Id,
		"aud": org.Id,
		"exp": jwt.NewNumericDate(issuedAt.Add(issuer.ttl)),
		"iat": jwt.NewNumericDate(issuedAt),
	}
	for key, value := range normalized {
		tokenClaims[key] = value
	}

	token := jwt.NewWithClaims(SigningAlgo, tokenClaims)
	token.Header["kid"] = keyId

	privateKey, err := issuer.keyStore.GetPrivateKey(org.SigningKeyId)
	if err != nil {
		return models.ApiKey{}, errors.Join(models.ErrCredentialSigning, err)
	}
	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		return models.ApiKey{}, errors.Join(models.ErrCredentialSigning, err)
	}

	return models.ApiKey{
		KeyId:       keyId,
		Name:        name,
		Claims:      normalized,
		SignedToken: signedToken,
	}, nil
}
