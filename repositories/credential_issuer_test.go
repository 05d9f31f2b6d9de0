package repositories

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portcullis-hq/portcullis-backend/models"
)

func issuerFixture(t *testing.T) (*CredentialIssuer, *InMemoryKeyStore, models.Organization) {
	t.Helper()

	keyStore := NewInMemoryKeyStore()
	keyPair, err := GenerateSigningKeyPair()
	require.NoError(t, err)
	require.NoError(t, keyStore.Store("signing-key-1", keyPair))

	org := models.NewOrganization("org-1", "Acme", "ops@acme.test", "signing-key-1", "alice")
	return NewCredentialIssuer(keyStore, time.Hour), keyStore, org
}

func TestIssueApiKey(t *testing.T) {
	t.Run("nominal", func(t *testing.T) {
		issuer, keyStore, org := issuerFixture(t)

		apiKey, err := issuer.IssueApiKey(org, "key-1", "ci", map[string]string{
			models.ClaimRole: models.ADMIN.String(),
		})
		require.NoError(t, err)

		assert.Equal(t, "key-1", apiKey.KeyId)
		assert.Equal(t, "ci", apiKey.Name)
		assert.Equal(t, models.ADMIN, apiKey.Role())
		assert.NotEmpty(t, apiKey.SignedToken)

		publicKey, err := keyStore.GetPublicKey(org.SigningKeyId)
		require.NoError(t, err)
		token, err := jwt.Parse(apiKey.SignedToken,
			func(*jwt.Token) (any, error) { return publicKey, nil },
			jwt.WithValidMethods([]string{SigningAlgo.Alg()}))
		require.NoError(t, err)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, models.ServiceIssuer, claims["iss"])
		assert.Equal(t, org.Id, claims["sub"])
		assert.Equal(t, "key-1", token.Header["kid"])
	})

	t.Run("role claim defaults to MEMBER", func(t *testing.T) {
		issuer, _, org := issuerFixture(t)

		apiKey, err := issuer.IssueApiKey(org, "key-1", "ci", nil)
		require.NoError(t, err)
		assert.Equal(t, models.MEMBER, apiKey.Role())

		apiKey, err = issuer.IssueApiKey(org, "key-2", "ci2", map[string]string{
			models.ClaimRole: "SUPERUSER",
		})
		require.NoError(t, err)
		assert.Equal(t, models.MEMBER, apiKey.Role())
	})

	t.Run("custom claims ride along untouched", func(t *testing.T) {
		issuer, _, org := issuerFixture(t)
		input := map[string]string{"pipeline": "deploy"}

		apiKey, err := issuer.IssueApiKey(org, "key-1", "ci", input)
		require.NoError(t, err)
		assert.Equal(t, "deploy", apiKey.Claims["pipeline"])

		// the input map is not the one stored on the key
		assert.NotContains(t, input, models.ClaimRole)
	})

	t.Run("missing signing key", func(t *testing.T) {
		issuer, _, org := issuerFixture(t)
		org.SigningKeyId = "unknown"

		_, err := issuer.IssueApiKey(org, "key-1", "ci", nil)
		assert.ErrorIs(t, err, models.ErrCredentialSigning)
		assert.ErrorIs(t, err, models.ErrKeyNotFound)
	})
}
