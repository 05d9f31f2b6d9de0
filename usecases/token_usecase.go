package usecases

import (
	"context"
	"crypto/rsa"

	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/repositories"
	"github.com/portcullis-hq/portcullis-backend/usecases/auth"
)

// TokenUseCase authenticates inbound credentials. It runs before any
// organization is loaded, so unlike the other usecases it carries no caller
// profile.
type TokenUseCase struct {
	verifier *auth.TokenVerifier
	keyStore repositories.KeyStore
}

func (usecase TokenUseCase) ValidateCredential(ctx context.Context, credential models.Credential) (models.Profile, error) {
	return usecase.verifier.Verify(ctx, credential)
}

// GetPublicKey serves stored public keys to external verifiers of internally
// issued api keys.
func (usecase TokenUseCase) GetPublicKey(ctx context.Context, keyId string) (*rsa.PublicKey, error) {
	return usecase.keyStore.GetPublicKey(keyId)
}
