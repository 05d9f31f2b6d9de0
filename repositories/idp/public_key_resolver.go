package idp

import (
	"context"
	"crypto/rsa"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/repositories"
)

// PublicKeyResolver looks up verification keys from two trust sources: the
// external identity provider's published key set, and the key store holding
// internally issued signing keys.
//
// The cache maps kid to public key and never evicts: once a key id has been
// resolved it is trusted for the lifetime of the process. A rotated or
// compromised key therefore stays trusted until restart; this mirrors the
// trust model of the deployment, do not swap in an evicting cache without
// revisiting it. Concurrent resolution of one uncached kid may fetch twice;
// the fetch is idempotent and last write wins.
type PublicKeyResolver struct {
	provider KeySetProvider
	keyStore repositories.KeyStore

	cache sync.Map // kid -> *rsa.PublicKey
}

func NewPublicKeyResolver(provider KeySetProvider, keyStore repositories.KeyStore) *PublicKeyResolver {
	return &PublicKeyResolver{
		provider: provider,
		keyStore: keyStore,
	}
}

// ResolvePublicKey returns the verification key for (issuer, kid). All
// failure modes are classified as invalid token: an unresolvable key and a
// forged one are indistinguishable to the caller.
func (r *PublicKeyResolver) ResolvePublicKey(ctx context.Context, issuer, kid string) (*rsa.PublicKey, error) {
	if cached, ok := r.cache.Load(kid); ok {
		return cached.(*rsa.PublicKey), nil
	}

	publicKey, err := r.lookup(ctx, issuer, kid)
	if err != nil {
		return nil, errors.Join(models.ErrInvalidToken, err)
	}

	r.cache.Store(kid, publicKey)
	return publicKey, nil
}

func (r *PublicKeyResolver) lookup(ctx context.Context, issuer, kid string) (*rsa.PublicKey, error) {
	if issuer == models.ServiceIssuer {
		return r.keyStore.GetPublicKey(kid)
	}

	keySet, err := r.provider.FetchKeySet(ctx, issuer)
	if err != nil {
		return nil, err
	}
	record, ok := keySet.KeyById(kid)
	if !ok {
		return nil, fmt.Errorf("key %s not found in key set of issuer %s", kid, issuer)
	}
	return record.RSAPublicKey()
}
