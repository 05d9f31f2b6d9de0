package models

import (
	"crypto/rsa"
	"encoding/base64"
	"math/big"

	"github.com/cockroachdb/errors"
)

// KeySet is the published key set document of an issuer:
// {"keys":[{"kid","kty","alg","use","n","e"}]} with n/e base64url encoded
// big-endian integers.
type KeySet struct {
	Keys []KeyRecord `json:"keys"`
}

type KeyRecord struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg,omitempty"`
	Use string `json:"use,omitempty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (ks KeySet) KeyById(kid string) (KeyRecord, bool) {
	for _, key := range ks.Keys {
		if key.Kid == kid {
			return key, true
		}
	}
	return KeyRecord{}, false
}

// RSAPublicKey reconstructs the verification key from the record's modulus
// and exponent.
func (k KeyRecord) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, errors.Newf("unsupported key type %s for key %s", k.Kty, k.Kid)
	}

	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding modulus of key %s", k.Kid)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding exponent of key %s", k.Kid)
	}

	e := new(big.Int).SetBytes(eBytes)
	if !e.IsInt64() || e.Int64() <= 0 {
		return nil, errors.Newf("invalid exponent of key %s", k.Kid)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(e.Int64()),
	}, nil
}
