package repositories

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/portcullis-hq/portcullis-backend/models"
)

// KeyStore holds the signing key pairs of organizations. Keys are persisted
// as base64 of standard DER encodings (PKIX for public keys, PKCS8 for
// private keys); the backing medium is up to the implementation.
type KeyStore interface {
	Store(keyId string, keyPair *rsa.PrivateKey) error
	GetPublicKey(keyId string) (*rsa.PublicKey, error)
	GetPrivateKey(keyId string) (*rsa.PrivateKey, error)
	Delete(keyId string) error
}

const signingKeyBits = 2048

// GenerateSigningKeyPair creates the RSA key pair assigned to a new
// organization.
func GenerateSigningKeyPair() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, signingKeyBits)
}

type storedKeyPair struct {
	publicKey  string
	privateKey string
}

// InMemoryKeyStore keeps encoded key pairs in a map. Used for tests and
// single-process deployments; a secret manager backed implementation
// satisfies the same contract.
type InMemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[string]storedKeyPair
}

func NewInMemoryKeyStore() *InMemoryKeyStore {
	return &InMemoryKeyStore{keys: make(map[string]storedKeyPair)}
}

func (s *InMemoryKeyStore) Store(keyId string, keyPair *rsa.PrivateKey) error {
	privateDer, err := x509.MarshalPKCS8PrivateKey(keyPair)
	if err != nil {
		return errors.Wrapf(err, "encoding private key %s", keyId)
	}
	publicDer, err := x509.MarshalPKIXPublicKey(&keyPair.PublicKey)
	if err != nil {
		return errors.Wrapf(err, "encoding public key %s", keyId)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[keyId] = storedKeyPair{
		publicKey:  base64.StdEncoding.EncodeToString(publicDer),
		privateKey: base64.StdEncoding.EncodeToString(privateDer),
	}
	return nil
}

func (s *InMemoryKeyStore) GetPublicKey(keyId string) (*rsa.PublicKey, error) {
	s.mu.RLock()
	stored, ok := s.keys[keyId]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.WithDetail(models.ErrKeyNotFound, keyId)
	}

	der, err := base64.StdEncoding.DecodeString(stored.publicKey)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding public key %s", keyId)
	}
	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing public key %s", keyId)
	}
	publicKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.Newf("key %s is not an RSA public key", keyId)
	}
	return publicKey, nil
}

func (s *InMemoryKeyStore) GetPrivateKey(keyId string) (*rsa.PrivateKey, error) {
	s.mu.RLock()
	stored, ok := s.keys[keyId]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.WithDetail(models.ErrKeyNotFound, keyId)
	}

	der, err := base64.StdEncoding.DecodeString(stored.privateKey)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding private key %s", keyId)
	}
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing private key %s", keyId)
	}
	privateKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.Newf("key %s is not an RSA private key", keyId)
	}
	return privateKey, nil
}

func (s *InMemoryKeyStore) Delete(keyId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, keyId)
	return nil
}
