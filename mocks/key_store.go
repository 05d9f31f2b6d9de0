package mocks

import (
	"crypto/rsa"

	"github.com/stretchr/testify/mock"
)

type KeyStore struct {
	mock.Mock
}

func (s *KeyStore) Store(keyId string, keyPair *rsa.PrivateKey) error {
	args := s.Called(keyId, keyPair)
	return args.Error(0)
}

func (s *KeyStore) GetPublicKey(keyId string) (*rsa.PublicKey, error) {
	args := s.Called(keyId)
	key, _ := args.Get(0).(*rsa.PublicKey)
	return key, args.Error(1)
}

func (s *KeyStore) GetPrivateKey(keyId string) (*rsa.PrivateKey, error) {
	args := s.Called(keyId)
	key, _ := args.Get(0).(*rsa.PrivateKey)
	return key, args.Error(1)
}

func (s *KeyStore) Delete(keyId string) error {
	args := s.Called(keyId)
	return args.Error(0)
}
