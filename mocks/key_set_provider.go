package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/portcullis-hq/portcullis-backend/models"
)

type KeySetProvider struct {
	mock.Mock
}

func (p *KeySetProvider) FetchKeySet(ctx context.Context, issuer string) (models.KeySet, error) {
	args := p.Called(issuer)
	return args.Get(0).(models.KeySet), args.Error(1)
}
