package idp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/portcullis-hq/portcullis-backend/models"
)

// KeySetProvider returns the published verification key records of an
// issuer.
type KeySetProvider interface {
	FetchKeySet(ctx context.Context, issuer string) (models.KeySet, error)
}

const wellKnownKeySetPath = "/.well-known/jwks.json"

const fetchAttempts = 3

// HttpKeySetProvider fetches the issuer's key set document from its
// well-known endpoint. The fetch is an idempotent GET, so transient transport
// failures are retried here at the collaborator boundary.
type HttpKeySetProvider struct {
	client *http.Client
}

func NewHttpKeySetProvider(client *http.Client) *HttpKeySetProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HttpKeySetProvider{client: client}
}

func (p *HttpKeySetProvider) FetchKeySet(ctx context.Context, issuer string) (models.KeySet, error) {
	url := strings.TrimSuffix(issuer, "/") + wellKnownKeySetPath

	keySet, err := retry.DoWithData(
		func() (models.KeySet, error) {
			return p.fetchOnce(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(fetchAttempts),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return models.KeySet{}, errors.Wrapf(err, "fetching key set of issuer %s", issuer)
	}
	return keySet, nil
}

func (p *HttpKeySetProvider) fetchOnce(ctx context.Context, url string) (models.KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.KeySet{}, retry.Unrecoverable(err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return models.KeySet{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("key set endpoint %s returned status %d", url, resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return models.KeySet{}, retry.Unrecoverable(err)
		}
		return models.KeySet{}, err
	}

	var keySet models.KeySet
	if err := json.NewDecoder(resp.Body).Decode(&keySet); err != nil {
		return models.KeySet{}, retry.Unrecoverable(errors.Wrap(err, "decoding key set document"))
	}
	return keySet, nil
}
