package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// Credential verification errors. Anything that goes wrong between receiving
// a bearer token and producing a profile collapses into ErrInvalidToken so
// that callers cannot distinguish a forged token from an expired one.
var ErrInvalidToken = errors.Wrap(UnAuthorizedError, "invalid token")

// Membership and policy errors. A caller who is not part of the target
// organization at all gets ErrNotAMember; a member whose rank is too low for
// the operation gets a plain ForbiddenError wrap.
var ErrNotAMember = errors.Wrap(ForbiddenError, "not a member of the organization")

// ErrLastOwner rejects any mutation whose resulting member set would no
// longer contain an owner. It is checked against the latest snapshot before
// anything is persisted, so a rejected mutation leaves no partial state.
var ErrLastOwner = errors.New("At least one Owner should be persisted in the organization")

// Repository errors
var (
	ErrOrganizationNameTaken = errors.Wrap(ConflictError, "organization name already taken")
	ErrApiKeyNameTaken       = errors.Wrap(ConflictError, "api key name already taken")

	// ErrConcurrentModification signals a lost optimistic concurrency race.
	// The repository retries it internally; it only escapes when retries are
	// exhausted.
	ErrConcurrentModification = errors.New("concurrent modification of organization")
)

// Key material errors
var (
	ErrKeyNotFound       = errors.Wrap(NotFoundError, "signing key not found")
	ErrCredentialSigning = errors.New("credential issuance failed")
)
