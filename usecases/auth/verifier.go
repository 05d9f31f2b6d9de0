package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/portcullis-hq/portcullis-backend/models"
)

// KeyResolver resolves the verification key of a credential from its issuer
// and key id.
type KeyResolver interface {
	ResolvePublicKey(ctx context.Context, issuer, kid string) (*rsa.PublicKey, error)
}

// TokenVerifier authenticates bearer credentials: identity tokens published
// by the external identity provider and internally issued api keys. It is
// stateless; the resolver owns the only cache.
type TokenVerifier struct {
	resolver KeyResolver
}

func NewTokenVerifier(resolver KeyResolver) *TokenVerifier {
	return &TokenVerifier{resolver: resolver}
}

type tokenHeader struct {
	Alg string `json:"alg"`
	Kid string `json:"kid"`
}

type tokenBody struct {
	Issuer  string `json:"iss"`
	Subject string `json:"sub"`
}

// decodeSegments splits a compact serialized credential. A credential
// presented without its signature segment is tolerated here, claims can be
// inspected before verification; any other shape is malformed.
func decodeSegments(credential string) (header, body, signature string, err error) {
	segments := strings.Split(credential, ".")
	switch len(segments) {
	case 2:
		return segments[0], segments[1], "", nil
	case 3:
		return segments[0], segments[1], segments[2], nil
	default:
		return "", "", "", errors.Wrap(models.ErrInvalidToken, "malformed credential")
	}
}

func decodeSegment(segment string, into any) error {
	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return errors.Wrap(models.ErrInvalidToken, "credential segment is not base64url")
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return errors.Wrap(models.ErrInvalidToken, "credential segment is not valid json")
	}
	return nil
}

// PeekClaims decodes the credential body without verifying the signature.
// Never use the result to authenticate anything.
func PeekClaims(credential string) (map[string]any, error) {
	if credential == "" {
		return nil, errors.Wrap(models.ErrInvalidToken, "empty credential")
	}
	_, body, _, err := decodeSegments(credential)
	if err != nil {
		return nil, err
	}
	claims := make(map[string]any)
	if err := decodeSegment(body, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Verify runs the full pipeline: shape checks, key resolution through the
// resolver, RS256 signature and expiry validation, then profile
// construction. Every failure mode collapses into ErrInvalidToken.
func (v *TokenVerifier) Verify(ctx context.Context, credential models.Credential) (models.Profile, error) {
	if credential.Value == "" {
		return models.Profile{}, errors.Wrap(models.ErrInvalidToken, "empty credential")
	}

	headerSegment, bodySegment, _, err := decodeSegments(credential.Value)
	if err != nil {
		return models.Profile{}, err
	}

	var header tokenHeader
	if err := decodeSegment(headerSegment, &header); err != nil {
		return models.Profile{}, err
	}
	if header.Kid == "" {
		return models.Profile{}, errors.Wrap(models.ErrInvalidToken, "missing key id")
	}

	var body tokenBody
	if err := decodeSegment(bodySegment, &body); err != nil {
		return models.Profile{}, err
	}
	if body.Issuer == "" {
		return models.Profile{}, errors.Wrap(models.ErrInvalidToken, "missing issuer")
	}
	if credential.Issuer != "" && credential.Issuer != body.Issuer {
		return models.Profile{}, errors.Wrap(models.ErrInvalidToken, "issuer mismatch")
	}

	publicKey, err := v.resolver.ResolvePublicKey(ctx, body.Issuer, header.Kid)
	if err != nil {
		return models.Profile{}, err
	}

	token, err := jwt.Parse(
		credential.Value,
		func(token *jwt.Token) (any, error) { return publicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return models.Profile{}, errors.Wrap(models.ErrInvalidToken, "Token verification failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Profile{}, errors.Wrap(models.ErrInvalidToken, "Token verification failed")
	}
	return buildProfile(claims), nil
}

func buildProfile(claims jwt.MapClaims) models.Profile {
	profile := models.Profile{
		Claims: make(map[string]string),
	}
	for key, value := range claims {
		str, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "sub":
			profile.UserId = models.UserId(str)
		case "email":
			profile.Email = str
		case "name":
			profile.Name = str
		default:
			profile.Claims[key] = str
		}
	}
	if userId, ok := claims["user_id"].(string); ok {
		profile.UserId = models.UserId(userId)
	}
	return profile
}
