package models

// ClaimRole is the claim key that carries the key's rank. It is authoritative
// for the api key identity: unlike user tokens, an api key does not appear in
// the organization member set.
const ClaimRole = "role"

// ApiKey is an organization scoped credential. KeyId doubles as the JWT kid
// header of SignedToken; Name is a human handle, unique per organization, and
// not a security boundary.
type ApiKey struct {
	KeyId       string
	Name        string
	Claims      map[string]string
	SignedToken string
}

// Role reads the key's rank from its claims. Issuance guarantees the claim is
// present and valid, so NO_ROLE only shows up for keys built by hand.
func (k ApiKey) Role() Role {
	return RoleFromString(k.Claims[ClaimRole])
}

type CreateApiKeyInput struct {
	OrganizationId string
	Name           string
	Claims         map[string]string
}
