package models

// ServiceIssuer is the iss claim of internally issued credentials.
const ServiceIssuer = "portcullis"

// Credential is an opaque bearer token plus an optional issuer hint. Callers
// never look inside; only the token verifier does.
type Credential struct {
	Value  string
	Issuer string
}

// Profile is the verified caller identity produced by the token verifier.
// The claim map is carried verbatim from the credential body; the caller's
// rank inside a given organization is resolved by looking UserId up in that
// organization's member set, except for api keys whose role claim stands on
// its own.
type Profile struct {
	UserId UserId
	Email  string
	Name   string
	Claims map[string]string
}

// OrganizationCaller is a profile resolved against one target organization.
// It is what the security layer makes its decisions on.
type OrganizationCaller struct {
	Profile        Profile
	OrganizationId string
	Role           Role
}
