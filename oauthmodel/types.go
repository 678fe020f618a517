package oauthmodel

// ResponseType represents the OAuth 2.0 response type requested at the
// provider's authorize endpoint.
type ResponseType string

const (
	// CodeResponseType indicates the authorization code flow.
	// Example: /authentication/v2/authorize?response_type=code&client_id=...
	CodeResponseType ResponseType = "code"
)

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Token request includes: client_id, client_secret, code, redirect_uri
	AuthorizationCodeGrant GrantType = "authorization_code"
)

// Scope is a single named permission granted by the provider.
type Scope string

const (
	ScopeDataRead     Scope = "data:read"
	ScopeDataWrite    Scope = "data:write"
	ScopeAccountRead  Scope = "account:read"
	ScopeAccountWrite Scope = "account:write"
	ScopeUserRead     Scope = "user:read"
	ScopeUserWrite    Scope = "user:write"
)
