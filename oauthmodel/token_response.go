package oauthmodel

// TokenResponse represents the provider's response to a token request
// (RFC 6749 section 5.1).
type TokenResponse struct {
	// AccessToken is the bearer token used on every data/admin API call.
	// Usage: Include in Authorization header: "Bearer <access_token>"
	AccessToken string `json:"access_token"`

	// TokenType is "Bearer" for this provider.
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 3599
	// Note: Absent or zero means the default session lifetime applies
	ExpiresIn int `json:"expires_in,omitempty"`

	// RefreshToken is returned by the provider but not used: there is no refresh flow.
	RefreshToken string `json:"refresh_token,omitempty"`

	// Scope indicates the granted permissions, space-separated.
	// Example: "data:read data:write account:read"
	// Note: May be omitted, in which case the requested scopes are assumed
	Scope string `json:"scope,omitempty"`
}
