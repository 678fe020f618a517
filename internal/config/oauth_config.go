package config

import (
	"time"

	"github.com/jrsteele09/acc-issues/oauthmodel"
)

const (
	StateModeSigned = "signed"
	StateModeMemory = "memory"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetAuthURL() string
	GetTokenURL() string
	GetOIDCIssuer() string
	GetScopes() []string
	GetStateMode() string
	GetStateTTL() time.Duration
	GetStateLength() int
	GetSessionCookieMaxAge() time.Duration
	GetDefaultTokenExpiry() time.Duration
}

type OAuth struct {
	ClientID     string `env:"AUTODESK_CLIENT_ID,required,notEmpty"`
	ClientSecret string `env:"AUTODESK_CLIENT_SECRET,required,notEmpty"`

	// RedirectURI must exactly match the callback registered with the provider
	RedirectURI string `env:"AUTODESK_REDIRECT_URI" envDefault:"http://127.0.0.1:8000/oauth/callback"`
	AuthURL     string `env:"AUTODESK_AUTH_URL" envDefault:"https://developer.api.autodesk.com/authentication/v2/authorize"`
	TokenURL    string `env:"AUTODESK_TOKEN_URL" envDefault:"https://developer.api.autodesk.com/authentication/v2/token"`
	OIDCIssuer  string `env:"AUTODESK_OIDC_ISSUER"`

	StateMode           string        `env:"STATE_MODE" envDefault:"signed"`
	StateTTL            time.Duration `env:"STATE_TTL" envDefault:"1h"`
	SessionCookieMaxAge time.Duration `env:"SESSION_COOKIE_MAX_AGE" envDefault:"1h"`
	DefaultTokenExpiry  time.Duration `env:"DEFAULT_TOKEN_EXPIRY" envDefault:"1h"`
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetClientID() string {
	return o.ClientID
}

func (o OAuth) GetClientSecret() string {
	return o.ClientSecret
}

func (o OAuth) GetRedirectURI() string {
	return o.RedirectURI
}

func (o OAuth) GetAuthURL() string {
	return o.AuthURL
}

func (o OAuth) GetTokenURL() string {
	return o.TokenURL
}

// GetOIDCIssuer returns the issuer used for endpoint discovery. Empty means
// the static authorize/token URLs are used.
func (o OAuth) GetOIDCIssuer() string {
	return o.OIDCIssuer
}

// GetScopes returns the full scope set requested at login
func (OAuth) GetScopes() []string {
	return oauthmodel.RequiredScopes()
}

func (o OAuth) GetStateMode() string {
	return o.StateMode
}

func (o OAuth) GetStateTTL() time.Duration {
	return o.StateTTL
}

func (OAuth) GetStateLength() int {
	return 32 // 32 bytes = 256 bits
}

func (o OAuth) GetSessionCookieMaxAge() time.Duration {
	return o.SessionCookieMaxAge
}

func (o OAuth) GetDefaultTokenExpiry() time.Duration {
	return o.DefaultTokenExpiry
}
