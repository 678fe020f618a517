package server

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/acc-issues/internal/config"
	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"golang.org/x/oauth2"
)

// ResolveEndpoint returns the provider's authorize and token URLs. When an
// OIDC issuer is configured they come from its discovery document; otherwise
// the configured static URLs are used. Client credentials are always sent in
// the token request body.
func ResolveEndpoint(ctx context.Context, c config.OAuthConfig) (oauth2.Endpoint, error) {
	issuer := c.GetOIDCIssuer()
	if issuer == "" {
		return oauth2.Endpoint{
			AuthURL:   c.GetAuthURL(),
			TokenURL:  c.GetTokenURL(),
			AuthStyle: oauth2.AuthStyleInParams,
		}, nil
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return oauth2.Endpoint{}, apperrors.Wrapf(err, "[server ResolveEndpoint] discovery for %s", issuer)
	}
	endpoint := provider.Endpoint()
	endpoint.AuthStyle = oauth2.AuthStyleInParams
	return endpoint, nil
}
