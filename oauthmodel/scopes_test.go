package oauthmodel_test

import (
	"testing"

	"github.com/jrsteele09/acc-issues/oauthmodel"
	"github.com/stretchr/testify/require"
)

func TestRequiredScopeString(t *testing.T) {
	require.Equal(t, "data:read data:write account:read account:write user:read user:write", oauthmodel.RequiredScopeString())
}

func TestMissingRequired(t *testing.T) {
	t.Run("all present in any order", func(t *testing.T) {
		missing := oauthmodel.MissingRequired("user:write user:read account:write account:read data:write data:read")
		require.Empty(t, missing)
	})

	t.Run("extra whitespace and extra scopes are ignored", func(t *testing.T) {
		missing := oauthmodel.MissingRequired("  data:read\tdata:write account:read account:write  user:read user:write viewables:read ")
		require.Empty(t, missing)
	})

	t.Run("each single omission is reported", func(t *testing.T) {
		for _, omit := range oauthmodel.RequiredScopes() {
			var granted []string
			for _, s := range oauthmodel.RequiredScopes() {
				if s != omit {
					granted = append(granted, s)
				}
			}
			scope := ""
			for _, g := range granted {
				scope += g + " "
			}
			require.Equal(t, []string{omit}, oauthmodel.MissingRequired(scope), "omitting %s", omit)
		}
	})

	t.Run("empty scope misses everything in order", func(t *testing.T) {
		require.Equal(t, oauthmodel.RequiredScopes(), oauthmodel.MissingRequired(""))
	})

	t.Run("prefix match is not a match", func(t *testing.T) {
		missing := oauthmodel.MissingRequired("data:read data:write account:read account:write user:read user:writes")
		require.Equal(t, []string{"user:write"}, missing)
	})
}

func TestValidateScope(t *testing.T) {
	require.NoError(t, oauthmodel.ValidateScope(oauthmodel.RequiredScopeString()))
	require.ErrorIs(t, oauthmodel.ValidateScope("data:read\ndata:write"), oauthmodel.ErrInvalidScope)
}
