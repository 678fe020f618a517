package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/jrsteele09/acc-issues/internal/config"
	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/oauthmodel"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("AUTODESK_CLIENT_ID", "client")
	t.Setenv("AUTODESK_CLIENT_SECRET", "secret")
}

func TestNewDefaults(t *testing.T) {
	setCredentials(t)
	for _, key := range []string{"HOST", "PORT", "STATE_MODE", "SESSION_STORE", "AUTODESK_REDIRECT_URI", "STATE_TTL", "ISSUE_ENDPOINT_TIMEOUT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	c, err := config.New()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:8000", c.GetAddr())
	require.Equal(t, "client", c.GetClientID())
	require.Equal(t, "secret", c.GetClientSecret())
	require.Equal(t, "http://127.0.0.1:8000/oauth/callback", c.GetRedirectURI())
	require.Equal(t, oauthmodel.RequiredScopes(), c.GetScopes())
	require.Equal(t, config.StateModeSigned, c.GetStateMode())
	require.Equal(t, time.Hour, c.GetStateTTL())
	require.Equal(t, 32, c.GetStateLength())
	require.Equal(t, time.Hour, c.GetSessionCookieMaxAge())
	require.Equal(t, time.Hour, c.GetDefaultTokenExpiry())
	require.Equal(t, config.SessionStoreFile, c.GetSessionStore())
	require.Equal(t, "sessions.json", c.GetSessionsFile())
	require.Equal(t, "autodesk_projects.json", c.GetExportFile())
	require.Equal(t, 10*time.Second, c.GetIssueEndpointTimeout())
}

func TestNewOverrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STATE_MODE", config.StateModeMemory)
	t.Setenv("SESSION_STORE", config.SessionStoreSQLite)
	t.Setenv("SESSIONS_DB", "/tmp/s.db")
	t.Setenv("STATE_TTL", "30m")

	c, err := config.New()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", c.GetAddr())
	require.Equal(t, config.StateModeMemory, c.GetStateMode())
	require.Equal(t, config.SessionStoreSQLite, c.GetSessionStore())
	require.Equal(t, "/tmp/s.db", c.GetSessionsDB())
	require.Equal(t, 30*time.Minute, c.GetStateTTL())
}

func TestNewMissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		secret string
	}{
		{name: "both empty"},
		{name: "secret empty", id: "client"},
		{name: "id empty", secret: "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTODESK_CLIENT_ID", tt.id)
			t.Setenv("AUTODESK_CLIENT_SECRET", tt.secret)

			_, err := config.New()
			require.ErrorIs(t, err, apperrors.ErrMissingCredentials)
		})
	}
}

func TestNewInvalidValues(t *testing.T) {
	t.Run("state mode", func(t *testing.T) {
		setCredentials(t)
		t.Setenv("STATE_MODE", "cookie")
		_, err := config.New()
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	})

	t.Run("session store", func(t *testing.T) {
		setCredentials(t)
		t.Setenv("SESSION_STORE", "redis")
		_, err := config.New()
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	})

	t.Run("unparseable duration", func(t *testing.T) {
		setCredentials(t)
		t.Setenv("STATE_TTL", "soon")
		_, err := config.New()
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
	})
}
