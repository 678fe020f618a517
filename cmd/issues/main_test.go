package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/acc-issues/auth"
	"github.com/jrsteele09/acc-issues/internal/config"
	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/oauthmodel"
	"github.com/jrsteele09/acc-issues/sessions"
	"github.com/jrsteele09/acc-issues/sessions/filerepo"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Run("project id", func(t *testing.T) {
		opts, err := parseFlags([]string{"--project-id", "b.123", "--all-pages"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.Equal(t, options{projectID: "b.123", allPages: true}, opts)
	})

	t.Run("export without project id", func(t *testing.T) {
		opts, err := parseFlags([]string{"--export-projects"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.True(t, opts.exportProjects)
	})

	t.Run("project id required", func(t *testing.T) {
		var stderr bytes.Buffer
		_, err := parseFlags(nil, &stderr)
		require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
		require.Contains(t, stderr.String(), "--project-id is required")
	})
}

func TestAuthMessage(t *testing.T) {
	const login = "http://127.0.0.1:8000/login"

	require.Equal(t, "No active sessions found. Please visit "+login+" to authenticate.", authMessage(apperrors.ErrNoSessions, login))
	require.Equal(t, "No valid session found.", authMessage(apperrors.ErrSessionNotFound, login))
	require.Equal(t, "Session has expired. Please visit "+login+" to authenticate.", authMessage(apperrors.ErrSessionExpired, login))
	require.Equal(t,
		"Warning: Missing required scopes: user:read, user:write\nPlease visit "+login+" to authenticate with all required scopes.",
		authMessage(&auth.MissingScopesError{Missing: []string{"user:read", "user:write"}}, login))
}

func TestLoginURL(t *testing.T) {
	require.Equal(t, "http://127.0.0.1:8000/login", loginURL("http://127.0.0.1:8000/oauth/callback"))
	require.Equal(t, "https://acc.example.com/login", loginURL("https://acc.example.com/oauth/callback"))
	require.Equal(t, "http://127.0.0.1:8000/login", loginURL("not a url"))
}

func TestRunWithoutSessions(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AUTODESK_CLIENT_ID", "id")
	t.Setenv("AUTODESK_CLIENT_SECRET", "secret")
	t.Setenv("SESSION_STORE", config.SessionStoreFile)
	t.Setenv("SESSIONS_FILE", filepath.Join(dir, "sessions.json"))
	c, err := config.New()
	require.NoError(t, err)

	var out bytes.Buffer
	err = run(context.Background(), options{projectID: "p1"}, c, &out)
	require.ErrorIs(t, err, apperrors.ErrNoSessions)
	require.Contains(t, out.String(), "No active sessions found")
	require.Contains(t, out.String(), "Failed to get access token")
}

func TestRunExpiredSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.json")
	require.NoError(t, filerepo.New(path).Upsert(sessions.Session{
		ID:          "old",
		AccessToken: "at",
		Scope:       oauthmodel.RequiredScopeString(),
		CreatedAt:   time.Now().Add(-2 * time.Hour),
		ExpiresAt:   time.Now().Add(-time.Hour),
	}))
	_, err := os.Stat(path)
	require.NoError(t, err)

	t.Setenv("AUTODESK_CLIENT_ID", "id")
	t.Setenv("AUTODESK_CLIENT_SECRET", "secret")
	t.Setenv("SESSION_STORE", config.SessionStoreFile)
	t.Setenv("SESSIONS_FILE", path)
	c, err := config.New()
	require.NoError(t, err)

	var out bytes.Buffer
	err = run(context.Background(), options{projectID: "p1"}, c, &out)
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	require.Contains(t, out.String(), "Session has expired")
}

func TestRunListsIssues(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /bim360/admin/v1/projects/b.p1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"b.p1"}`))
	})
	mux.HandleFunc("GET /construction/issues/v1/projects/p1/issues", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"id":"i1","title":"Leak","displayId":7}]}`))
	})
	provider := httptest.NewServer(mux)
	t.Cleanup(provider.Close)

	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, filerepo.New(path).Upsert(sessions.Session{
		ID:          "s1",
		AccessToken: "at",
		Scope:       oauthmodel.RequiredScopeString(),
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(time.Hour),
	}))

	t.Setenv("AUTODESK_CLIENT_ID", "id")
	t.Setenv("AUTODESK_CLIENT_SECRET", "secret")
	t.Setenv("SESSION_STORE", config.SessionStoreFile)
	t.Setenv("SESSIONS_FILE", path)
	t.Setenv("AUTODESK_API_BASE_URL", provider.URL)
	t.Setenv("AUTODESK_CAPABILITIES_FILE", "")
	c, err := config.New()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), options{projectID: "p1"}, c, &out))
	require.Contains(t, out.String(), "Project ID: p1")
	require.Contains(t, out.String(), "Found 1 issues:")
	require.Contains(t, out.String(), "7 (i1)")
	require.Contains(t, out.String(), "Leak")
}
