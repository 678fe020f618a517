package sqliterepo_test

import (
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/sessions"
	"github.com/jrsteele09/acc-issues/sessions/sqliterepo"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T) *sqliterepo.Repo {
	t.Helper()
	repo, err := sqliterepo.Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := sqliterepo.Open("  ")
	require.Error(t, err)
}

func TestUpsertGetLoad(t *testing.T) {
	repo := openRepo(t)
	created := time.UnixMilli(1700000000123).UTC()

	require.Empty(t, repo.Load())

	session := sessions.Session{
		ID:          "s1",
		AccessToken: "token-1",
		Scope:       "data:read",
		CreatedAt:   created,
		ExpiresAt:   created.Add(time.Hour),
	}
	require.NoError(t, repo.Upsert(session))

	got, err := repo.Get("s1")
	require.NoError(t, err)
	require.Equal(t, session, got)

	session.AccessToken = "token-1b"
	require.NoError(t, repo.Upsert(session))
	got, err = repo.Get("s1")
	require.NoError(t, err)
	require.Equal(t, "token-1b", got.AccessToken)

	_, err = repo.Get("missing")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	store := repo.Load()
	require.Len(t, store, 1)
	require.Equal(t, "token-1b", store["s1"].AccessToken)
}

func TestSaveReplacesStore(t *testing.T) {
	repo := openRepo(t)
	now := time.UnixMilli(1700000000000).UTC()

	require.NoError(t, repo.Upsert(sessions.Session{ID: "old", AccessToken: "a", CreatedAt: now, ExpiresAt: now}))
	require.NoError(t, repo.Save(sessions.Store{
		"n1": {AccessToken: "b", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		"n2": {AccessToken: "c", CreatedAt: now.Add(time.Second), ExpiresAt: now.Add(time.Hour)},
	}))

	store := repo.Load()
	require.Len(t, store, 2)
	require.NotContains(t, store, "old")
	require.Equal(t, "n2", store["n2"].ID)

	latest, ok := store.Latest()
	require.True(t, ok)
	require.Equal(t, "n2", latest.ID)
}
