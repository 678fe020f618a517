package filerepo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/sessions"
	"github.com/jrsteele09/acc-issues/sessions/filerepo"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*filerepo.Repo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.json")
	return filerepo.New(path), path
}

func TestLoad(t *testing.T) {
	t.Run("missing file is an empty store", func(t *testing.T) {
		repo, _ := newRepo(t)
		store := repo.Load()
		require.NotNil(t, store)
		require.Empty(t, store)
	})

	t.Run("malformed file is an empty store", func(t *testing.T) {
		repo, path := newRepo(t)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		require.Empty(t, repo.Load())
	})

	t.Run("null document is an empty store", func(t *testing.T) {
		repo, path := newRepo(t)
		require.NoError(t, os.WriteFile(path, []byte("null"), 0o600))
		store := repo.Load()
		require.NotNil(t, store)
		require.Empty(t, store)
	})

	t.Run("reads epoch-second documents", func(t *testing.T) {
		repo, path := newRepo(t)
		doc := `{
  "abc": {
    "access_token": "tok",
    "scope": "data:read",
    "created_at": 1700000000.5,
    "expires_at": 1700003600.5
  }
}`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		store := repo.Load()
		require.Len(t, store, 1)
		session := store["abc"]
		require.Equal(t, "abc", session.ID)
		require.Equal(t, "tok", session.AccessToken)
		require.Equal(t, "data:read", session.Scope)
		require.Equal(t, int64(1700000000), session.CreatedAt.Unix())
		require.Equal(t, int64(1700003600), session.ExpiresAt.Unix())
	})
}

func TestSaveAndGet(t *testing.T) {
	repo, path := newRepo(t)
	created := time.Unix(1700000000, 0)

	require.NoError(t, repo.Upsert(sessions.Session{
		ID:          "s1",
		AccessToken: "token-1",
		Scope:       "data:read data:write",
		CreatedAt:   created,
		ExpiresAt:   created.Add(time.Hour),
	}))
	require.NoError(t, repo.Upsert(sessions.Session{
		ID:          "s2",
		AccessToken: "token-2",
		CreatedAt:   created.Add(time.Minute),
		ExpiresAt:   created.Add(time.Hour),
	}))

	got, err := repo.Get("s1")
	require.NoError(t, err)
	require.Equal(t, "token-1", got.AccessToken)
	require.True(t, got.CreatedAt.Equal(created))

	_, err = repo.Get("missing")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	_, err = repo.Get("")
	require.Error(t, err)

	// No temp files are left next to the store.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Save replaces the whole document.
	require.NoError(t, repo.Save(sessions.Store{}))
	require.Empty(t, repo.Load())
}

func TestUpsertRequiresID(t *testing.T) {
	repo, _ := newRepo(t)
	require.Error(t, repo.Upsert(sessions.Session{AccessToken: "tok"}))
}
