package sessions_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jrsteele09/acc-issues/sessions"
	"github.com/stretchr/testify/require"
)

func TestLatest(t *testing.T) {
	base := time.Unix(1700000000, 0)

	t.Run("empty store", func(t *testing.T) {
		_, ok := sessions.Store{}.Latest()
		require.False(t, ok)
	})

	t.Run("greatest created_at wins", func(t *testing.T) {
		store := sessions.Store{}
		for i, id := range []string{"c", "a", "e", "b", "d"} {
			store.Put(sessions.Session{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		}
		for range 20 {
			latest, ok := store.Latest()
			require.True(t, ok)
			require.Equal(t, "d", latest.ID)
		}
	})

	t.Run("ties resolve to greatest id", func(t *testing.T) {
		store := sessions.Store{
			"alpha": {CreatedAt: base},
			"omega": {CreatedAt: base},
			"beta":  {CreatedAt: base},
			"old":   {CreatedAt: base.Add(-time.Hour)},
		}
		for range 20 {
			latest, ok := store.Latest()
			require.True(t, ok)
			require.Equal(t, "omega", latest.ID)
		}
	})

	t.Run("sessions without created_at are never selected", func(t *testing.T) {
		store := sessions.Store{
			"zero":  {AccessToken: "x"},
			"epoch": {AccessToken: "y", CreatedAt: time.Unix(0, 0)},
		}
		_, ok := store.Latest()
		require.False(t, ok)
	})
}

func TestSessionExpired(t *testing.T) {
	now := time.Unix(1700000000, 0)
	require.True(t, sessions.Session{ExpiresAt: now.Add(-time.Second)}.Expired(now))
	require.False(t, sessions.Session{ExpiresAt: now.Add(time.Second)}.Expired(now))
	require.False(t, sessions.Session{ExpiresAt: now}.Expired(now))
}

func TestStoreJSON(t *testing.T) {
	created := time.Unix(1700000000, 250000000)
	store := sessions.Store{}
	store.Put(sessions.Session{
		ID:          "id-1",
		AccessToken: "tok",
		Scope:       "data:read",
		CreatedAt:   created,
		ExpiresAt:   created.Add(time.Hour),
	})

	data, err := json.Marshal(store)
	require.NoError(t, err)
	require.JSONEq(t, `{"id-1":{"access_token":"tok","scope":"data:read","created_at":1700000000.25,"expires_at":1700003600.25}}`, string(data))

	var decoded sessions.Store
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "id-1", decoded["id-1"].ID)
	require.Equal(t, created.UnixMilli(), decoded["id-1"].CreatedAt.UnixMilli())
}

func TestFromEpoch(t *testing.T) {
	require.True(t, sessions.FromEpoch(0).IsZero())
	require.Equal(t, int64(1700000000), sessions.FromEpoch(1700000000.9).Unix())
}
