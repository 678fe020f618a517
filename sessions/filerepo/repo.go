package filerepo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/sessions"
	"github.com/rs/zerolog/log"
)

var _ sessions.Repo = (*Repo)(nil)

// Repo persists the session store as a single JSON document.
// The mutex only serialises writers inside one process; across processes the
// last writer wins.
type Repo struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Repo {
	return &Repo{path: path}
}

func (r *Repo) Path() string {
	return r.path
}

// Load returns an empty store if the file is absent, unreadable or malformed.
func (r *Repo) Load() sessions.Store {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Err(err).Str("path", r.path).Msg("Error loading sessions")
		}
		return sessions.Store{}
	}

	var store sessions.Store
	if err := json.Unmarshal(data, &store); err != nil {
		log.Err(err).Str("path", r.path).Msg("Error loading sessions")
		return sessions.Store{}
	}
	if store == nil {
		store = sessions.Store{}
	}
	return store
}

// Save writes the whole store to a temporary file in the same directory and
// renames it over the target, so readers never observe a truncated document.
func (r *Repo) Save(store sessions.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(store)
}

func (r *Repo) save(store sessions.Store) error {
	if store == nil {
		store = sessions.Store{}
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("[filerepo Save] marshal sessions: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("[filerepo Save] create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("[filerepo Save] write sessions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[filerepo Save] close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("[filerepo Save] replace %s: %w", r.path, err)
	}
	return nil
}

// Upsert loads the current store, inserts the session and writes the store back.
func (r *Repo) Upsert(session sessions.Session) error {
	if session.ID == "" {
		return fmt.Errorf("sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.Load()
	store.Put(session)
	return r.save(store)
}

func (r *Repo) Get(sessionID string) (sessions.Session, error) {
	if sessionID == "" {
		return sessions.Session{}, fmt.Errorf("sessionID is required")
	}
	session, ok := r.Load()[sessionID]
	if !ok {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}
	return session, nil
}
