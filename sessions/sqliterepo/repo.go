package sqliterepo

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/sessions"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	access_token TEXT NOT NULL,
	scope        TEXT NOT NULL DEFAULT '',
	created_at   INTEGER NOT NULL,
	expires_at   INTEGER NOT NULL
);`

var _ sessions.Repo = (*Repo)(nil)

// Repo is a SQLite-backed session store. Unlike the JSON file store, writes
// from the auth server and the issue client are transactional.
type Repo struct {
	db *sql.DB
}

// Open opens or creates the database at path. Use ":memory:" in tests.
func Open(path string) (*Repo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path)
	}
	db, err := sql.Open("sqlite", dsn+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repo) Load() sessions.Store {
	store := sessions.Store{}

	rows, err := r.db.Query(`SELECT id, access_token, scope, created_at, expires_at FROM sessions`)
	if err != nil {
		log.Err(err).Msg("Error loading sessions")
		return store
	}
	defer rows.Close()

	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			log.Err(err).Msg("Error loading sessions")
			return sessions.Store{}
		}
		store.Put(session)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Msg("Error loading sessions")
		return sessions.Store{}
	}
	return store
}

// Save replaces every stored session in a single transaction.
func (r *Repo) Save(store sessions.Store) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("[sqliterepo Save] begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("[sqliterepo Save] clear sessions: %w", err)
	}
	for id, session := range store {
		session.ID = id
		if err := upsert(tx, session); err != nil {
			return fmt.Errorf("[sqliterepo Save] %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("[sqliterepo Save] commit: %w", err)
	}
	return nil
}

func (r *Repo) Upsert(session sessions.Session) error {
	if session.ID == "" {
		return fmt.Errorf("sessionID is required")
	}
	if err := upsert(r.db, session); err != nil {
		return fmt.Errorf("[sqliterepo Upsert] %w", err)
	}
	return nil
}

func (r *Repo) Get(sessionID string) (sessions.Session, error) {
	if sessionID == "" {
		return sessions.Session{}, fmt.Errorf("sessionID is required")
	}
	row := r.db.QueryRow(`SELECT id, access_token, scope, created_at, expires_at FROM sessions WHERE id = ?`, sessionID)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return sessions.Session{}, fmt.Errorf("[sqliterepo Get] %w", err)
	}
	return session, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsert(db execer, session sessions.Session) error {
	_, err := db.Exec(`
		INSERT INTO sessions (id, access_token, scope, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			scope = excluded.scope,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`,
		session.ID, session.AccessToken, session.Scope, toMillis(session.CreatedAt), toMillis(session.ExpiresAt))
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", session.ID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (sessions.Session, error) {
	var (
		session   sessions.Session
		createdAt int64
		expiresAt int64
	)
	if err := row.Scan(&session.ID, &session.AccessToken, &session.Scope, &createdAt, &expiresAt); err != nil {
		return sessions.Session{}, err
	}
	session.CreatedAt = fromMillis(createdAt)
	session.ExpiresAt = fromMillis(expiresAt)
	return session, nil
}

func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
