package sessionstore

import (
	"github.com/jrsteele09/acc-issues/internal/config"
	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/sessions"
	"github.com/jrsteele09/acc-issues/sessions/filerepo"
	"github.com/jrsteele09/acc-issues/sessions/sqliterepo"
	"github.com/rs/zerolog/log"
)

// Open returns the configured session store and a function releasing it.
func Open(c config.StorageConfig) (sessions.Repo, func() error, error) {
	switch c.GetSessionStore() {
	case config.SessionStoreSQLite:
		repo, err := sqliterepo.Open(c.GetSessionsDB())
		if err != nil {
			return nil, nil, apperrors.Wrapf(err, "[sessionstore Open] %s", c.GetSessionsDB())
		}
		log.Debug().Str("path", c.GetSessionsDB()).Msg("Using SQLite session store")
		return repo, repo.Close, nil
	case config.SessionStoreFile, "":
		repo := filerepo.New(c.GetSessionsFile())
		log.Debug().Str("path", repo.Path()).Msg("Using file session store")
		return repo, func() error { return nil }, nil
	default:
		return nil, nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "[sessionstore Open] unknown session store %q", c.GetSessionStore())
	}
}
