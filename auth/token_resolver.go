package auth

import (
	"time"

	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/oauthmodel"
	"github.com/jrsteele09/acc-issues/sessions"
	"github.com/rs/zerolog/log"
)

// TokenResolver picks the access token the issue client should use: the one
// from the most recently created session, provided it is unexpired and carries
// every required scope. There is no refresh flow; any failure means the user
// has to log in again.
type TokenResolver struct {
	repo sessions.Repo
	now  func() time.Time
}

func NewTokenResolver(repo sessions.Repo, now func() time.Time) *TokenResolver {
	if now == nil {
		now = time.Now
	}
	return &TokenResolver{repo: repo, now: now}
}

// Session returns the newest usable session.
func (r *TokenResolver) Session() (sessions.Session, error) {
	store := r.repo.Load()
	if len(store) == 0 {
		return sessions.Session{}, apperrors.ErrNoSessions
	}

	session, ok := store.Latest()
	if !ok {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}

	if session.Expired(r.now()) {
		log.Debug().Str("session", session.ID).Time("expires_at", session.ExpiresAt).Msg("Latest session has expired")
		return sessions.Session{}, apperrors.ErrSessionExpired
	}

	if missing := oauthmodel.MissingRequired(session.Scope); len(missing) > 0 {
		return sessions.Session{}, &MissingScopesError{Missing: missing}
	}

	return session, nil
}

// AccessToken returns the bearer token of the newest usable session.
func (r *TokenResolver) AccessToken() (string, error) {
	session, err := r.Session()
	if err != nil {
		return "", err
	}
	return session.AccessToken, nil
}
