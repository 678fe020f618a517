package repofakes

import (
	"errors"
	"sync"

	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type FakeSessionRepo struct {
	sessions sessions.Store
	lock     sync.RWMutex

	// SaveErr, when set, is returned by Save and Upsert
	SaveErr error
}

func NewFakeSessionRepo(initial ...sessions.Session) *FakeSessionRepo {
	r := &FakeSessionRepo{sessions: sessions.Store{}}
	for _, s := range initial {
		r.sessions.Put(s)
	}
	return r
}

func (sr *FakeSessionRepo) Load() sessions.Store {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	out := make(sessions.Store, len(sr.sessions))
	for id, s := range sr.sessions {
		out[id] = s
	}
	return out
}

func (sr *FakeSessionRepo) Save(store sessions.Store) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.SaveErr != nil {
		return sr.SaveErr
	}
	sr.sessions = sessions.Store{}
	for id, s := range store {
		s.ID = id
		sr.sessions[id] = s
	}
	return nil
}

func (sr *FakeSessionRepo) Upsert(session sessions.Session) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	if sr.SaveErr != nil {
		return sr.SaveErr
	}
	if session.ID == "" {
		return errors.New("sessionID is required")
	}
	sr.sessions.Put(session)
	return nil
}

func (sr *FakeSessionRepo) Get(sessionID string) (sessions.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	s, ok := sr.sessions[sessionID]
	if !ok {
		return sessions.Session{}, apperrors.ErrSessionNotFound
	}
	return s, nil
}
