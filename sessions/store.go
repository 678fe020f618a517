package sessions

import (
	"encoding/json"
)

// Store maps session ID to session. It is the whole persisted document.
type Store map[string]Session

func (s Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]Session(s))
}

func (s *Store) UnmarshalJSON(data []byte) error {
	raw := make(map[string]Session)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Store, len(raw))
	for id, session := range raw {
		session.ID = id
		out[id] = session
	}
	*s = out
	return nil
}

// Put inserts or replaces a session under its ID.
func (s Store) Put(session Session) {
	s[session.ID] = session
}

// Latest returns the session with the greatest CreatedAt. Sessions without a
// creation time are never selected. Equal creation times resolve to the
// lexicographically greatest ID so the choice never depends on map order.
func (s Store) Latest() (Session, bool) {
	var (
		latest Session
		found  bool
	)
	for id, session := range s {
		if session.CreatedAt.IsZero() || session.CreatedAt.Unix() <= 0 {
			continue
		}
		session.ID = id
		switch {
		case !found:
		case session.CreatedAt.After(latest.CreatedAt):
		case session.CreatedAt.Equal(latest.CreatedAt) && id > latest.ID:
		default:
			continue
		}
		latest = session
		found = true
	}
	return latest, found
}
