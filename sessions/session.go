package sessions

import (
	"encoding/json"
	"math"
	"time"
)

// Session is one completed authentication: the provider's access token plus
// the metadata needed to decide whether it is still usable.
// Created by the auth server after a successful code exchange; read-only afterwards.
type Session struct {
	ID          string    // Unique session identifier (UUID), the key in the store
	AccessToken string    // Provider bearer token
	Scope       string    // Space-delimited granted scopes
	CreatedAt   time.Time // When the code exchange completed
	ExpiresAt   time.Time // CreatedAt + provider expires_in
}

// Expired reports whether the session's token has expired at now.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// sessionRecord is the persisted form. Timestamps are Unix epoch seconds so
// files written by earlier tooling stay readable.
type sessionRecord struct {
	AccessToken string  `json:"access_token"`
	Scope       string  `json:"scope"`
	CreatedAt   float64 `json:"created_at"`
	ExpiresAt   float64 `json:"expires_at"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionRecord{
		AccessToken: s.AccessToken,
		Scope:       s.Scope,
		CreatedAt:   toEpoch(s.CreatedAt),
		ExpiresAt:   toEpoch(s.ExpiresAt),
	})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	s.AccessToken = rec.AccessToken
	s.Scope = rec.Scope
	s.CreatedAt = FromEpoch(rec.CreatedAt)
	s.ExpiresAt = FromEpoch(rec.ExpiresAt)
	return nil
}

func toEpoch(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

// FromEpoch converts fractional Unix seconds to a time. Zero maps to the zero time.
func FromEpoch(secs float64) time.Time {
	if secs == 0 {
		return time.Time{}
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}
