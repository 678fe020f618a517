package staterepo

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// Repo tracks the CSRF state tokens handed out at login. A token is valid for
// exactly one callback within its TTL.
type Repo interface {
	// Issue creates and tracks a new state token
	Issue() (string, error)

	// Consume validates and forgets a token. Unknown, expired, forged or
	// already-used tokens return ErrInvalidState.
	Consume(token string) error

	// Prune drops tracking data older than the TTL
	Prune()
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// generateRandomString creates a random base64url string from length bytes
func generateRandomString(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
