package staterepo

import (
	"sync"
	"time"

	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
// Tokens do not survive a restart.
type InMemoryRepo struct {
	mu         sync.Mutex
	states     map[string]time.Time // token -> issued at
	ttl        time.Duration
	tokenBytes int
	now        func() time.Time
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory state repository
func NewInMemoryRepo(ttl time.Duration, tokenBytes int, opts ...Option) *InMemoryRepo {
	o := applyOptions(opts)
	return &InMemoryRepo{
		states:     make(map[string]time.Time),
		ttl:        ttl,
		tokenBytes: tokenBytes,
		now:        o.now,
	}
}

// Issue prunes stale tokens and tracks a fresh one
func (r *InMemoryRepo) Issue() (string, error) {
	token, err := generateRandomString(r.tokenBytes)
	if err != nil {
		return "", apperrors.Wrapf(err, "[staterepo InMemoryRepo.Issue]")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	r.states[token] = r.now()
	return token, nil
}

func (r *InMemoryRepo) Consume(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	issuedAt, ok := r.states[token]
	if !ok {
		return apperrors.ErrInvalidState
	}
	delete(r.states, token)

	if r.now().Sub(issuedAt) > r.ttl {
		return apperrors.ErrInvalidState
	}
	return nil
}

func (r *InMemoryRepo) Prune() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
}

// Len returns the number of tracked tokens
func (r *InMemoryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func (r *InMemoryRepo) pruneLocked() {
	cutoff := r.now().Add(-r.ttl)
	for token, issuedAt := range r.states {
		if issuedAt.Before(cutoff) {
			delete(r.states, token)
		}
	}
}
