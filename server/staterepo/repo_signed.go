package staterepo

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/rs/zerolog/log"
)

// signedIDBytes is the entropy of each token's jti.
const signedIDBytes = 32

// SignedRepo issues self-contained HS256 state tokens, so a login started
// before a restart can still complete. Only the ids of consumed tokens are
// held in memory, and only until the token would have expired anyway.
type SignedRepo struct {
	signer Signer
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	consumed map[string]time.Time // jti -> exp
}

var _ Repo = (*SignedRepo)(nil)

func NewSignedRepo(secret string, ttl time.Duration, opts ...Option) (*SignedRepo, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: state signing secret is empty", apperrors.ErrInvalidConfig)
	}
	o := applyOptions(opts)
	return &SignedRepo{
		signer:   NewHMACSigner(secret),
		ttl:      ttl,
		now:      o.now,
		consumed: make(map[string]time.Time),
	}, nil
}

func (r *SignedRepo) Issue() (string, error) {
	r.Prune()

	id, err := generateRandomString(signedIDBytes)
	if err != nil {
		return "", apperrors.Wrapf(err, "[staterepo SignedRepo.Issue] generate state id")
	}

	now := r.now()
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(r.ttl)),
	}
	signed, err := r.signer.Sign(claims)
	if err != nil {
		return "", apperrors.Wrapf(err, "[staterepo SignedRepo.Issue] sign state")
	}
	return signed, nil
}

func (r *SignedRepo) Consume(token string) error {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, r.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{r.signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(r.now),
	)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			log.Warn().Err(err).Msg("Rejected state token")
		}
		return apperrors.ErrInvalidState
	}
	if claims.ID == "" {
		return apperrors.ErrInvalidState
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, used := r.consumed[claims.ID]; used {
		return apperrors.ErrInvalidState
	}
	r.consumed[claims.ID] = claims.ExpiresAt.Time
	return nil
}

// Prune forgets consumed ids whose tokens have expired; those tokens are
// rejected on expiry alone.
func (r *SignedRepo) Prune() {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, exp := range r.consumed {
		if exp.Before(now) {
			delete(r.consumed, id)
		}
	}
}
