package auth

import (
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
)

// MissingScopesError lists the required scopes a session's token lacks.
type MissingScopesError struct {
	Missing []string
}

func (e *MissingScopesError) Error() string {
	return fmt.Sprintf("%s: %s", apperrors.ErrMissingScopes, strings.Join(e.Missing, ", "))
}

func (e *MissingScopesError) Unwrap() error {
	return apperrors.ErrMissingScopes
}
