package errors

import (
	"errors"
	"fmt"
)

// Common error types for the OAuth server and the issue client
var (
	// Configuration errors
	ErrMissingCredentials = errors.New("AUTODESK_CLIENT_ID and AUTODESK_CLIENT_SECRET must be set")
	ErrInvalidConfig      = errors.New("invalid configuration")

	// Session errors
	ErrNoSessions      = errors.New("no active sessions")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrMissingScopes   = errors.New("missing required scopes")

	// Authorization flow errors
	ErrInvalidState = errors.New("invalid state token")

	// Provider errors
	ErrProjectNotAccessible = errors.New("project not accessible")
	ErrAllEndpointsFailed   = errors.New("all endpoints failed")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
