package oauthmodel

import (
	"fmt"
	"strings"
)

// requiredScopes is the full set requested at login and needed before the
// issue client calls any data or admin API. Order is significant for reporting.
var requiredScopes = []Scope{
	ScopeDataRead,
	ScopeDataWrite,
	ScopeAccountRead,
	ScopeAccountWrite,
	ScopeUserRead,
	ScopeUserWrite,
}

// RequiredScopes returns the required scopes as strings, in request order.
func RequiredScopes() []string {
	out := make([]string, len(requiredScopes))
	for i, s := range requiredScopes {
		out[i] = string(s)
	}
	return out
}

// RequiredScopeString is the space-delimited form sent to the authorize endpoint
// and used as the fallback when the token response omits "scope".
func RequiredScopeString() string {
	return strings.Join(RequiredScopes(), " ")
}

// ScopeSet is an unordered set of granted scopes.
type ScopeSet map[string]struct{}

// ParseScopes splits a space-delimited scope string on any whitespace.
func ParseScopes(scope string) ScopeSet {
	set := make(ScopeSet)
	for _, s := range strings.Fields(scope) {
		set[s] = struct{}{}
	}
	return set
}

func (s ScopeSet) Has(scope string) bool {
	_, ok := s[scope]
	return ok
}

// Missing returns the entries of want not present in the set, preserving want's order.
func (s ScopeSet) Missing(want []string) []string {
	var missing []string
	for _, w := range want {
		if !s.Has(w) {
			missing = append(missing, w)
		}
	}
	return missing
}

// MissingRequired reports which required scopes the scope string lacks.
func MissingRequired(scope string) []string {
	return ParseScopes(scope).Missing(RequiredScopes())
}

// ValidateScope rejects scope strings containing control characters
func ValidateScope(scope string) error {
	if strings.ContainsAny(scope, "\r\n\t\x00") {
		return fmt.Errorf("%w: scope contains invalid characters", ErrInvalidScope)
	}
	return nil
}
