package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/acc-issues/oauthmodel"
	"github.com/jrsteele09/acc-issues/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// OAuthCallbackHandler completes the flow: it consumes the state token,
// exchanges the code once and stores the resulting session.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		state := query.Get("state")
		code := query.Get("code")

		// Check for authorization errors
		if errorParam := query.Get("error"); errorParam != "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   "Authorization failed",
				Details: strings.TrimSpace(errorParam + " " + query.Get("error_description")),
			})
			return
		}

		if code == "" || state == "" {
			writeJSONError(w, http.StatusBadRequest, "Missing code or state parameter")
			return
		}

		// State is consumed before the exchange so a replayed callback fails even if the exchange does
		if err := s.states.Consume(state); err != nil {
			log.Warn().Err(err).Msg("Callback with untracked state")
			writeJSONError(w, http.StatusBadRequest, "Invalid state token")
			return
		}

		oauth2Token, err := s.oauth.Exchange(r.Context(), code)
		if err != nil {
			s.writeExchangeError(w, err)
			return
		}

		now := s.now()
		token := tokenResponse(oauth2Token, s.oauth.Scopes)
		session := sessions.Session{
			ID:          uuid.NewString(),
			AccessToken: token.AccessToken,
			Scope:       token.Scope,
			CreatedAt:   now,
			ExpiresAt:   now.Add(s.tokenLifetime(token)),
		}

		if err := s.sessions.Upsert(session); err != nil {
			log.Err(err).Str("session", session.ID).Msg("Failed to store session")
			writeJSONError(w, http.StatusInternalServerError, "Failed to store session")
			return
		}
		log.Info().Str("session", session.ID).Time("expires_at", session.ExpiresAt).Msg("Session created")

		s.SetSessionCookie(w, session.ID, r)
		http.Redirect(w, r, RouteDashboard, http.StatusFound)
	}
}

func (s *Server) writeExchangeError(w http.ResponseWriter, err error) {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		log.Error().Int("status", retrieveErr.Response.StatusCode).Msg("Token exchange rejected")
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:   "Failed to obtain token",
			Status:  retrieveErr.Response.StatusCode,
			Details: string(retrieveErr.Body),
		})
		return
	}
	log.Err(err).Msg("Token exchange failed")
	writeJSON(w, http.StatusBadGateway, errorResponse{
		Error:   "Failed to obtain token",
		Details: err.Error(),
	})
}

func (s *Server) tokenLifetime(token oauthmodel.TokenResponse) time.Duration {
	if token.ExpiresIn > 0 {
		return time.Duration(token.ExpiresIn) * time.Second
	}
	return s.config.GetDefaultTokenExpiry()
}

// tokenResponse reads the raw token fields the oauth2 package does not expose
// directly. Values arrive as float64 from JSON bodies and as strings from
// form-encoded bodies. Only an absent scope falls back to the requested
// scopes; a returned scope is kept, even when empty, so a narrower grant is
// never widened.
func tokenResponse(t *oauth2.Token, requested []string) oauthmodel.TokenResponse {
	resp := oauthmodel.TokenResponse{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Scope:        strings.Join(requested, " "),
	}
	if scope, ok := t.Extra("scope").(string); ok {
		resp.Scope = strings.Join(strings.Fields(scope), " ")
		if err := oauthmodel.ValidateScope(resp.Scope); err != nil {
			log.Warn().Err(err).Str("scope", resp.Scope).Msg("Returned scope contains invalid characters")
		}
	}
	switch v := t.Extra("expires_in").(type) {
	case float64:
		resp.ExpiresIn = int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			resp.ExpiresIn = n
		}
	}
	return resp
}
