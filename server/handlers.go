package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "%s server\n", s.appName)
	}
}

// LoginHandler starts the authorization-code flow: it issues a state token and
// redirects the browser to the provider's consent page.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.states.Issue()
		if err != nil {
			log.Err(err).Msg("Failed to issue state token")
			writeJSONError(w, http.StatusInternalServerError, "Failed to start login")
			return
		}
		http.Redirect(w, r, s.oauth.AuthCodeURL(state), http.StatusFound)
	}
}

// DashboardHandler is a placeholder landing page. Every visitor is sent back
// to the index; a known session cookie is only logged.
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err == nil && cookie.Value != "" {
			if session, err := s.sessions.Get(cookie.Value); err == nil {
				log.Info().Str("session", session.ID).Time("expires_at", session.ExpiresAt).Msg("Dashboard visit")
			} else {
				log.Debug().Err(err).Msg("Unknown dashboard session")
			}
		}
		http.Redirect(w, r, RouteIndex, http.StatusFound)
	}
}
