package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/acc-issues/internal/config"
	"github.com/jrsteele09/acc-issues/server/staterepo"
	"github.com/jrsteele09/acc-issues/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	appName  string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	oauth    *oauth2.Config
	states   staterepo.Repo
	sessions sessions.Repo
	now      func() time.Time
}

type Option func(*Server)

// WithClock replaces time.Now for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds the auth server. endpoint is the provider's authorize/token pair,
// usually from ResolveEndpoint.
func New(c config.Config, endpoint oauth2.Endpoint, stateRepo staterepo.Repo, sessionRepo sessions.Repo, opts ...Option) (*Server, error) {
	if stateRepo == nil || sessionRepo == nil {
		return nil, errors.New("[Server New] state and session repositories are required")
	}

	s := &Server{
		env:     c.GetEnv(),
		appName: c.GetAppName(),
		mux:     http.NewServeMux(),
		config:  c,
		oauth: &oauth2.Config{
			ClientID:     c.GetClientID(),
			ClientSecret: c.GetClientSecret(),
			Endpoint:     endpoint,
			RedirectURL:  c.GetRedirectURI(),
			Scopes:       c.GetScopes(),
		},
		states:   stateRepo,
		sessions: sessionRepo,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
