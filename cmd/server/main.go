package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/acc-issues/internal/config"
	"github.com/jrsteele09/acc-issues/internal/logging"
	"github.com/jrsteele09/acc-issues/internal/sessionstore"
	"github.com/jrsteele09/acc-issues/server"
	"github.com/jrsteele09/acc-issues/server/staterepo"
	"github.com/rs/zerolog/log"
)

func main() {
	c, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	logging.Setup(c.GetLogLevel(), c.GetEnv())

	if err := run(c); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	displayAppname(c.GetAppName())
	log.Info().
		Str("client_id", truncateID(c.GetClientID())).
		Str("redirect_uri", c.GetRedirectURI()).
		Str("state_mode", c.GetStateMode()).
		Msg("OAuth configuration")

	sessionRepo, closeSessions, err := sessionstore.Open(c)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSessions(); err != nil {
			log.Err(err).Msg("Failed to close session store")
		}
	}()

	stateRepo, err := newStateRepo(c)
	if err != nil {
		return err
	}

	endpoint, err := server.ResolveEndpoint(context.Background(), c)
	if err != nil {
		return err
	}

	handler, err := server.New(c, endpoint, stateRepo, sessionRepo)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: c.GetAddr(), Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(srv) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func newStateRepo(c config.OAuthConfig) (staterepo.Repo, error) {
	if c.GetStateMode() == config.StateModeMemory {
		return staterepo.NewInMemoryRepo(c.GetStateTTL(), c.GetStateLength()), nil
	}
	return staterepo.NewSignedRepo(c.GetClientSecret(), c.GetStateTTL())
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

// truncateID keeps enough of the client id to recognise it in logs
func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
