package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/acc-issues/acc"
	"github.com/jrsteele09/acc-issues/auth"
	"github.com/jrsteele09/acc-issues/internal/config"
	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/internal/logging"
	"github.com/jrsteele09/acc-issues/internal/sessionstore"
	"github.com/jrsteele09/acc-issues/issues"
	"github.com/jrsteele09/acc-issues/server"
	"github.com/rs/zerolog/log"
)

type options struct {
	projectID      string
	exportProjects bool
	allPages       bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	c, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	logging.Setup(c.GetLogLevel(), c.GetEnv())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, c, os.Stdout); err != nil {
		log.Debug().Err(err).Msg("Issue client failed")
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("issues", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.projectID, "project-id", "", "Project ID to list issues from")
	fs.BoolVar(&opts.exportProjects, "export-projects", false, "Export all accessible projects to JSON")
	fs.BoolVar(&opts.allPages, "all-pages", false, "Follow pagination and list every issue")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.projectID == "" && !opts.exportProjects {
		fmt.Fprintln(stderr, "--project-id is required unless --export-projects is set")
		fs.Usage()
		return options{}, apperrors.ErrInvalidConfig
	}
	return opts, nil
}

func run(ctx context.Context, opts options, c config.Config, out io.Writer) error {
	repo, closeSessions, err := sessionstore.Open(c)
	if err != nil {
		fmt.Fprintf(out, "Error opening session store: %s\n", err)
		return err
	}
	defer closeSessions() //nolint:errcheck // read-only use

	token, err := auth.NewTokenResolver(repo, time.Now).AccessToken()
	if err != nil {
		fmt.Fprintln(out, authMessage(err, loginURL(c.GetRedirectURI())))
		fmt.Fprintln(out, "Failed to get access token")
		return err
	}

	caps, err := capabilities(c)
	if err != nil {
		fmt.Fprintf(out, "Error loading endpoint table: %s\n", err)
		return err
	}
	client := acc.New(ctx, token, caps, acc.WithEndpointTimeout(c.GetIssueEndpointTimeout()))

	if opts.exportProjects {
		if _, err := client.ExportProjects(ctx, c.GetExportFile(), out); err != nil {
			fmt.Fprintf(out, "Error exporting projects: %s\n", err)
			return err
		}
		return nil
	}

	displayAppname("ACC Issues", out)
	fmt.Fprintf(out, "\n=== Autodesk Construction Cloud Issues Lister ===\n\n")
	fmt.Fprintf(out, "Project ID: %s\n", opts.projectID)

	if !client.VerifyProject(ctx, opts.projectID, out) {
		fmt.Fprintln(out, "\nPlease check if the project ID is correct and you have access to it.")
		return apperrors.ErrProjectNotAccessible
	}

	var list []issues.Issue
	if opts.allPages {
		list = client.ListAllIssues(ctx, opts.projectID)
	} else {
		list = client.ListIssues(ctx, opts.projectID)
	}
	return issues.Print(out, list)
}

func capabilities(c config.ProviderConfig) (acc.Capabilities, error) {
	caps := acc.DefaultCapabilities()
	if path := c.GetCapabilitiesFile(); path != "" {
		loaded, err := acc.LoadCapabilities(path)
		if err != nil {
			return acc.Capabilities{}, err
		}
		caps = loaded
	}
	return caps.WithBaseURL(c.GetAPIBaseURL()), nil
}

// authMessage turns a token resolution failure into the instruction shown to the user.
func authMessage(err error, login string) string {
	var scopesErr *auth.MissingScopesError
	switch {
	case errors.Is(err, apperrors.ErrNoSessions):
		return fmt.Sprintf("No active sessions found. Please visit %s to authenticate.", login)
	case errors.Is(err, apperrors.ErrSessionNotFound):
		return "No valid session found."
	case errors.Is(err, apperrors.ErrSessionExpired):
		return fmt.Sprintf("Session has expired. Please visit %s to authenticate.", login)
	case errors.As(err, &scopesErr):
		return fmt.Sprintf("Warning: Missing required scopes: %s\nPlease visit %s to authenticate with all required scopes.",
			strings.Join(scopesErr.Missing, ", "), login)
	default:
		return fmt.Sprintf("Error reading sessions: %s", err)
	}
}

// loginURL points at the auth server's login route on the host serving the redirect URI.
func loginURL(redirectURI string) string {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Host == "" {
		return "http://127.0.0.1:8000" + server.RouteLogin
	}
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: server.RouteLogin}).String()
}

func displayAppname(appname string, out io.Writer) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(out, myFigure.String())
}
