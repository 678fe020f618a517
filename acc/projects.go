package acc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// projectPrefix marks a project id in the data management and admin APIs.
// The issue APIs use the same id without it.
const projectPrefix = "b."

// NormalizeProjectID ensures exactly one "b." prefix. Applying it twice is the
// same as applying it once.
func NormalizeProjectID(projectID string) string {
	if strings.HasPrefix(projectID, projectPrefix) {
		return projectID
	}
	return projectPrefix + projectID
}

// CleanProjectID strips the "b." prefix used by the admin APIs.
func CleanProjectID(projectID string) string {
	return strings.TrimPrefix(projectID, projectPrefix)
}

// Hub is a JSON:API hub resource from the data management API.
type Hub struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		Name   string `json:"name"`
		Region string `json:"region"`
	} `json:"attributes"`
}

func (h Hub) Name() string {
	if h.Attributes.Name == "" {
		return "Unknown Hub"
	}
	return h.Attributes.Name
}

// Project is a JSON:API project resource from the data management API.
type Project struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Attributes ProjectAttributes `json:"attributes"`
}

type ProjectAttributes struct {
	Name             string  `json:"name"`
	Status           *string `json:"status"`
	Type             *string `json:"type"`
	CreatedDate      *string `json:"createdDate"`
	LastModifiedDate *string `json:"lastModifiedDate"`
}

func (p Project) Name() string {
	if p.Attributes.Name == "" {
		return "Unknown Project"
	}
	return p.Attributes.Name
}

type hubsResponse struct {
	Data []Hub `json:"data"`
}

type projectsResponse struct {
	Data []Project `json:"data"`
}

// ListHubs returns every hub the token can see.
func (c *Client) ListHubs(ctx context.Context) ([]Hub, error) {
	var resp hubsResponse
	if err := c.getJSON(ctx, c.caps.expand(c.caps.Hubs, "", ""), nil, &resp); err != nil {
		return nil, fmt.Errorf("acc.ListHubs: %w", err)
	}
	return resp.Data, nil
}

// ListHubProjects returns the projects in one hub.
func (c *Client) ListHubProjects(ctx context.Context, hubID string) ([]Project, error) {
	var resp projectsResponse
	if err := c.getJSON(ctx, c.caps.expand(c.caps.HubProjects, "", hubID), nil, &resp); err != nil {
		return nil, fmt.Errorf("acc.ListHubProjects %s: %w", hubID, err)
	}
	return resp.Data, nil
}

// VerifyProject reports whether the project exists and is accessible. The
// direct lookup endpoints are tried first; if none answers, every hub's
// projects are listed to out and searched for an exact id match. Provider
// errors are logged and count as "not found". Nothing is cached.
func (c *Client) VerifyProject(ctx context.Context, projectID string, out io.Writer) bool {
	projectID = NormalizeProjectID(projectID)

	for _, tmpl := range c.caps.ProjectLookup {
		endpoint := c.caps.expand(tmpl, projectID, "")
		log.Info().Str("endpoint", endpoint).Msg("Checking project endpoint")

		_, err := c.get(ctx, endpoint, nil)
		switch {
		case err == nil:
			fmt.Fprintf(out, "\nProject found at %s\n", endpoint)
			return true
		case IsStatus(err, http.StatusNotFound):
			log.Warn().Str("endpoint", endpoint).Msg("Project not found")
		case IsStatus(err, http.StatusForbidden):
			log.Warn().Str("endpoint", endpoint).Msg("Access denied")
		default:
			log.Err(err).Str("endpoint", endpoint).Msg("Error checking project endpoint")
		}
	}

	return c.findProjectInHubs(ctx, projectID, out)
}

func (c *Client) findProjectInHubs(ctx context.Context, projectID string, out io.Writer) bool {
	hubs, err := c.ListHubs(ctx)
	if err != nil {
		log.Err(err).Msg("Error getting hubs")
		return false
	}

	fmt.Fprintln(out, "\nAvailable hubs:")
	for _, hub := range hubs {
		fmt.Fprintf(out, "- %s (ID: %s)\n", hub.Name(), hub.ID)

		projects, err := c.ListHubProjects(ctx, hub.ID)
		if err != nil {
			log.Err(err).Str("hub", hub.ID).Msg("Error getting projects for hub")
			continue
		}

		fmt.Fprintln(out, "  Projects:")
		for _, project := range projects {
			fmt.Fprintf(out, "  - %s (ID: %s)\n", project.Name(), project.ID)
			if project.ID == projectID {
				fmt.Fprintf(out, "\nFound matching project: %s\n", project.Name())
				return true
			}
		}
	}
	return false
}
