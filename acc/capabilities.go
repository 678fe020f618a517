package acc

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"gopkg.in/yaml.v3"
)

const (
	placeholderProjectID = "{project_id}"
	placeholderHubID     = "{hub_id}"
)

// Capabilities is the provider capability table: which URL templates to try,
// in priority order, for each operation. The provider exposes the same data
// under several API generations, so lookups walk a list until one answers.
// Templates starting with "/" are resolved against BaseURL.
type Capabilities struct {
	Version string `yaml:"version"`
	BaseURL string `yaml:"base_url"`

	Hubs         string `yaml:"hubs"`
	HubProjects  string `yaml:"hub_projects"`  // {hub_id}
	AdminProject string `yaml:"admin_project"` // {project_id}, "b." prefixed

	// ProjectLookup is tried with the "b." prefixed project id
	ProjectLookup []string `yaml:"project_lookup"`

	// IssueListing is tried with the bare project id
	IssueListing []string `yaml:"issue_listing"`

	IssuePageSize int `yaml:"issue_page_size"`
}

// DefaultCapabilities returns the built-in table.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		Version:      "2024-06",
		BaseURL:      "https://developer.api.autodesk.com",
		Hubs:         "/project/v1/hubs",
		HubProjects:  "/project/v1/hubs/{hub_id}/projects",
		AdminProject: "/bim360/admin/v1/projects/{project_id}",
		ProjectLookup: []string{
			"/bim360/admin/v1/projects/{project_id}",
			"/construction/admin/v1/projects/{project_id}",
			"/construction/issues/v1/projects/{project_id}",
		},
		IssueListing: []string{
			"/construction/issues/v1/projects/{project_id}/issues", // ACC issues
			"/issues/v1/containers/{project_id}/quality-issues",    // quality issues
			"/bim360/issues/v1/containers/{project_id}/issues",     // BIM 360 issues
			"/construction/v1/projects/{project_id}/issues",        // construction issues
			"/field/issues/v1/projects/{project_id}/issues",        // field issues
			"/acc/v1/projects/{project_id}/issues",                 // ACC v1 issues
		},
		IssuePageSize: 100,
	}
}

// LoadCapabilities reads a YAML capability table. Fields left out of the file
// keep their built-in values.
func LoadCapabilities(path string) (Capabilities, error) {
	caps := DefaultCapabilities()

	data, err := os.ReadFile(path)
	if err != nil {
		return Capabilities{}, fmt.Errorf("[acc LoadCapabilities] read %s: %w", path, err)
	}
	var fromFile Capabilities
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return Capabilities{}, fmt.Errorf("[acc LoadCapabilities] parse %s: %w", path, err)
	}

	caps.merge(fromFile)
	if err := caps.Validate(); err != nil {
		return Capabilities{}, err
	}
	return caps, nil
}

func (c *Capabilities) merge(o Capabilities) {
	if o.Version != "" {
		c.Version = o.Version
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Hubs != "" {
		c.Hubs = o.Hubs
	}
	if o.HubProjects != "" {
		c.HubProjects = o.HubProjects
	}
	if o.AdminProject != "" {
		c.AdminProject = o.AdminProject
	}
	if len(o.ProjectLookup) > 0 {
		c.ProjectLookup = o.ProjectLookup
	}
	if len(o.IssueListing) > 0 {
		c.IssueListing = o.IssueListing
	}
	if o.IssuePageSize > 0 {
		c.IssuePageSize = o.IssuePageSize
	}
}

// WithBaseURL returns a copy resolving relative templates against baseURL.
func (c Capabilities) WithBaseURL(baseURL string) Capabilities {
	if baseURL != "" {
		c.BaseURL = baseURL
	}
	return c
}

func (c Capabilities) Validate() error {
	if len(c.ProjectLookup) == 0 {
		return fmt.Errorf("%w: capability table has no project_lookup endpoints", apperrors.ErrInvalidConfig)
	}
	if len(c.IssueListing) == 0 {
		return fmt.Errorf("%w: capability table has no issue_listing endpoints", apperrors.ErrInvalidConfig)
	}
	if c.Hubs == "" || c.HubProjects == "" || c.AdminProject == "" {
		return fmt.Errorf("%w: capability table is missing hub or admin endpoints", apperrors.ErrInvalidConfig)
	}
	if c.IssuePageSize <= 0 {
		return fmt.Errorf("%w: issue_page_size must be positive", apperrors.ErrInvalidConfig)
	}
	for _, tmpl := range append(append([]string{}, c.ProjectLookup...), c.IssueListing...) {
		if !strings.Contains(tmpl, placeholderProjectID) {
			return fmt.Errorf("%w: endpoint %q has no %s placeholder", apperrors.ErrInvalidConfig, tmpl, placeholderProjectID)
		}
	}
	return nil
}

// expand fills the template placeholders and resolves it against BaseURL.
func (c Capabilities) expand(tmpl string, projectID, hubID string) string {
	out := strings.ReplaceAll(tmpl, placeholderProjectID, url.PathEscape(projectID))
	out = strings.ReplaceAll(out, placeholderHubID, url.PathEscape(hubID))
	if strings.HasPrefix(out, "/") {
		return strings.TrimRight(c.BaseURL, "/") + out
	}
	return out
}
