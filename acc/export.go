package acc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jrsteele09/acc-issues/internal/utils"
	"github.com/rs/zerolog/log"
)

// AdminProject is the subset of the admin API project record used by the export.
type AdminProject struct {
	Status           *string        `json:"status"`
	Type             *string        `json:"type"`
	ProjectNumber    *string        `json:"projectNumber"`
	JobNumber        *string        `json:"jobNumber"`
	StartDate        *string        `json:"startDate"`
	EndDate          *string        `json:"endDate"`
	Timezone         *string        `json:"timezone"`
	Language         *string        `json:"language"`
	ConstructionType *string        `json:"constructionType"`
	ContractType     *string        `json:"contractType"`
	Value            any            `json:"value"`
	Currency         *string        `json:"currency"`
	Address          map[string]any `json:"address"`
	Template         *struct {
		IsTemplate bool `json:"isTemplate"`
	} `json:"template"`
}

func (a AdminProject) IsTemplate() bool {
	return a.Template != nil && a.Template.IsTemplate
}

// GetAdminProject fetches admin metadata for a "b." prefixed project id.
func (c *Client) GetAdminProject(ctx context.Context, projectID string) (*AdminProject, error) {
	var admin AdminProject
	if err := c.getJSON(ctx, c.caps.expand(c.caps.AdminProject, projectID, ""), nil, &admin); err != nil {
		return nil, fmt.Errorf("acc.GetAdminProject %s: %w", projectID, err)
	}
	return &admin, nil
}

// ProjectExport is one flattened row of the export file: hub and data
// management attributes, overridden or extended by admin API values.
type ProjectExport struct {
	HubID         string  `json:"hub_id"`
	HubName       string  `json:"hub_name"`
	ProjectID     string  `json:"project_id"`
	ProjectName   string  `json:"project_name"`
	ProjectStatus string  `json:"project_status"`
	ProjectType   string  `json:"project_type"`
	CreatedAt     *string `json:"created_at"`
	UpdatedAt     *string `json:"updated_at"`

	// nil when the project has no admin record; its keys are then left out
	*AdminFields
}

// AdminFields are written for every project with an admin record, as null
// (or {} for the address) when the admin API has no value.
type AdminFields struct {
	ProjectNumber    *string        `json:"project_number"`
	JobNumber        *string        `json:"job_number"`
	StartDate        *string        `json:"start_date"`
	EndDate          *string        `json:"end_date"`
	Timezone         *string        `json:"timezone"`
	Language         *string        `json:"language"`
	ConstructionType *string        `json:"construction_type"`
	ContractType     *string        `json:"contract_type"`
	Value            any            `json:"value"`
	Currency         *string        `json:"currency"`
	Address          map[string]any `json:"address"`
}

type exportDocument struct {
	Projects []ProjectExport `json:"projects"`
}

func newProjectExport(hub Hub, project Project) ProjectExport {
	return ProjectExport{
		HubID:         hub.ID,
		HubName:       hub.Name(),
		ProjectID:     project.ID,
		ProjectName:   project.Name(),
		ProjectStatus: utils.ValueOr(project.Attributes.Status, "unknown"),
		ProjectType:   utils.ValueOr(project.Attributes.Type, "unknown"),
		CreatedAt:     project.Attributes.CreatedDate,
		UpdatedAt:     project.Attributes.LastModifiedDate,
	}
}

// applyAdmin overlays admin values; admin wins wherever it has a value.
func (p *ProjectExport) applyAdmin(a *AdminProject) {
	p.ProjectStatus = utils.ValueOr(a.Status, p.ProjectStatus)
	p.ProjectType = utils.ValueOr(a.Type, p.ProjectType)

	address := a.Address
	if address == nil {
		address = map[string]any{}
	}
	p.AdminFields = &AdminFields{
		ProjectNumber:    a.ProjectNumber,
		JobNumber:        a.JobNumber,
		StartDate:        a.StartDate,
		EndDate:          a.EndDate,
		Timezone:         a.Timezone,
		Language:         a.Language,
		ConstructionType: a.ConstructionType,
		ContractType:     a.ContractType,
		Value:            a.Value,
		Currency:         a.Currency,
		Address:          address,
	}
}

// CollectProjects walks every hub and project. Template projects are skipped.
// A failing hub or project is logged and skipped; the rest are still returned.
func (c *Client) CollectProjects(ctx context.Context, out io.Writer) ([]ProjectExport, error) {
	fmt.Fprintln(out, "Fetching hubs...")
	hubs, err := c.ListHubs(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Found %d hubs\n", len(hubs))

	all := make([]ProjectExport, 0)
	for _, hub := range hubs {
		fmt.Fprintf(out, "\nProcessing hub: %s\n", hub.Name())

		projects, err := c.ListHubProjects(ctx, hub.ID)
		if err != nil {
			log.Err(err).Str("hub", hub.Name()).Msg("Error fetching projects for hub")
			continue
		}
		fmt.Fprintf(out, "Found %d projects in hub %s\n", len(projects), hub.Name())

		for _, project := range projects {
			record := newProjectExport(hub, project)

			admin, err := c.GetAdminProject(ctx, project.ID)
			var httpErr *HTTPError
			switch {
			case err == nil:
				if admin.IsTemplate() {
					fmt.Fprintf(out, "Skipping template project: %s\n", record.ProjectName)
					continue
				}
				record.applyAdmin(admin)
			case asHTTPError(err, &httpErr):
				log.Debug().Int("status", httpErr.StatusCode).Str("project", project.ID).Msg("No admin data for project")
			default:
				log.Err(err).Str("project", project.ID).Msg("Error getting admin data for project")
				continue
			}

			all = append(all, record)
			fmt.Fprintf(out, "- %s (ID: %s)\n", record.ProjectName, record.ProjectID)
		}
	}
	return all, nil
}

// ExportProjects collects every accessible project and writes them to path as
// {"projects": [...]}, overwriting the file. Nothing is written if the hub
// listing fails.
func (c *Client) ExportProjects(ctx context.Context, path string, out io.Writer) (int, error) {
	projects, err := c.CollectProjects(ctx, out)
	if err != nil {
		return 0, fmt.Errorf("acc.ExportProjects: %w", err)
	}

	data, err := json.MarshalIndent(exportDocument{Projects: projects}, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("acc.ExportProjects: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("acc.ExportProjects: write %s: %w", path, err)
	}

	fmt.Fprintf(out, "\nExported %d projects to %s\n", len(projects), path)
	return len(projects), nil
}
