package acc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
	"github.com/jrsteele09/acc-issues/issues"
	"github.com/rs/zerolog/log"
)

// ListIssues fetches the first page of issues. Callers cannot tell "no
// issues" from "every endpoint failed" except through the log.
func (c *Client) ListIssues(ctx context.Context, projectID string) []issues.Issue {
	page, _, err := c.ListIssuesPage(ctx, projectID, c.caps.IssuePageSize, 0)
	if err != nil {
		return []issues.Issue{}
	}
	return page.Issues
}

// ListIssuesPage tries each issue endpoint in priority order and parses the
// first 200 response. It returns the endpoint that answered so later pages
// can be fetched from the same API generation.
func (c *Client) ListIssuesPage(ctx context.Context, projectID string, limit, offset int) (issues.Page, string, error) {
	cleanID := CleanProjectID(projectID)
	params := pageParams(limit, offset)

	log.Info().Str("project", cleanID).Msg("Listing issues")
	for _, tmpl := range c.caps.IssueListing {
		endpoint := c.caps.expand(tmpl, cleanID, "")
		log.Info().Str("endpoint", endpoint).Msg("Trying endpoint")

		body, err := c.tryEndpoint(ctx, endpoint, params)
		switch {
		case err == nil && !json.Valid(body):
			log.Warn().Str("endpoint", endpoint).Msg("Unexpected response format from endpoint")
		case err == nil:
			return issues.ParsePage(body), endpoint, nil
		case IsStatus(err, http.StatusNotFound):
			log.Warn().Str("endpoint", endpoint).Msg("Project or endpoint not found")
		case IsStatus(err, http.StatusForbidden):
			log.Warn().Str("endpoint", endpoint).Msg("Access denied for endpoint")
		default:
			log.Err(err).Str("endpoint", endpoint).Msg("Error with endpoint")
		}
	}

	log.Error().Str("project", cleanID).Msg("All endpoints failed.")
	return issues.Page{Issues: []issues.Issue{}}, "", apperrors.ErrAllEndpointsFailed
}

// ListAllIssues follows offset pagination on whichever endpoint answered the
// first page. It stops at a short or empty page, once the reported total is
// reached, when a page starts with the same issue as the previous one (the
// endpoint ignores offset), or after maxIssuePages pages. A failure after the
// first page returns what was collected.
func (c *Client) ListAllIssues(ctx context.Context, projectID string) []issues.Issue {
	limit := c.caps.IssuePageSize
	page, endpoint, err := c.ListIssuesPage(ctx, projectID, limit, 0)
	if err != nil {
		return []issues.Issue{}
	}

	all := page.Issues
	offset := 0
	for pages := 1; ; pages++ {
		offset += limit
		if page.Returned < limit {
			break
		}
		if page.TotalResults != nil && offset >= *page.TotalResults {
			break
		}
		if pages >= maxIssuePages {
			log.Warn().Str("endpoint", endpoint).Int("pages", pages).Msg("Stopped paging: page limit reached")
			break
		}

		body, err := c.tryEndpoint(ctx, endpoint, pageParams(limit, offset))
		if err != nil {
			log.Err(err).Str("endpoint", endpoint).Int("offset", offset).Msg("Error fetching issue page")
			break
		}
		next := issues.ParsePage(body)
		if repeatsPage(page, next) {
			log.Warn().Str("endpoint", endpoint).Int("offset", offset).Msg("Stopped paging: endpoint ignored offset")
			break
		}
		page = next
		all = append(all, page.Issues...)
	}
	return all
}

// repeatsPage reports whether next starts with the same issue as prev.
func repeatsPage(prev, next issues.Page) bool {
	return len(prev.Issues) > 0 && len(next.Issues) > 0 && prev.Issues[0].ID == next.Issues[0].ID
}

// maxIssuePages bounds ListAllIssues for endpoints that never return a short page.
const maxIssuePages = 1000

func (c *Client) tryEndpoint(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.endpointTimeout)
	defer cancel()
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	return body, nil
}

func pageParams(limit, offset int) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	return params
}
