package issues

import (
	"encoding/json"
	"sort"

	"github.com/rs/zerolog/log"
)

// resultKeys are the keys the provider has been seen to put the issue array
// under, in the order they are tried.
var resultKeys = []string{"results", "data", "issues"}

// Page is one parsed response: the issues that decoded cleanly plus the
// provider's pagination hints when present.
type Page struct {
	Issues []Issue

	// Returned is the number of elements in the response array, including
	// elements that failed to decode.
	Returned int

	// TotalResults is pagination.totalResults, when the provider reports it.
	TotalResults *int
}

type pagination struct {
	Limit        *int `json:"limit"`
	Offset       *int `json:"offset"`
	TotalResults *int `json:"totalResults"`
}

// Parse locates the issue array in a provider response body and decodes each
// element. Unrecognised shapes yield an empty list; elements that fail to
// decode are logged and skipped.
func Parse(body []byte) []Issue {
	return ParsePage(body).Issues
}

func ParsePage(body []byte) Page {
	page := Page{Issues: []Issue{}}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		log.Warn().Str("body", truncate(string(body), 500)).Msg("Unexpected response format: body is not a JSON object")
		return page
	}
	log.Debug().Strs("keys", keysOf(data)).Msg("Response data structure")

	var results []json.RawMessage
	found := false
	for _, key := range resultKeys {
		raw, ok := data[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &results); err != nil {
			log.Warn().Str("key", key).Msg("Unexpected response format: issue list is not an array")
			return page
		}
		found = true
		break
	}
	if !found {
		log.Warn().Strs("keys", keysOf(data)).Str("body", truncate(string(body), 500)).Msg("Unexpected response format")
		return page
	}

	log.Info().Int("count", len(results)).Msg("Found issues in the response")
	page.Returned = len(results)

	for _, element := range results {
		var issue Issue
		if err := json.Unmarshal(element, &issue); err != nil {
			log.Err(err).RawJSON("issue", compactJSON(element)).Msg("Error parsing issue")
			continue
		}
		page.Issues = append(page.Issues, issue)
	}

	if raw, ok := data["pagination"]; ok {
		var p pagination
		if err := json.Unmarshal(raw, &p); err == nil {
			page.TotalResults = p.TotalResults
		}
	}
	return page
}

func keysOf(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// compactJSON returns element unchanged when it is valid JSON, otherwise a
// quoted string so it can be logged as a raw JSON field.
func compactJSON(element json.RawMessage) []byte {
	if json.Valid(element) {
		return element
	}
	quoted, _ := json.Marshal(string(element))
	return quoted
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
