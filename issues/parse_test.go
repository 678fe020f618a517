package issues_test

import (
	"bytes"
	"testing"

	"github.com/jrsteele09/acc-issues/issues"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestParse(t *testing.T) {
	t.Run("data key with minimal issue", func(t *testing.T) {
		got := issues.Parse([]byte(`{"data": [{"id":"1","title":"Leak"}]}`))
		require.Equal(t, []issues.Issue{{ID: "1", Title: "Leak"}}, got)
	})

	t.Run("results key takes priority", func(t *testing.T) {
		got := issues.Parse([]byte(`{
			"issues":  [{"id":"3","title":"c"}],
			"data":    [{"id":"2","title":"b"}],
			"results": [{"id":"1","title":"a"}]
		}`))
		require.Len(t, got, 1)
		require.Equal(t, "1", got[0].ID)
	})

	t.Run("data before issues", func(t *testing.T) {
		got := issues.Parse([]byte(`{"issues":[{"id":"3","title":"c"}],"data":[{"id":"2","title":"b"}]}`))
		require.Len(t, got, 1)
		require.Equal(t, "2", got[0].ID)
	})

	t.Run("issues key", func(t *testing.T) {
		got := issues.Parse([]byte(`{"issues":[{"id":"3","title":"c"}]}`))
		require.Len(t, got, 1)
	})

	t.Run("unknown shape is logged and empty", func(t *testing.T) {
		buf := captureLog(t)
		got := issues.Parse([]byte(`{"items":[{"id":"1","title":"a"}]}`))
		require.NotNil(t, got)
		require.Empty(t, got)
		require.Contains(t, buf.String(), "Unexpected response format")
	})

	t.Run("non-object body", func(t *testing.T) {
		buf := captureLog(t)
		require.Empty(t, issues.Parse([]byte(`[1,2,3]`)))
		require.Contains(t, buf.String(), "Unexpected response format")
	})

	t.Run("bad elements are skipped", func(t *testing.T) {
		buf := captureLog(t)
		page := issues.ParsePage([]byte(`{"results":[
			{"id":"1","title":"ok"},
			{"title":"no id"},
			42,
			{"id":"4","title":"also ok","commentCount":"many"},
			{"id":"5","title":"fine"}
		]}`))
		require.Equal(t, 5, page.Returned)
		require.Len(t, page.Issues, 2)
		require.Equal(t, "1", page.Issues[0].ID)
		require.Equal(t, "5", page.Issues[1].ID)
		require.Contains(t, buf.String(), "Error parsing issue")
	})

	t.Run("pagination total", func(t *testing.T) {
		page := issues.ParsePage([]byte(`{"pagination":{"limit":100,"offset":0,"totalResults":250},"results":[]}`))
		require.NotNil(t, page.TotalResults)
		require.Equal(t, 250, *page.TotalResults)
		require.Empty(t, page.Issues)
	})
}
