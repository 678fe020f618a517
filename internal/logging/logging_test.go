package logging_test

import (
	"bytes"
	"testing"

	"github.com/jrsteele09/acc-issues/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	t.Run("known level", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetupWithWriter(&buf, "warn", "PROD")
		require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

		log.Info().Msg("hidden")
		log.Warn().Msg("shown")
		require.NotContains(t, buf.String(), "hidden")
		require.Contains(t, buf.String(), "shown")
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetupWithWriter(&buf, "chatty", "PROD")
		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("empty level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetupWithWriter(&buf, "", "PROD")
		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})
}
