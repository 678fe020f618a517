package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs a console writer on stderr and sets the global level.
// Unknown levels fall back to info.
func Setup(level, env string) {
	SetupWithWriter(os.Stderr, level, env)
}

func SetupWithWriter(w io.Writer, level, env string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    env != "DEV",
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}
