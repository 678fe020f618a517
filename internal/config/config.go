package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	apperrors "github.com/jrsteele09/acc-issues/internal/errors"
)

type Config interface {
	EnvConfig
	OAuthConfig
	StorageConfig
	ProviderConfig
}

type EnvConfig interface {
	GetAddr() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type StorageConfig interface {
	GetSessionStore() string
	GetSessionsFile() string
	GetSessionsDB() string
	GetExportFile() string
}

type ProviderConfig interface {
	GetAPIBaseURL() string
	GetCapabilitiesFile() string
	GetIssueEndpointTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	OAuth
	Storage
	Provider
}

var _ Config = mainConfig{}

// New reads the configuration from the environment. Missing client
// credentials are reported as ErrMissingCredentials.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		var aggErr env.AggregateError
		if apperrors.As(err, &aggErr) {
			for _, e := range aggErr.Errors {
				switch e.(type) {
				case env.VarIsNotSetError, env.EmptyVarError:
					return nil, fmt.Errorf("%w: %s", apperrors.ErrMissingCredentials, err.Error())
				}
			}
		}
		return nil, fmt.Errorf("[config New] %w: %w", apperrors.ErrInvalidConfig, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c mainConfig) validate() error {
	switch c.StateMode {
	case StateModeSigned, StateModeMemory:
	default:
		return fmt.Errorf("%w: STATE_MODE must be %q or %q, got %q", apperrors.ErrInvalidConfig, StateModeSigned, StateModeMemory, c.StateMode)
	}
	switch c.SessionStore {
	case SessionStoreFile, SessionStoreSQLite:
	default:
		return fmt.Errorf("%w: SESSION_STORE must be %q or %q, got %q", apperrors.ErrInvalidConfig, SessionStoreFile, SessionStoreSQLite, c.SessionStore)
	}
	return nil
}
