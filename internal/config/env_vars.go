package config

import (
	"net"
)

type EnvVars struct {
	Host     string `env:"HOST" envDefault:"127.0.0.1"`
	Port     string `env:"PORT" envDefault:"8000"`
	AppName  string `env:"APP_NAME" envDefault:"ACC OAuth"`
	Env      string `env:"ENV" envDefault:"DEV"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var _ EnvConfig = EnvVars{}

// GetAddr returns the listen address, e.g. "127.0.0.1:8000"
func (e EnvVars) GetAddr() string {
	return net.JoinHostPort(e.Host, e.Port)
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}
