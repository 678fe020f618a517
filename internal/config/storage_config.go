package config

import "time"

const (
	SessionStoreFile   = "file"
	SessionStoreSQLite = "sqlite"
)

type Storage struct {
	SessionStore string `env:"SESSION_STORE" envDefault:"file"`
	SessionsFile string `env:"SESSIONS_FILE" envDefault:"sessions.json"`
	SessionsDB   string `env:"SESSIONS_DB" envDefault:"sessions.db"`
	ExportFile   string `env:"EXPORT_FILE" envDefault:"autodesk_projects.json"`
}

var _ StorageConfig = Storage{}

func (s Storage) GetSessionStore() string {
	return s.SessionStore
}

func (s Storage) GetSessionsFile() string {
	return s.SessionsFile
}

func (s Storage) GetSessionsDB() string {
	return s.SessionsDB
}

func (s Storage) GetExportFile() string {
	return s.ExportFile
}

type Provider struct {
	APIBaseURL           string        `env:"AUTODESK_API_BASE_URL" envDefault:"https://developer.api.autodesk.com"`
	CapabilitiesFile     string        `env:"AUTODESK_CAPABILITIES_FILE"`
	IssueEndpointTimeout time.Duration `env:"ISSUE_ENDPOINT_TIMEOUT" envDefault:"10s"`
}

var _ ProviderConfig = Provider{}

func (p Provider) GetAPIBaseURL() string {
	return p.APIBaseURL
}

// GetCapabilitiesFile returns an optional YAML endpoint table path
func (p Provider) GetCapabilitiesFile() string {
	return p.CapabilitiesFile
}

func (p Provider) GetIssueEndpointTimeout() time.Duration {
	return p.IssueEndpointTimeout
}
