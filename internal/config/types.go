package config

// Environment identifies the deployment environment. The registered Google
// redirect URI is a pure function of this value.
type Environment string

const (
	EnvProduction  Environment = "production"
	EnvStaging     Environment = "staging"
	EnvDevelopment Environment = "development"
)

// Config is the top-level configuration structure for sheetlog.
type Config struct {
	Environment Environment    `yaml:"environment,omitempty"`
	Server      ServerConfig   `yaml:"server,omitempty"`
	Session     SessionConfig  `yaml:"session,omitempty"`
	Google      GoogleConfig   `yaml:"google,omitempty"`
	Database    DatabaseConfig `yaml:"database,omitempty"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host,omitempty"` // Host to bind to (default: localhost)
	Port int    `yaml:"port,omitempty"` // Port to listen on (default: 8080)
}

// SessionConfig defines the signed cookie session.
type SessionConfig struct {
	// Secret is the server-held MAC key. Never written to config files in
	// plain deployments; supplied via SESSION_SECRET.
	Secret string `yaml:"secret,omitempty"`

	// CookieName is the session cookie name (default: app_session).
	CookieName string `yaml:"cookieName,omitempty"`

	// MaxAgeSeconds is the session lifetime (default: 30 days).
	MaxAgeSeconds int `yaml:"maxAgeSeconds,omitempty"`
}

// GoogleConfig holds the OAuth client registration for the Google
// spreadsheet API.
type GoogleConfig struct {
	ClientID     string            `yaml:"clientId,omitempty"`
	ClientSecret string            `yaml:"clientSecret,omitempty"`
	RedirectURIs RedirectURIConfig `yaml:"redirectUris,omitempty"`
}

// RedirectURIConfig lists the redirect URIs registered with the provider,
// one per deployment environment.
type RedirectURIConfig struct {
	Production  string `yaml:"production,omitempty"`
	Staging     string `yaml:"staging,omitempty"`
	Development string `yaml:"development,omitempty"`
}

// DatabaseConfig defines the user record store.
type DatabaseConfig struct {
	Path string `yaml:"path,omitempty"` // SQLite database file (default: sheetlog.db)
}

// IsProduction reports whether the configuration targets production.
// Controls the Secure attribute on the session cookie.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// RedirectURI returns the registered redirect URI for the configured
// environment. When an environment has no URI of its own, selection falls
// back down the list so a partially configured deployment still resolves
// to a registered URI.
func (c Config) RedirectURI() string {
	uris := c.Google.RedirectURIs
	switch c.Environment {
	case EnvProduction:
		return uris.Production
	case EnvStaging:
		if uris.Staging != "" {
			return uris.Staging
		}
		return uris.Development
	default:
		if uris.Development != "" {
			return uris.Development
		}
		return uris.Staging
	}
}
