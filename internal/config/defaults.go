package config

const (
	// DefaultCookieName is the session cookie name.
	DefaultCookieName = "app_session"

	// DefaultSessionMaxAge is the session lifetime in seconds (30 days).
	DefaultSessionMaxAge = 60 * 60 * 24 * 30

	// DefaultPort is the HTTP listener port.
	DefaultPort = 8080

	// DefaultHost is the HTTP listener host.
	DefaultHost = "localhost"

	// DefaultDatabasePath is the SQLite user store location.
	DefaultDatabasePath = "sheetlog.db"
)

// GetDefaultConfig returns the default configuration for sheetlog.
// Secrets and the Google client registration have no defaults; they come
// from the config file or environment variables.
func GetDefaultConfig() Config {
	return Config{
		Environment: EnvDevelopment,
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Session: SessionConfig{
			CookieName:    DefaultCookieName,
			MaxAgeSeconds: DefaultSessionMaxAge,
		},
		Database: DatabaseConfig{
			Path: DefaultDatabasePath,
		},
	}
}
