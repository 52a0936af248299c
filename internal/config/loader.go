package config

import (
	"errors"
	"fmt"
	"os"

	"sheetlog/pkg/logging"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// LoadConfig loads configuration from the given file path, falling back to
// defaults when the file does not exist, then applies environment-variable
// overrides. A malformed file is an error; a missing one is not.
func LoadConfig(configPath string) (Config, error) {
	if configPath == "" {
		configPath = configFileName
	}

	config := GetDefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No %s found, using defaults", configPath)
		} else {
			return Config{}, fmt.Errorf("error reading config from %s: %w", configPath, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", configPath, err)
		}
		logging.Info("Config", "Loaded configuration from %s", configPath)
	}

	applyEnvOverrides(&config)

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// applyEnvOverrides layers process environment variables over the file
// configuration. Secrets are expected to arrive this way.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("APP_ENV"); v != "" {
		config.Environment = Environment(v)
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		config.Session.Secret = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		config.Google.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		config.Google.ClientSecret = v
	}
	if v := os.Getenv("GOOGLE_REDIRECT_URI_PROD"); v != "" {
		config.Google.RedirectURIs.Production = v
	}
	if v := os.Getenv("GOOGLE_REDIRECT_URI_STAGING"); v != "" {
		config.Google.RedirectURIs.Staging = v
	}
	if v := os.Getenv("GOOGLE_REDIRECT_URI_DEV"); v != "" {
		config.Google.RedirectURIs.Development = v
	}
}
