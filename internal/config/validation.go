package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Add adds a new validation error.
func (ve *ValidationErrors) Add(field, message string) {
	*ve = append(*ve, ValidationError{Field: field, Message: message})
}

// minSecretLength is the minimum accepted MAC key length in bytes. Shorter
// secrets make the signed cookie forgeable in practice.
const minSecretLength = 32

// Validate checks the configuration for completeness. Called after
// environment overrides; the returned error lists every problem found.
func (c Config) Validate() error {
	var errs ValidationErrors

	switch c.Environment {
	case EnvProduction, EnvStaging, EnvDevelopment:
	default:
		errs.Add("environment", fmt.Sprintf("unknown environment %q", c.Environment))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs.Add("server.port", fmt.Sprintf("invalid port %d", c.Server.Port))
	}

	if c.Session.Secret == "" {
		errs.Add("session.secret", "SESSION_SECRET must be set")
	} else if len(c.Session.Secret) < minSecretLength {
		errs.Add("session.secret", fmt.Sprintf("secret must be at least %d bytes", minSecretLength))
	}
	if c.Session.CookieName == "" {
		errs.Add("session.cookieName", "cookie name must not be empty")
	}
	if c.Session.MaxAgeSeconds <= 0 {
		errs.Add("session.maxAgeSeconds", "session lifetime must be positive")
	}

	if c.Google.ClientID == "" {
		errs.Add("google.clientId", "GOOGLE_CLIENT_ID must be set")
	}
	if c.Google.ClientSecret == "" {
		errs.Add("google.clientSecret", "GOOGLE_CLIENT_SECRET must be set")
	}
	if c.RedirectURI() == "" {
		errs.Add("google.redirectUris", fmt.Sprintf("no redirect URI registered for environment %q", c.Environment))
	}

	if c.Database.Path == "" {
		errs.Add("database.path", "database path must not be empty")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
