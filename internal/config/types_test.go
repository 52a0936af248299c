package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedirectURI_Selection(t *testing.T) {
	uris := RedirectURIConfig{
		Production:  "https://app.example.com/google/callback",
		Staging:     "https://staging.example.com/google/callback",
		Development: "http://localhost:8080/google/callback",
	}

	tests := []struct {
		name     string
		env      Environment
		uris     RedirectURIConfig
		expected string
	}{
		{
			name:     "production",
			env:      EnvProduction,
			uris:     uris,
			expected: "https://app.example.com/google/callback",
		},
		{
			name:     "staging",
			env:      EnvStaging,
			uris:     uris,
			expected: "https://staging.example.com/google/callback",
		},
		{
			name:     "development",
			env:      EnvDevelopment,
			uris:     uris,
			expected: "http://localhost:8080/google/callback",
		},
		{
			name: "staging falls back to development",
			env:  EnvStaging,
			uris: RedirectURIConfig{
				Development: "http://localhost:8080/google/callback",
			},
			expected: "http://localhost:8080/google/callback",
		},
		{
			name: "development falls back to staging",
			env:  EnvDevelopment,
			uris: RedirectURIConfig{
				Staging: "https://staging.example.com/google/callback",
			},
			expected: "https://staging.example.com/google/callback",
		},
		{
			name: "production never falls back",
			env:  EnvProduction,
			uris: RedirectURIConfig{
				Development: "http://localhost:8080/google/callback",
			},
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{Environment: tc.env, Google: GoogleConfig{RedirectURIs: tc.uris}}
			assert.Equal(t, tc.expected, cfg.RedirectURI())
		})
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, Config{Environment: EnvProduction}.IsProduction())
	assert.False(t, Config{Environment: EnvStaging}.IsProduction())
	assert.False(t, Config{Environment: EnvDevelopment}.IsProduction())
}
