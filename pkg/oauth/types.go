package oauth

import (
	"time"

	"golang.org/x/oauth2"
)

// DefaultExpiryMargin is the default margin when checking bundle expiry.
// This accounts for clock skew and network latency.
const DefaultExpiryMargin = 30 * time.Second

// TokenBundle represents the delegated Google authorization held by a
// session. Field names and the millisecond expiry follow the provider's
// token response so the bundle round-trips through the session unchanged.
type TokenBundle struct {
	// AccessToken is the bearer token used for spreadsheet API calls.
	AccessToken string `json:"access_token,omitempty"`

	// RefreshToken is used to obtain new access tokens. A bundle without
	// one can never be silently refreshed.
	RefreshToken string `json:"refresh_token,omitempty"`

	// Scope is the granted scope(s), space-separated.
	Scope string `json:"scope,omitempty"`

	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`

	// ExpiryDate is the access token expiry as Unix milliseconds.
	ExpiryDate int64 `json:"expiry_date,omitempty"`
}

// Expiry returns the access token expiry as a time.Time.
// The zero time means no expiry is recorded.
func (b *TokenBundle) Expiry() time.Time {
	if b.ExpiryDate == 0 {
		return time.Time{}
	}
	return time.UnixMilli(b.ExpiryDate)
}

// SetExpiry records the access token expiry.
func (b *TokenBundle) SetExpiry(t time.Time) {
	if t.IsZero() {
		b.ExpiryDate = 0
		return
	}
	b.ExpiryDate = t.UnixMilli()
}

// IsExpired checks if the access token has expired.
func (b *TokenBundle) IsExpired() bool {
	return b.IsExpiredWithMargin(DefaultExpiryMargin)
}

// IsExpiredWithMargin checks if the access token has expired or will
// expire within the margin.
func (b *TokenBundle) IsExpiredWithMargin(margin time.Duration) bool {
	expiry := b.Expiry()
	if expiry.IsZero() {
		return false // Bundles without expiration don't expire
	}
	return time.Now().Add(margin).After(expiry)
}

// Complete reports whether the bundle is usable for an API call: an access
// token with a recorded expiry. An access token without an expiry must be
// treated as absent, never acted on.
func (b *TokenBundle) Complete() bool {
	return b != nil && b.AccessToken != "" && b.ExpiryDate != 0
}

// Refreshable reports whether the bundle carries a refresh token.
func (b *TokenBundle) Refreshable() bool {
	return b != nil && b.RefreshToken != ""
}

// ToOAuth2Token converts the bundle to an oauth2.Token for compatibility
// with golang.org/x/oauth2.
func (b *TokenBundle) ToOAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  b.AccessToken,
		TokenType:    b.TokenType,
		RefreshToken: b.RefreshToken,
		Expiry:       b.Expiry(),
	}
}

// FromOAuth2Token builds a bundle from an oauth2.Token.
func FromOAuth2Token(t *oauth2.Token) *TokenBundle {
	b := &TokenBundle{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
	}
	b.SetExpiry(t.Expiry)
	if scope, ok := t.Extra("scope").(string); ok {
		b.Scope = scope
	}
	return b
}
