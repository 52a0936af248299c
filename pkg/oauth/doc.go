// Package oauth provides the shared token bundle type used by both the
// session layer and the authorization flow.
//
// The session layer (internal/session) serializes a TokenBundle into the
// signed cookie, and the flow layer (internal/oauth) produces and refreshes
// bundles against the provider. Both import this package rather than each
// other.
package oauth
