// Package oauth drives the authorization-code flow against the Google
// spreadsheet API and supplies live credentials to callers.
//
// # Components
//
//   - Flow: authorize URL construction, code-for-token exchange, and
//     refresh. Stateless between requests; bundles live in the session.
//   - Supplier: the guarded accessor every external API call goes through.
//     It transparently refreshes stale credentials and distinguishes the
//     failure modes callers must handle differently.
//
// # State machine
//
// A session's authorization moves through: unauthenticated, awaiting the
// provider redirect, awaiting code exchange, authorized, expired,
// refreshing, and back to authorized or on to reauthorization-required.
// The transitions live in Flow.CompleteAuthorization (exchange and bind)
// and Supplier.CredentialFor (expiry check, refresh, terminal clearing).
//
// # Errors
//
// Every failure wraps one of the sentinels in errors.go. Nothing in this
// package returns an opaque failure across its boundary; callers branch
// with errors.Is and map each kind to a redirect or an error response.
package oauth
