// Package session implements the cookie-as-database session layer.
//
// A session is a signed, versioned serialization of {userId, tokens}
// carried entirely in the client's cookie. The server stores nothing,
// which makes horizontal scaling free and revocation impossible short of
// rotating the signing secret. That trade-off is deliberate; a server-side
// session table would change revocation and multi-device semantics.
//
// Reading a session never fails. Every corruption mode (missing cookie,
// bad signature, expired embedded timestamp, unknown payload version,
// malformed token JSON) collapses to the empty session so request
// handling can proceed uniformly and redirect through the auth gate.
package session
