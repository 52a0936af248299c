package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"sheetlog/pkg/logging"
	"sheetlog/pkg/oauth"
)

// Options configures the session store. Immutable after construction.
type Options struct {
	// Secret is the MAC key for the signed cookie.
	Secret []byte

	// CookieName is the session cookie name.
	CookieName string

	// MaxAgeSeconds is the session lifetime, enforced both by the cookie
	// attribute and by the timestamp embedded in the signed payload.
	MaxAgeSeconds int

	// Secure marks the cookie Secure; set in production.
	Secure bool
}

// Store issues, reads, mutates, and destroys signed cookie sessions.
// The server holds no session table: all state lives in the cookie, so
// horizontal scaling needs no shared storage. The trade-off is that
// revocation is impossible without rotating the secret.
type Store struct {
	codec *codec
	opts  Options
}

// NewStore creates a session store with the given options.
func NewStore(opts Options) *Store {
	return &Store{
		codec: newCodec(opts.Secret, opts.CookieName, opts.MaxAgeSeconds),
		opts:  opts,
	}
}

// Session is the request-scoped handle over decoded session state.
// Mutations are in-memory only until the store commits them.
type Session struct {
	userID   string
	tokens   string // opaque TokenBundle JSON
	modified bool
}

// Open materializes the session carried by the request. It never fails:
// an absent, corrupt, tampered, or expired cookie yields an empty session.
func (st *Store) Open(r *http.Request) *Session {
	cookie, err := r.Cookie(st.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}
	}
	p := st.codec.decode(cookie.Value)
	return &Session{userID: p.UserID, tokens: p.Tokens}
}

// UserID returns the authenticated user id, or "" when unauthenticated.
func (s *Session) UserID() string {
	return s.userID
}

// SetUserID binds an authenticated user to the session.
func (s *Session) SetUserID(id string) {
	s.userID = id
	s.modified = true
}

// TokenBundle returns the session's token bundle. Absent or malformed
// serialized token data yields nil, not an error.
func (s *Session) TokenBundle() *oauth.TokenBundle {
	if s.tokens == "" {
		return nil
	}
	var b oauth.TokenBundle
	if err := json.Unmarshal([]byte(s.tokens), &b); err != nil {
		logging.Debug("Session", "Discarding malformed token bundle: %v", err)
		return nil
	}
	return &b
}

// SetTokenBundle replaces the session's token bundle atomically. A bundle
// is meaningless without an authenticated user, so binding one to a
// session with no user id is rejected.
func (s *Session) SetTokenBundle(b *oauth.TokenBundle) error {
	if s.userID == "" {
		return fmt.Errorf("cannot bind token bundle to session without user id")
	}
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to serialize token bundle: %w", err)
	}
	s.tokens = string(data)
	s.modified = true
	return nil
}

// ClearTokenBundle drops the session's token bundle, e.g. after the
// provider rejects its refresh token.
func (s *Session) ClearTokenBundle() {
	if s.tokens == "" {
		return
	}
	s.tokens = ""
	s.modified = true
}

// Modified reports whether the session has uncommitted mutations.
func (s *Session) Modified() bool {
	return s.modified
}

// Commit serializes and signs the session, returning the Set-Cookie
// directive the caller must attach to the response.
func (st *Store) Commit(s *Session) (*http.Cookie, error) {
	value, err := st.codec.encode(payload{UserID: s.userID, Tokens: s.tokens})
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}
	s.modified = false
	return st.cookie(value, st.opts.MaxAgeSeconds), nil
}

// Destroy returns a directive that expires the cookie immediately.
func (st *Store) Destroy() *http.Cookie {
	return st.cookie("", -1)
}

func (st *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     st.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   st.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
