package session

import (
	"github.com/gorilla/securecookie"

	"sheetlog/pkg/logging"
)

// payloadVersion is embedded in every encoded session so the wire format
// can evolve. A payload with any other version decodes to an empty session.
const payloadVersion = 1

// payload is the signed serialization of a session. The token bundle is
// carried as opaque JSON; the codec has no knowledge of its shape.
type payload struct {
	Version int    `json:"v"`
	UserID  string `json:"userId,omitempty"`
	Tokens  string `json:"tokens,omitempty"`
}

// codec encodes and decodes the signed session payload. Signing uses a
// keyed HMAC with the server-held secret; the secret is never derivable
// from cookie contents. securecookie additionally embeds an issuance
// timestamp, which enforces the session max age at decode time.
type codec struct {
	sc   *securecookie.SecureCookie
	name string
}

func newCodec(secret []byte, cookieName string, maxAgeSeconds int) *codec {
	sc := securecookie.New(secret, nil)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(maxAgeSeconds)
	return &codec{sc: sc, name: cookieName}
}

func (c *codec) encode(p payload) (string, error) {
	p.Version = payloadVersion
	return c.sc.Encode(c.name, p)
}

// decode returns the payload carried by value. Corruption, a bad
// signature, an expired timestamp, or an unknown version all yield the
// zero payload: an empty session, never an error and never a
// partially-trusted one.
func (c *codec) decode(value string) payload {
	var p payload
	if err := c.sc.Decode(c.name, value, &p); err != nil {
		logging.Debug("Session", "Discarding unreadable session cookie: %v", err)
		return payload{}
	}
	if p.Version != payloadVersion {
		logging.Debug("Session", "Discarding session cookie with version %d", p.Version)
		return payload{}
	}
	return p
}
