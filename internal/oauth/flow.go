package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"

	"sheetlog/internal/session"
	"sheetlog/pkg/logging"
	pkgoauth "sheetlog/pkg/oauth"
)

// SpreadsheetScope is the single fixed scope requested from the provider,
// granting read/write access to the spreadsheet API.
const SpreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// providerTimeout bounds every call to the provider's token endpoint.
// Exchange and refresh are the only network-bound operations in the core;
// they surface timeouts as ErrUpstreamUnavailable rather than hanging.
const providerTimeout = 30 * time.Second

// FlowOptions configures the authorization flow.
type FlowOptions struct {
	ClientID     string
	ClientSecret string

	// RedirectURI must match exactly the URI registered with the provider
	// for the current deployment environment.
	RedirectURI string

	// Endpoint overrides the provider endpoint; zero means Google.
	// Tests point this at a local fake provider.
	Endpoint oauth2.Endpoint
}

// Flow drives the authorization-code dance against the provider: authorize
// URL construction, the code-for-token exchange, and refresh. It holds no
// per-user state; sessions carry the resulting bundles.
type Flow struct {
	cfg *oauth2.Config

	// refreshGroup deduplicates concurrent refreshes of the same refresh
	// token across parallel requests from one user, so the provider sees a
	// single refresh regardless of request fan-out.
	refreshGroup singleflight.Group

	httpClient *http.Client
}

// NewFlow creates an authorization flow with the given client registration.
func NewFlow(opts FlowOptions) *Flow {
	endpoint := opts.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	return &Flow{
		cfg: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			RedirectURL:  opts.RedirectURI,
			Endpoint:     endpoint,
			Scopes:       []string{SpreadsheetScope},
		},
		httpClient: &http.Client{Timeout: providerTimeout},
	}
}

// AuthCodeURL returns the provider consent URL. Construction is
// deterministic and stateless: offline access is always requested so a
// refresh token is issued, and no server-side authorization state is kept.
func (f *Flow) AuthCodeURL() string {
	return f.cfg.AuthCodeURL("", oauth2.AccessTypeOffline)
}

// Exchange exchanges an authorization code for a token bundle. Codes are
// single-use by provider contract: a reused, invalid, or expired code
// yields ErrExchangeFailed and is never retried here.
func (f *Flow) Exchange(ctx context.Context, code string) (*pkgoauth.TokenBundle, error) {
	tok, err := f.cfg.Exchange(f.providerContext(ctx), code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			logging.Warn("OAuth", "Code exchange rejected by provider: %s", rerr.ErrorCode)
			return nil, fmt.Errorf("%w: provider returned %q", ErrExchangeFailed, rerr.ErrorCode)
		}
		logging.Warn("OAuth", "Code exchange transport failure: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	bundle := pkgoauth.FromOAuth2Token(tok)
	if bundle.Scope == "" {
		bundle.Scope = strings.Join(f.cfg.Scopes, " ")
	}
	logging.Debug("OAuth", "Exchanged authorization code (expires: %v)", bundle.Expiry())
	return bundle, nil
}

// CompleteAuthorization runs the code exchange and binds the resulting
// bundle to the session's authenticated user.
//
// A missing code is a no-op, not a failure: the callback renders normally
// and nothing is mutated. A code arriving on a session with no user bound
// is not linkable; it is discarded without touching the provider, since
// spending a single-use code on a bundle we cannot store helps no one.
func (f *Flow) CompleteAuthorization(ctx context.Context, sess *session.Session, code string) (*pkgoauth.TokenBundle, error) {
	if code == "" {
		return nil, nil
	}
	if sess.UserID() == "" {
		logging.Warn("OAuth", "Discarding authorization code received before login")
		return nil, nil
	}

	bundle, err := f.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	if !bundle.Complete() {
		logging.Warn("OAuth", "Provider returned bundle without access token; discarding")
		return nil, nil
	}

	if err := sess.SetTokenBundle(bundle); err != nil {
		return nil, err
	}
	logging.Info("OAuth", "Bound authorization to user=%s", logging.TruncateUserID(sess.UserID()))
	return bundle, nil
}

// Refresh exchanges the bundle's refresh token for a new access token.
// Only called once the access token is at or past expiry. A provider
// rejection (revoked or invalid refresh token) is terminal for the bundle
// and yields ErrReauthorizationRequired; the caller clears the session's
// bundle. Transport failures yield ErrUpstreamUnavailable and leave the
// bundle in place.
func (f *Flow) Refresh(ctx context.Context, bundle *pkgoauth.TokenBundle) (*pkgoauth.TokenBundle, error) {
	if !bundle.Refreshable() {
		return nil, fmt.Errorf("%w: bundle has no refresh token", ErrReauthorizationRequired)
	}

	v, err, _ := f.refreshGroup.Do(bundle.RefreshToken, func() (interface{}, error) {
		src := f.cfg.TokenSource(f.providerContext(ctx), &oauth2.Token{RefreshToken: bundle.RefreshToken})
		return src.Token()
	})
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			logging.Warn("OAuth", "Refresh rejected by provider: %s", rerr.ErrorCode)
			return nil, fmt.Errorf("%w: provider returned %q", ErrReauthorizationRequired, rerr.ErrorCode)
		}
		logging.Warn("OAuth", "Refresh transport failure: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	refreshed := pkgoauth.FromOAuth2Token(v.(*oauth2.Token))
	// Preserve fields the provider does not echo back
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = bundle.RefreshToken
	}
	if refreshed.Scope == "" {
		refreshed.Scope = bundle.Scope
	}
	if refreshed.TokenType == "" {
		refreshed.TokenType = bundle.TokenType
	}
	logging.Debug("OAuth", "Refreshed access token (expires: %v)", refreshed.Expiry())
	return refreshed, nil
}

// providerContext bounds provider calls with the flow's HTTP client so a
// stalled token endpoint cannot hang a request indefinitely.
func (f *Flow) providerContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)
}
