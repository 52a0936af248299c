package oauth

import "errors"

// The error taxonomy for authorization failures. Every failure crossing
// this package's boundary wraps exactly one of these sentinels; callers
// classify with errors.Is and map each kind to its own recovery path.
var (
	// ErrUnauthenticated means no valid user is bound to the session.
	// Recoverable by redirecting to login.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotAuthorized means the user is authenticated but the session
	// holds no usable token bundle. Recoverable by redirecting to the
	// connect step.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrExchangeFailed means the authorization code was invalid, reused,
	// or expired. Recoverable only by restarting the authorize step; never
	// retried automatically.
	ErrExchangeFailed = errors.New("authorization code exchange failed")

	// ErrReauthorizationRequired means the provider rejected the refresh
	// token. Terminal for the bundle: it is cleared and the user must
	// re-authorize.
	ErrReauthorizationRequired = errors.New("reauthorization required")

	// ErrUpstreamUnavailable means the provider could not be reached or
	// timed out. Transient and distinct from ErrExchangeFailed; eligible
	// for caller-level retry policy.
	ErrUpstreamUnavailable = errors.New("authorization provider unavailable")
)
