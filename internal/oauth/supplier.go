package oauth

import (
	"context"
	"errors"
	"fmt"

	"sheetlog/internal/session"
	"sheetlog/pkg/logging"
	pkgoauth "sheetlog/pkg/oauth"
)

// Supplier is the single choke point through which any external API call
// obtains a live, non-expired credential.
type Supplier struct {
	flow *Flow
}

// NewSupplier creates a credential supplier backed by the given flow.
func NewSupplier(flow *Flow) *Supplier {
	return &Supplier{flow: flow}
}

// CredentialFor returns a currently-valid token bundle for the session.
//
// An absent or unusable bundle yields ErrNotAuthorized. An expired bundle
// triggers exactly one refresh attempt: on success the replacement bundle
// is bound to the session (the caller must commit the session to the
// response); on provider rejection the bundle is cleared and
// ErrReauthorizationRequired is returned; on transport failure the bundle
// is left in place and ErrUpstreamUnavailable is returned. A failed
// refresh is never retried within the same call.
func (s *Supplier) CredentialFor(ctx context.Context, sess *session.Session) (*pkgoauth.TokenBundle, error) {
	bundle := sess.TokenBundle()
	if !bundle.Complete() {
		return nil, fmt.Errorf("%w: session holds no usable token bundle", ErrNotAuthorized)
	}

	if !bundle.IsExpired() {
		return bundle, nil
	}

	if !bundle.Refreshable() {
		// Never silently usable again; force re-authorization.
		sess.ClearTokenBundle()
		return nil, fmt.Errorf("%w: expired bundle has no refresh token", ErrReauthorizationRequired)
	}

	logging.Debug("OAuth", "Credential expired for user=%s, refreshing", logging.TruncateUserID(sess.UserID()))
	refreshed, err := s.flow.Refresh(ctx, bundle)
	if err != nil {
		if errors.Is(err, ErrReauthorizationRequired) {
			sess.ClearTokenBundle()
		}
		return nil, err
	}

	if err := sess.SetTokenBundle(refreshed); err != nil {
		return nil, err
	}
	return refreshed, nil
}
