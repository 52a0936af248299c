package oauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"sheetlog/internal/session"
	pkgoauth "sheetlog/pkg/oauth"
)

func sessionWithBundle(t *testing.T, bundle *pkgoauth.TokenBundle) *session.Session {
	t.Helper()
	sess := &session.Session{}
	sess.SetUserID("u1")
	if bundle != nil {
		if err := sess.SetTokenBundle(bundle); err != nil {
			t.Fatalf("SetTokenBundle failed: %v", err)
		}
	}
	return sess
}

func TestSupplier_NoBundle(t *testing.T) {
	p := newFakeProvider(t)
	s := NewSupplier(newTestFlow(p))

	sess := sessionWithBundle(t, nil)

	_, err := s.CredentialFor(context.Background(), sess)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("got %v, expected ErrNotAuthorized", err)
	}
}

func TestSupplier_IncompleteBundleTreatedAsAbsent(t *testing.T) {
	p := newFakeProvider(t)
	s := NewSupplier(newTestFlow(p))

	// Access token but no expiry: must never be acted on.
	sess := sessionWithBundle(t, &pkgoauth.TokenBundle{AccessToken: "a", RefreshToken: "r"})

	_, err := s.CredentialFor(context.Background(), sess)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("got %v, expected ErrNotAuthorized", err)
	}
}

func TestSupplier_ValidBundlePassedThrough(t *testing.T) {
	p := newFakeProvider(t)
	s := NewSupplier(newTestFlow(p))

	bundle := &pkgoauth.TokenBundle{AccessToken: "access-live", RefreshToken: "refresh-1", TokenType: "Bearer"}
	bundle.SetExpiry(time.Now().Add(time.Hour))
	sess := sessionWithBundle(t, bundle)

	got, err := s.CredentialFor(context.Background(), sess)
	if err != nil {
		t.Fatalf("CredentialFor failed: %v", err)
	}
	if got.AccessToken != "access-live" {
		t.Errorf("AccessToken = %q, expected pass-through", got.AccessToken)
	}
	if p.refreshCount() != 0 {
		t.Error("valid bundle must not trigger a refresh")
	}
}

func TestSupplier_ExpiredBundleRefreshed(t *testing.T) {
	p := newFakeProvider(t)
	s := NewSupplier(newTestFlow(p))

	bundle := &pkgoauth.TokenBundle{AccessToken: "access-stale", RefreshToken: "refresh-1", TokenType: "Bearer"}
	bundle.SetExpiry(time.Now().Add(-time.Second))
	sess := sessionWithBundle(t, bundle)

	got, err := s.CredentialFor(context.Background(), sess)
	if err != nil {
		t.Fatalf("CredentialFor failed: %v", err)
	}
	if got.AccessToken == "access-stale" {
		t.Error("expired access token must not be returned")
	}
	if got.IsExpired() {
		t.Error("refreshed bundle should be live")
	}
	if p.refreshCount() != 1 {
		t.Errorf("refresh count = %d, expected exactly 1", p.refreshCount())
	}

	stored := sess.TokenBundle()
	if stored == nil || stored.AccessToken != got.AccessToken {
		t.Error("refreshed bundle must be persisted back into the session")
	}
	if !sess.Modified() {
		t.Error("session must be marked for commit after refresh")
	}
}

func TestSupplier_RefreshRejectedClearsBundle(t *testing.T) {
	p := newFakeProvider(t)
	s := NewSupplier(newTestFlow(p))

	bundle := &pkgoauth.TokenBundle{AccessToken: "access-stale", RefreshToken: "refresh-dead", TokenType: "Bearer"}
	bundle.SetExpiry(time.Now().Add(-time.Second))
	sess := sessionWithBundle(t, bundle)
	p.revoke("refresh-dead")

	_, err := s.CredentialFor(context.Background(), sess)
	if !errors.Is(err, ErrReauthorizationRequired) {
		t.Fatalf("got %v, expected ErrReauthorizationRequired", err)
	}
	if sess.TokenBundle() != nil {
		t.Error("rejected refresh must clear the session's bundle")
	}
	if p.refreshCount() != 1 {
		t.Errorf("refresh count = %d, expected exactly 1 (no retry)", p.refreshCount())
	}
}

func TestSupplier_ExpiredWithoutRefreshToken(t *testing.T) {
	p := newFakeProvider(t)
	s := NewSupplier(newTestFlow(p))

	bundle := &pkgoauth.TokenBundle{AccessToken: "access-stale", TokenType: "Bearer"}
	bundle.SetExpiry(time.Now().Add(-time.Second))
	sess := sessionWithBundle(t, bundle)

	_, err := s.CredentialFor(context.Background(), sess)
	if !errors.Is(err, ErrReauthorizationRequired) {
		t.Fatalf("got %v, expected ErrReauthorizationRequired", err)
	}
	if sess.TokenBundle() != nil {
		t.Error("unrefreshable bundle must be cleared")
	}
	if p.refreshCount() != 0 {
		t.Error("no refresh attempt is possible without a refresh token")
	}
}

func TestSupplier_UpstreamFailureKeepsBundle(t *testing.T) {
	p := newFakeProvider(t)
	s := NewSupplier(newTestFlow(p))

	bundle := &pkgoauth.TokenBundle{AccessToken: "access-stale", RefreshToken: "refresh-1", TokenType: "Bearer"}
	bundle.SetExpiry(time.Now().Add(-time.Second))
	sess := sessionWithBundle(t, bundle)
	p.srv.Close()

	_, err := s.CredentialFor(context.Background(), sess)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("got %v, expected ErrUpstreamUnavailable", err)
	}
	if sess.TokenBundle() == nil {
		t.Error("transient upstream failure must not clear the bundle")
	}
}
