package auth

import (
	"fmt"
	"net/url"

	"sheetlog/internal/oauth"
	"sheetlog/internal/session"
	"sheetlog/internal/user"
	"sheetlog/pkg/logging"
)

// Guard redirect targets.
const (
	LoginPath   = "/login"
	ConnectPath = "/connect"
	EntryPath   = "/entry"
)

// RedirectError is the structured "redirect required" signal a guard
// returns instead of a user id. The handler must stop and issue the
// redirect; it must not proceed to guarded logic.
type RedirectError struct {
	// Location is the redirect target, including any query.
	Location string

	// Reason is the taxonomy error that caused the redirect.
	Reason error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s: %v", e.Location, e.Reason)
}

// Unwrap exposes the underlying taxonomy error to errors.Is.
func (e *RedirectError) Unwrap() error {
	return e.Reason
}

// RequireUser enforces "must be logged in". When the session carries no
// user id the caller receives a redirect to the login page with the
// original path preserved, so login can return the user where they were.
func RequireUser(sess *session.Session, currentPath string) (string, error) {
	id := sess.UserID()
	if id == "" {
		q := url.Values{}
		q.Set("redirectTo", currentPath)
		return "", &RedirectError{
			Location: LoginPath + "?" + q.Encode(),
			Reason:   oauth.ErrUnauthenticated,
		}
	}
	return id, nil
}

// RequireAuthorizedUser enforces the stronger precondition guarding the
// main data-entry workflow: an authenticated user holding both an access
// and a refresh token, with a linked spreadsheet. "Who are you" and "may
// you reach the spreadsheet" fail toward different targets; collapsing
// them would send unauthenticated users to the connect page.
func RequireAuthorizedUser(sess *session.Session, u *user.User, currentPath string) (string, error) {
	id, err := RequireUser(sess, currentPath)
	if err != nil {
		return "", err
	}

	if !Authorized(sess, u) {
		logging.Debug("Gate", "User %s lacks spreadsheet authorization, redirecting to connect", logging.TruncateUserID(id))
		return "", &RedirectError{
			Location: ConnectPath,
			Reason:   oauth.ErrNotAuthorized,
		}
	}
	return id, nil
}

// Authorized reports whether the session and user record together permit
// the data-entry workflow: both tokens present and a spreadsheet linked.
func Authorized(sess *session.Session, u *user.User) bool {
	b := sess.TokenBundle()
	return b != nil && b.AccessToken != "" && b.RefreshToken != "" &&
		u != nil && u.SpreadsheetID != ""
}
