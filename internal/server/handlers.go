package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sheetlog/internal/auth"
	"sheetlog/internal/oauth"
	"sheetlog/internal/session"
	"sheetlog/internal/sheets"
	"sheetlog/pkg/logging"
)

const (
	// defaultSheet is the tab read when no tab is named in the request.
	defaultSheet = "Sheet1"
	// defaultRange covers the columns the entry view works with.
	defaultRange = "A:Z"
)

// handleIndex short-circuits fully set-up users straight to the entry
// view. Everyone else lands on the login page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sess := s.sessions.Open(r)

	if id := sess.UserID(); id != "" {
		u, err := s.users.Find(r.Context(), id)
		if err == nil && auth.Authorized(sess, u) {
			http.Redirect(w, r, auth.EntryPath, http.StatusFound)
			return
		}
	}
	http.Redirect(w, r, auth.LoginPath, http.StatusFound)
}

// handleLogin serves the login form and processes submissions. A
// redirectTo query parameter set by the gate returns the user to the
// page that demanded login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writePage(w, loginPage)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		u, err := s.users.Authenticate(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
		if err != nil {
			logging.Debug("Server", "Login failed: %v", err)
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}

		sess := s.sessions.Open(r)
		sess.SetUserID(u.ID)
		s.commitSession(w, sess)

		target := safeRedirectTarget(r.FormValue("redirectTo"))
		http.Redirect(w, r, target, http.StatusSeeOther)
	default:
		methodNotAllowed(w)
	}
}

// handleRegister creates an account and logs the new user in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writePage(w, registerPage)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		u, err := s.users.Register(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
		if err != nil {
			logging.Debug("Server", "Registration failed: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sess := s.sessions.Open(r)
		sess.SetUserID(u.ID)
		s.commitSession(w, sess)
		http.Redirect(w, r, auth.ConnectPath, http.StatusSeeOther)
	default:
		methodNotAllowed(w)
	}
}

// handleLogout destroys the session cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	http.SetCookie(w, s.sessions.Destroy())
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}

// handleConnect shows the Google authorization entry point. The link
// target is the provider authorize URL built by the flow. Users who
// already hold both tokens and a linked spreadsheet have nothing to
// connect and go straight to the entry view.
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Open(r)
	userID, err := auth.RequireUser(sess, r.URL.Path)
	if err != nil {
		s.redirectForGuard(w, r, sess, err)
		return
	}

	if u, err := s.users.Find(r.Context(), userID); err == nil && auth.Authorized(sess, u) {
		http.Redirect(w, r, auth.EntryPath, http.StatusFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writePage(w, fmt.Sprintf(connectPage, s.flow.AuthCodeURL()))
	case http.MethodPost:
		http.Redirect(w, r, s.flow.AuthCodeURL(), http.StatusSeeOther)
	default:
		methodNotAllowed(w)
	}
}

// handleGoogleCallback finishes the authorization flow. Success lands on
// the sheet-linking page; any failure, including a denied consent screen
// with no code, lands back on connect.
func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Open(r)
	code := r.URL.Query().Get("code")

	bundle, err := s.flow.CompleteAuthorization(r.Context(), sess, code)
	s.commitSession(w, sess)
	if err != nil || bundle == nil {
		if err != nil {
			logging.Warn("Server", "Authorization callback failed: %v", err)
		}
		http.Redirect(w, r, auth.ConnectPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/sheet", http.StatusSeeOther)
}

// handleSheet links a spreadsheet to the account. Users without Google
// authorization go back to connect; users who already linked go straight
// to entry.
func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Open(r)
	userID, err := auth.RequireUser(sess, r.URL.Path)
	if err != nil {
		s.redirectForGuard(w, r, sess, err)
		return
	}

	b := sess.TokenBundle()
	if b == nil || b.AccessToken == "" {
		http.Redirect(w, r, auth.ConnectPath, http.StatusFound)
		return
	}

	u, err := s.users.Find(r.Context(), userID)
	if err != nil {
		http.Error(w, "account not found", http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if u.SpreadsheetID != "" {
			http.Redirect(w, r, auth.EntryPath, http.StatusFound)
			return
		}
		writePage(w, sheetPage)
	case http.MethodPost:
		s.linkSpreadsheet(w, r, sess, userID)
	default:
		methodNotAllowed(w)
	}
}

// linkSpreadsheet validates the pasted URL, stores the id and seeds the
// weekday header rows as one explicit batch.
func (s *Server) linkSpreadsheet(w http.ResponseWriter, r *http.Request, sess *session.Session, userID string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	id, err := sheets.ExtractSpreadsheetID(r.PostFormValue("link"))
	if err != nil {
		http.Error(w, linkErrorMessage(err), http.StatusBadRequest)
		return
	}

	cred, err := s.supplier.CredentialFor(r.Context(), sess)
	if err != nil {
		s.credentialFailure(w, r, sess, err)
		return
	}

	if err := s.users.LinkSpreadsheet(r.Context(), userID, id); err != nil {
		// A refresh may have replaced the bundle; keep it even though
		// linking failed.
		s.commitSession(w, sess)
		http.Error(w, "failed to link spreadsheet", http.StatusInternalServerError)
		return
	}

	results, _ := sheets.ApplyBatch(r.Context(), s.sheets, cred, id, sheets.SeedWrites(time.Now()))
	s.commitSession(w, sess)
	if sheets.Failed(results) {
		writeJSON(w, http.StatusMultiStatus, seedReport(id, results))
		return
	}
	http.Redirect(w, r, auth.EntryPath, http.StatusSeeOther)
}

// handleEntry is the main data workflow: read the linked sheet on GET,
// write values on POST. Both paths go through the credential supplier.
func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Open(r)
	userID, err := auth.RequireUser(sess, r.URL.Path)
	if err != nil {
		s.redirectForGuard(w, r, sess, err)
		return
	}

	u, err := s.users.Find(r.Context(), userID)
	if err != nil {
		http.Error(w, "account not found", http.StatusInternalServerError)
		return
	}
	if _, err := auth.RequireAuthorizedUser(sess, u, r.URL.Path); err != nil {
		s.redirectForGuard(w, r, sess, err)
		return
	}

	cred, err := s.supplier.CredentialFor(r.Context(), sess)
	if err != nil {
		s.credentialFailure(w, r, sess, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		sheet := r.URL.Query().Get("sheet")
		if sheet == "" {
			sheet = defaultSheet
		}
		titles, err := s.sheets.SheetTitles(r.Context(), cred, u.SpreadsheetID)
		if err != nil {
			s.commitSession(w, sess)
			s.sheetFailure(w, err)
			return
		}
		values, err := s.sheets.Values(r.Context(), cred, u.SpreadsheetID, sheet+"!"+defaultRange)
		s.commitSession(w, sess)
		if err != nil {
			s.sheetFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sheet": sheet, "tabs": titles, "values": values})
	case http.MethodPost:
		var req struct {
			Range  string     `json:"range"`
			Values [][]string `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		if req.Range == "" {
			http.Error(w, "range is required", http.StatusBadRequest)
			return
		}
		err := s.sheets.Update(r.Context(), cred, u.SpreadsheetID, req.Range, req.Values)
		s.commitSession(w, sess)
		if err != nil {
			s.sheetFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"updated": req.Range})
	default:
		methodNotAllowed(w)
	}
}

// credentialFailure maps supplier errors onto the flow pages. A dead
// credential sends the user back through Google; a provider outage is a
// 502 that keeps the stored tokens for a later retry.
func (s *Server) credentialFailure(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) {
	s.commitSession(w, sess)
	switch {
	case errors.Is(err, oauth.ErrNotAuthorized), errors.Is(err, oauth.ErrReauthorizationRequired):
		http.Redirect(w, r, auth.ConnectPath, http.StatusSeeOther)
	case errors.Is(err, oauth.ErrUpstreamUnavailable):
		http.Error(w, "authorization provider unavailable", http.StatusBadGateway)
	default:
		http.Error(w, "authorization failed", http.StatusInternalServerError)
	}
}

// sheetFailure maps spreadsheet API errors to response codes. These are
// distinct from credential errors and never clear the session.
func (s *Server) sheetFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sheets.ErrSpreadsheetNotFound):
		http.Error(w, "spreadsheet not found", http.StatusNotFound)
	case errors.Is(err, sheets.ErrQuotaExceeded):
		http.Error(w, "spreadsheet API quota exceeded", http.StatusTooManyRequests)
	case errors.Is(err, sheets.ErrInvalidRange):
		http.Error(w, "invalid range", http.StatusBadRequest)
	default:
		logging.Error("Server", err, "Spreadsheet call failed")
		http.Error(w, "spreadsheet unavailable", http.StatusBadGateway)
	}
}

func linkErrorMessage(err error) string {
	switch {
	case errors.Is(err, sheets.ErrTemplateLink):
		return "You must duplicate the spreadsheet to your own Google Drive"
	default:
		return "You must paste the entire URL of the spreadsheet"
	}
}

// seedReport summarizes a partially failed seeding batch for the client.
func seedReport(spreadsheetID string, results []sheets.WriteResult) map[string]any {
	failed := make([]string, 0)
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res.Range)
		}
	}
	return map[string]any{
		"spreadsheetId": spreadsheetID,
		"linked":        true,
		"failedRanges":  failed,
	}
}

// safeRedirectTarget keeps post-login redirects on this origin.
func safeRedirectTarget(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/sheet"
	}
	return target
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writePage(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}
