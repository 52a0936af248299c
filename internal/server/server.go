package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sheetlog/internal/auth"
	"sheetlog/internal/config"
	"sheetlog/internal/oauth"
	"sheetlog/internal/session"
	"sheetlog/internal/sheets"
	"sheetlog/internal/user"
	"sheetlog/pkg/logging"
)

const (
	// DefaultReadHeaderTimeout is the timeout for reading request headers.
	DefaultReadHeaderTimeout = 10 * time.Second
	// DefaultWriteTimeout is the timeout for writing responses.
	DefaultWriteTimeout = 30 * time.Second
	// DefaultIdleTimeout is the idle timeout for keepalive connections.
	DefaultIdleTimeout = 120 * time.Second
	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 15 * time.Second
)

// Server wires the session store, OAuth flow, credential supplier, user
// service and spreadsheet collaborator behind an HTTP mux.
type Server struct {
	cfg        *config.Config
	sessions   *session.Store
	flow       *oauth.Flow
	supplier   *oauth.Supplier
	users      *user.Service
	sheets     sheets.Service
	httpServer *http.Server
}

// New assembles a server from configuration. The database and all
// collaborators are created here.
func New(cfg *config.Config) (*Server, error) {
	store, err := user.NewSQLStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}

	sessions := session.NewStore(session.Options{
		Secret:        []byte(cfg.Session.Secret),
		CookieName:    cfg.Session.CookieName,
		MaxAgeSeconds: cfg.Session.MaxAgeSeconds,
		Secure:        cfg.IsProduction(),
	})

	flow := oauth.NewFlow(oauth.FlowOptions{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURI:  cfg.RedirectURI(),
	})

	return &Server{
		cfg:      cfg,
		sessions: sessions,
		flow:     flow,
		supplier: oauth.NewSupplier(flow),
		users:    user.NewService(store),
		sheets:   sheets.NewGoogleService(),
	}, nil
}

// Router builds the HTTP mux with all application routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/connect", s.handleConnect)
	mux.HandleFunc("/google/callback", s.handleGoogleCallback)
	mux.HandleFunc("/sheet", s.handleSheet)
	mux.HandleFunc("/entry", s.handleEntry)

	return securityHeaders(mux)
}

// Start runs the HTTP server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Server", "Listening on %s (%s)", addr, s.cfg.Environment)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	logging.Info("Server", "Shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// securityHeaders sets baseline response headers on every route.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

// redirectForGuard translates a guard failure into the HTTP redirect it
// carries. Returns false if err is not a guard redirect.
func (s *Server) redirectForGuard(w http.ResponseWriter, r *http.Request, sess *session.Session, err error) bool {
	var redir *auth.RedirectError
	if !errors.As(err, &redir) {
		return false
	}
	s.commitSession(w, sess)
	http.Redirect(w, r, redir.Location, http.StatusFound)
	return true
}

// commitSession writes the session cookie if the session was modified.
func (s *Server) commitSession(w http.ResponseWriter, sess *session.Session) {
	if sess == nil || !sess.Modified() {
		return
	}
	cookie, err := s.sessions.Commit(sess)
	if err != nil {
		logging.Error("Server", err, "Failed to commit session")
		return
	}
	http.SetCookie(w, cookie)
}
