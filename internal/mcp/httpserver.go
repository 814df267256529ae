package mcp

// In this file: the multi-client HTTP binding.  A chi router fronts the
// streamable MCP transport with a health check, a shared-secret check and
// explicit session teardown; all transport-level failures map to JSON error
// responses instead of crashing the listener.

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	mcpsrv "github.com/mark3labs/mcp-go/server"
)

// AuthMode selects how the shared secret is presented by clients.
type AuthMode string

const (
	// AuthBearer expects "Authorization: Bearer <secret>" on /mcp.
	AuthBearer AuthMode = "bearer"
	// AuthPath expects the secret embedded in the path: /mcp/<secret>.
	// Used by deployments whose clients cannot set custom headers.
	AuthPath AuthMode = "path"
)

// HTTPConfig configures the multi-client HTTP binding.
type HTTPConfig struct {
	// Addr is the host:port to listen on.
	Addr string `validate:"required"`
	// Secret is the shared secret protecting the MCP endpoint.
	Secret string `validate:"required"`
	// AuthMode selects the deployment variant; empty means AuthBearer.
	AuthMode AuthMode `validate:"omitempty,oneof=bearer path"`
}

var cfgValidate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration.  A missing secret fails closed before
// the listener starts.
func (c *HTTPConfig) Validate() error {
	var vErr validator.ValidationErrors
	if err := cfgValidate.Struct(c); err != nil {
		if errors.As(err, &vErr) {
			return fmt.Errorf("http config validation: %v", vErr)
		}
		return err
	}
	return nil
}

// ServeHTTP runs the MCP server as a streamable HTTP server on cfg.Addr
// until ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, cfg HTTPConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	handler, _ := s.httpHandler(cfg)

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: handler}
	s.logger.InfoContext(ctx, "mcp server listening on http",
		"addr", cfg.Addr, "auth", effAuthMode(cfg.AuthMode))

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		if err := httpSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func effAuthMode(m AuthMode) AuthMode {
	if m == "" {
		return AuthBearer
	}
	return m
}

// httpHandler builds the router and the session registry behind it.  Split
// from ServeHTTP so the transport surface is testable without a listener.
func (s *Server) httpHandler(cfg HTTPConfig) (http.Handler, *sessionRegistry) {
	sessions := newSessionRegistry(s.logger)
	streamable := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithSessionIdManager(sessions),
	)
	mcpHandler := s.sessionAware(sessions, streamable)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", handleHealth)
	switch effAuthMode(cfg.AuthMode) {
	case AuthPath:
		r.Handle("/mcp/{secret}", requirePathSecret(cfg.Secret, mcpHandler))
	default:
		r.Handle("/mcp", requireBearer(cfg.Secret, mcpHandler))
	}
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	})
	return r, sessions
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"server": serverName,
	})
}

// sessionAware intercepts session teardown so removal semantics live in the
// owned registry: DELETE with an unknown or missing session id is not-found,
// a known id is removed and behaves as unknown from then on.  Everything
// else is delegated to the streamable transport, which validates session
// continuation ids against the same registry.
func (s *Server) sessionAware(reg *sessionRegistry, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			id := r.Header.Get(headerSessionID)
			if id == "" || !reg.remove(id) {
				writeJSONError(w, http.StatusNotFound, "unknown session")
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireBearer rejects requests that do not carry the shared secret as a
// bearer token.  Rejection happens before any session work.
func requireBearer(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(tok), []byte(secret)) != 1 {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requirePathSecret checks the path-embedded secret and rewrites the request
// to the canonical /mcp path before delegating.
func requirePathSecret(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := chi.URLParam(r, "secret")
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/mcp"
		next.ServeHTTP(w, r2)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
