package mcp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for one Fess knowledge domain.
type Server struct {
	ports  *Ports
	cfg    domain.Config
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(cfg domain.Config, ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		cfg:   cfg,
	}

	impl := &mcp.Implementation{
		Name:    cfg.ServerName(),
		Version: Version,
	}
	s.server = mcp.NewServer(impl, &mcp.ServerOptions{
		Instructions: s.instructions(),
	})

	s.registerTools()
	s.registerResources()

	return s, nil
}

// toolName prefixes name with the domain tool namespace.
func (s *Server) toolName(name string) string {
	return "fess_" + s.cfg.Domain.ID + "_" + name
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP handler serving the streamable transport at the
// configured path, plus a liveness probe at /healthz.
func (s *Server) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, &mcp.StreamableHTTPOptions{Stateless: true})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		if token := s.cfg.Security.HTTPAuthToken; token != "" {
			r.Use(bearerAuth(token))
		}
		r.Handle(s.cfg.HTTPTransport.Path, streamable)
	})

	return r
}

// Addr returns the listen address for the HTTP transport. A port of 0
// falls back to the configured port.
func (s *Server) Addr(port int) (string, error) {
	h := s.cfg.HTTPTransport
	if !h.IsLoopbackBind() && !s.cfg.Security.AllowNonLocalhostBind {
		return "", fmt.Errorf("%w (bindAddress %s)", ErrNonLocalBind, h.BindAddress)
	}
	if port == 0 {
		port = h.EffectivePort()
	}
	return net.JoinHostPort(h.BindAddress, strconv.Itoa(port)), nil
}

// RunHTTP starts the MCP server over streamable HTTP.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, port int) error {
	addr, err := s.Addr(port)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("Starting HTTP server on %s%s", addr, s.cfg.HTTPTransport.Path)
	err = httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func bearerAuth(token string) func(http.Handler) http.Handler {
	expected := []byte("Bearer " + token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(strings.TrimSpace(r.Header.Get("Authorization")))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="mcp-fess"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("%s %s -> %d (%s) [%s]", r.Method, r.URL.Path, ww.Status(),
			time.Since(start).Round(time.Millisecond), middleware.GetReqID(r.Context()))
	})
}
