package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/helixml/delve"
	apimiddleware "github.com/helixml/delve/infrastructure/api/middleware"
	v1 "github.com/helixml/delve/infrastructure/api/v1"
	"github.com/helixml/delve/infrastructure/api/web"
	mcpinternal "github.com/helixml/delve/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultRequestTimeout bounds /api/v1 requests when no timeout is set.
const DefaultRequestTimeout = 60 * time.Second

// APIServer serves the HTML view, the v1 API and MCP for a delve Client.
type APIServer struct {
	client      *delve.Client
	apiKeys     []string
	corsOrigins []string
	timeout     time.Duration
	version     string
	server      *Server
	router      chi.Router
	logger      *slog.Logger
}

// APIServerOption configures an APIServer.
type APIServerOption func(*APIServer)

// WithCORSOrigins allows cross-origin requests from origins.
func WithCORSOrigins(origins []string) APIServerOption {
	return func(a *APIServer) { a.corsOrigins = origins }
}

// WithRequestTimeout sets the /api/v1 request timeout.
func WithRequestTimeout(d time.Duration) APIServerOption {
	return func(a *APIServer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithVersion sets the version reported by /health and MCP.
func WithVersion(v string) APIServerOption {
	return func(a *APIServer) { a.version = v }
}

// NewAPIServer creates a new APIServer wired to the given Client.
// Mutating repository endpoints require one of apiKeys when any are set.
// The HTML view, line and navigation endpoints, health checks and MCP
// remain open.
func NewAPIServer(client *delve.Client, apiKeys []string, opts ...APIServerOption) *APIServer {
	a := &APIServer{
		client:  client,
		apiKeys: apiKeys,
		timeout: DefaultRequestTimeout,
		version: "dev",
		logger:  client.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router returns the chi router with all routes mounted.
func (a *APIServer) Router() chi.Router {
	if a.router == nil {
		a.router = chi.NewRouter()
		a.mountRoutes(a.router)
	}
	return a.router
}

func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client

	if len(a.corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   a.corsOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", apimiddleware.APIKeyHeader, apimiddleware.CorrelationIDHeader},
			ExposedHeaders:   []string{apimiddleware.CorrelationIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Get("/health", a.health)
	router.Get("/healthz", a.health)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/view/", http.StatusFound)
	})

	router.Mount("/view", web.NewRouter(c).Routes())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(a.timeout))

		// Navigation and expansion are read-only POSTs used by the HTML view.
		r.Mount("/lines", v1.NewLinesRouter(c).Routes())
		r.Mount("/fileview", v1.NewFileViewRouter(c).Routes())

		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.WriteProtectAuth(a.apiKeys))
			r.Mount("/repositories", v1.NewRepositoriesRouter(c).Routes())
		})
	})

	// MCP streams responses and keeps session state in headers, so it is
	// mounted outside the Timeout group.
	mcpSrv := mcpinternal.NewServer(c.Files, c.Repositories, a.version, a.logger)
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (a *APIServer) health(w http.ResponseWriter, r *http.Request) {
	if err := a.client.Ping(r.Context()); err != nil {
		a.logger.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
		apimiddleware.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Version: a.version})
		return
	}
	apimiddleware.WriteJSON(w, http.StatusOK, healthResponse{Status: "healthy", Version: a.version})
}

// ListenAndServe starts the HTTP server on addr and blocks until it stops.
func (a *APIServer) ListenAndServe(addr string) error {
	srv := NewServer(addr, a.logger)
	a.server = &srv
	srv.Router().Mount("/", a.Router())
	return srv.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the routes as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	return a.Router()
}
