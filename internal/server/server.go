// package server contains the HTTP boundary of the mood service: routing, middleware and handlers
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodmix/internal/shared"
	"github.com/desertthunder/moodmix/internal/tasks"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows the paths it serves.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Exchanger trades an OAuth2 authorization code for the provider's token payload.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (map[string]any, error)
}

// Server serves the mood API on top of a [tasks.Engine].
type Server struct {
	config    *shared.Config
	engine    tasks.Engine
	exchanger Exchanger
	logger    *log.Logger
	router    chi.Router
}

// NewServer wires routes and middleware. A nil logger defaults to [shared.NewLogger].
func NewServer(cfg *shared.Config, engine tasks.Engine, exchanger Exchanger, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = shared.DefaultConfig()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &Server{
		config:    cfg,
		engine:    engine,
		exchanger: exchanger,
		logger:    shared.WithLogger(logger, "component", "server"),
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(
		RequestID,
		Recoverer(s.logger),
		RequestLogger(s.logger),
		CORS(s.config.Server.AllowedOrigins),
	)
	// X-Forwarded-For and X-Real-IP are client-controlled unless a proxy rewrites them.
	if s.config.Server.TrustProxy {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(RateLimit(s.config.Server.RateLimit, s.config.Server.RateBurst))

	s.router.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", apiHandler(s.health))
		r.Method(http.MethodGet, "/openapi", apiHandler(serveOpenAPIYAML))
		r.Method(http.MethodGet, "/openapi.json", apiHandler(serveOpenAPIJSON))

		r.Method(http.MethodPost, "/emotion/recommendations", apiHandler(s.recommend))
		r.Method(http.MethodPost, "/user/preferences", apiHandler(s.savePreferences))

		r.Route("/spotify", func(r chi.Router) {
			r.Method(http.MethodGet, "/client-id", apiHandler(s.clientID))
			r.Method(http.MethodGet, "/devices", apiHandler(s.devices))
			r.Method(http.MethodPost, "/play", apiHandler(s.play))
			r.Method(http.MethodPost, "/pause", apiHandler(s.pause))
			r.Method(http.MethodPost, "/exchange-token", apiHandler(s.exchangeToken))
		})
	})

	s.router.NotFound(apiHandler(func(w http.ResponseWriter, r *http.Request) error {
		return &Error{Status: http.StatusNotFound, Message: "Route not found"}
	}).ServeHTTP)
	s.router.MethodNotAllowed(apiHandler(func(w http.ResponseWriter, r *http.Request) error {
		return &Error{Status: http.StatusMethodNotAllowed, Message: "Method not allowed"}
	}).ServeHTTP)
}

// ServeHTTP implements [http.Handler] for the whole API.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// Mount registers every route of h on r for all methods.
func Mount(r chi.Router, h Handler) {
	for _, route := range h.Routes() {
		r.Handle(route, h)
	}
}
