package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jub0bs/cors"

	"github.com/petly-community/petly/internal/logger"
	"github.com/petly-community/petly/internal/ui/client"
	"github.com/petly-community/petly/internal/ui/config"
	"github.com/petly-community/petly/internal/ui/handlers"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/middleware"
	"github.com/petly-community/petly/internal/ui/responses"
	"github.com/petly-community/petly/internal/ui/session"
	"github.com/petly-community/petly/internal/ui/types"
	"github.com/petly-community/petly/internal/version"
)

const (
	// ServerShutdownTimeout is the timeout for graceful server shutdown
	ServerShutdownTimeout = 10 * time.Second

	// RequestTimeout bounds every ui-api request, including the calls to the petly API
	RequestTimeout = 60 * time.Second

	// MaxRequestSize is the largest accepted form submission
	MaxRequestSize int64 = 64 * 1024

	CORSMaxAgeInSeconds = 3600
)

type Server struct {
	router   *chi.Mux
	config   *config.Config
	logger   *slog.Logger
	session  *session.Store
	messages *i18n.Messages
	cors     *cors.Middleware
	csrf     func(http.Handler) http.Handler
	handlers *handlers.HandlerService
}

// NewServer creates the ui-api server. The session store must already be initialized
func NewServer(cfg *config.Config, store *session.Store, apiClient *client.Client, messages *i18n.Messages, logger *slog.Logger) (*Server, error) {
	corsMiddleware, err := newCORSMiddleware(cfg.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	csrf, err := middleware.CrossOriginProtection(cfg.AllowedOrigins, messages)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		session:  store,
		messages: messages,
		cors:     corsMiddleware,
		csrf:     csrf,
		handlers: &handlers.HandlerService{
			Session:   store,
			ApiClient: apiClient,
			Messages:  messages,
		},
	}

	s.setupMiddleware()
	s.registerRoutes()
	return s, nil
}

// newCORSMiddleware returns nil when no cross-origin frontend is configured
func newCORSMiddleware(allowedOrigins []string) (*cors.Middleware, error) {
	if len(allowedOrigins) == 0 {
		return nil, nil
	}

	corsConfig := cors.Config{
		Origins: allowedOrigins,
		Methods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		RequestHeaders: []string{
			"Accept",
			"Content-Type",
			middleware.RequestedWithHeader,
		},
		MaxAgeInSeconds: CORSMaxAgeInSeconds,
	}

	corsMiddleware, err := cors.NewMiddleware(corsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create CORS middleware: %w", err)
	}
	return corsMiddleware, nil
}

// Handler returns the root handler, used by tests and when embedding the server
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(RequestTimeout))
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	if s.cors != nil {
		s.router.Use(middleware.CORS(s.cors))
	}
}

func (s *Server) registerRoutes() {
	h := s.handlers
	requireAuth := middleware.RequireAuth(s.session, s.messages)
	requireAdmin := middleware.RequireRole(s.session, s.messages, types.RoleAdmin)

	s.router.Route("/health", func(r chi.Router) {
		r.Get("/live", func(w http.ResponseWriter, r *http.Request) {
			responses.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})
	s.router.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		responses.RespondWithJSON(w, http.StatusOK, version.Get())
	})

	s.router.Route("/ui-api", func(r chi.Router) {
		r.Use(s.csrf)
		r.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst, s.messages))
		r.Use(middleware.RequestSizeLimit(MaxRequestSize, s.messages))

		// public routes
		r.Get("/session", h.HandleSession)
		r.Post("/login", h.HandleLogin)
		r.Post("/register", h.HandleRegister)
		r.Post("/logout", h.HandleLogout)

		r.Get("/pets", h.HandleListPets)
		r.Get("/pets/{id}", h.HandleGetPet)
		r.Get("/events", h.HandleListEvents)
		r.Get("/events/{id}", h.HandleGetEvent)

		// the token is sent when there is one
		r.Post("/reports", h.HandleCreateReport)

		// authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/dashboard", h.HandleDashboard)

			r.Post("/pets", h.HandleCreatePet)
			r.Put("/pets/{id}", h.HandleUpdatePet)
			r.Delete("/pets/{id}", h.HandleDeletePet)

			r.Post("/events", h.HandleCreateEvent)
			r.Put("/events/{id}", h.HandleUpdateEvent)
			r.Delete("/events/{id}", h.HandleDeleteEvent)

			r.Get("/adoptions", h.HandleListAdoptions)
			r.Post("/adoptions", h.HandleCreateAdoption)
			r.Patch("/adoptions/{id}", h.HandleUpdateAdoption)
			r.Delete("/adoptions/{id}", h.HandleDeleteAdoption)

			r.Get("/reports", h.HandleListReports)
			r.Get("/reports/{id}", h.HandleGetReport)
			r.Patch("/reports/{id}", h.HandleUpdateReport)

			// admin routes
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Patch("/events/{id}/approve", h.HandleApproveEvent)

				r.Get("/users", h.HandleListUsers)
				r.Get("/users/{id}", h.HandleGetUser)
				r.Put("/users/{id}", h.HandleUpdateUser)
				r.Delete("/users/{id}", h.HandleDeleteUser)
			})
		})
	})
}

// Start runs the server until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := s.config.ListenAddr()

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("petly ui-api listening", slog.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down ui-api server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
