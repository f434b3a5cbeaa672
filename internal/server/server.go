// Package server wires the application together: it builds the services on
// top of a *sqldb.DB, mounts the handlers on a chi router behind the shared
// middleware stack, and runs the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/sakif/news-api/internal/config"
	"github.com/sakif/news-api/internal/handler"
	"github.com/sakif/news-api/internal/middleware"
	"github.com/sakif/news-api/internal/repository/sqldb"
	"github.com/sakif/news-api/internal/service"
)

// Services groups what the handlers depend on.
type Services struct {
	Articles handler.ArticleService
	Comments handler.CommentService
	Topics   handler.TopicService
	Users    handler.UserService
}

// NewServices builds the service layer over db.
func NewServices(db *sqldb.DB, logger *slog.Logger) Services {
	return Services{
		Articles: service.NewArticleService(db.Articles(), logger),
		Comments: service.NewCommentService(db.Comments(), logger),
		Topics:   service.NewTopicService(db.Topics(), logger),
		Users:    service.NewUserService(db.Users()),
	}
}

// NewRouter mounts every route of the API.
//
//	GET    /api
//	GET    /api/topics
//	POST   /api/topics
//	GET    /api/articles
//	POST   /api/articles
//	GET    /api/articles/{article_id}
//	PATCH  /api/articles/{article_id}
//	DELETE /api/articles/{article_id}
//	GET    /api/articles/{article_id}/comments
//	POST   /api/articles/{article_id}/comments
//	PATCH  /api/comments/{comment_id}
//	DELETE /api/comments/{comment_id}
//	GET    /api/users
//	GET    /api/users/{username}
func NewRouter(cfg config.ServerConfig, logger *slog.Logger, svc Services) (*chi.Mux, error) {
	api, err := handler.NewAPIHandler(logger)
	if err != nil {
		return nil, err
	}
	articles := handler.NewArticleHandler(svc.Articles, svc.Comments, logger)
	comments := handler.NewCommentHandler(svc.Comments, logger)
	topics := handler.NewTopicHandler(svc.Topics, logger)
	users := handler.NewUserHandler(svc.Users, logger)

	r := chi.NewRouter()

	// Order matters: the request id must exist before anything logs, and
	// Recoverer must sit inside Logger so recovered panics are logged as 500s.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(handler.NotFound(logger))
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", api.HandleEndpoints)

		r.Route("/topics", func(r chi.Router) {
			r.Get("/", topics.HandleList)
			r.Post("/", topics.HandleCreate)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articles.HandleList)
			r.Post("/", articles.HandleCreate)

			r.Route("/{article_id}", func(r chi.Router) {
				r.Get("/", articles.HandleGet)
				r.Patch("/", articles.HandleVote)
				r.Delete("/", articles.HandleDelete)
				r.Get("/comments", articles.HandleListComments)
				r.Post("/comments", articles.HandleCreateComment)
			})
		})

		r.Route("/comments/{comment_id}", func(r chi.Router) {
			r.Patch("/", comments.HandleVote)
			r.Delete("/", comments.HandleDelete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", users.HandleList)
			r.Get("/{username}", users.HandleGet)
		})
	})

	return r, nil
}

// Server is the HTTP server and the database it owns.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqldb.DB
}

// New wires the services and routes over db. The server takes ownership of
// db and closes it when Start returns.
func New(cfg config.Config, logger *slog.Logger, db *sqldb.DB) (*Server, error) {
	router, err := NewRouter(cfg.Server, logger, NewServices(db, logger))
	if err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return &Server{
		router: router,
		config: cfg,
		logger: logger,
		db:     db,
	}, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to server.shutdown_timeout and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.config.Server.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d/api", s.config.Server.Port)),
			slog.String("driver", string(s.db.Driver())),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
