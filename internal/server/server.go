// Package server wires the HTTP transport: router, handlers and the
// response envelope.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/uptrace/bun"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/authz"
	"github.com/quillpress/quillpress/internal/config"
	"github.com/quillpress/quillpress/internal/middleware"
	"github.com/quillpress/quillpress/internal/repository"
	articlesvc "github.com/quillpress/quillpress/internal/services/article"
	authsvc "github.com/quillpress/quillpress/internal/services/auth"
	engagementsvc "github.com/quillpress/quillpress/internal/services/engagement"
	taxonomysvc "github.com/quillpress/quillpress/internal/services/taxonomy"
)

// Server bundles the services behind the HTTP API.
type Server struct {
	db     *bun.DB
	logger *slog.Logger

	tokens   *auth.TokenService
	resolver *auth.PrincipalResolver

	auth       *authsvc.Service
	articles   *articlesvc.Service
	taxonomy   *taxonomysvc.Service
	engagement *engagementsvc.Service
}

// New assembles repositories, services and the authentication core on top
// of the given database.
func New(cfg *config.Config, db *bun.DB, logger *slog.Logger) *Server {
	users := repository.NewBunUserRepository(db)
	articles := repository.NewBunArticleRepository(db)
	categories := repository.NewBunCategoryRepository(db)
	tags := repository.NewBunTagRepository(db)
	comments := repository.NewBunCommentRepository(db)
	likes := repository.NewBunLikeRepository(db)

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)

	return &Server{
		db:         db,
		logger:     logger,
		tokens:     tokens,
		resolver:   auth.NewPrincipalResolver(users),
		auth:       authsvc.NewService(users, tokens, logger),
		articles:   articlesvc.NewService(articles, categories, tags, users),
		taxonomy:   taxonomysvc.NewService(categories, tags),
		engagement: engagementsvc.NewService(articles, comments, likes),
	}
}

// Router builds the chi router with the full middleware chain.
func (s *Server) Router() (http.Handler, error) {
	policy, err := authz.NewPolicy(authz.DefaultRoutes)
	if err != nil {
		return nil, err
	}

	authn := middleware.NewAuthenticator(s.tokens, s.resolver, s.logger)
	gate := middleware.NewAuthorizationGate(policy, func(w http.ResponseWriter, r *http.Request, err error) {
		RespondError(w, err)
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(authn.Handler)
	r.Use(gate.Handler)

	r.Get("/healthz", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
	})

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", s.handleListArticles)
		r.Post("/", s.handleCreateArticle)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleArticleDetail)
			r.Put("/", s.handleUpdateArticle)
			r.Delete("/", s.handleDeleteArticle)
			r.Put("/publish", s.handlePublishArticle)
			r.Put("/offline", s.handleOfflineArticle)
			r.Put("/top", s.handleSetTop)
			r.Put("/featured", s.handleSetFeatured)
			r.Get("/comments", s.handleListComments)
			r.Post("/comments", s.handleAddComment)
			r.Put("/like", s.handleToggleLike)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.handleListCategories)
		r.Post("/", s.handleCreateCategory)
		r.Put("/{id}", s.handleUpdateCategory)
		r.Delete("/{id}", s.handleDeleteCategory)
	})

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", s.handleListTags)
		r.Post("/", s.handleCreateTag)
		r.Put("/{id}", s.handleUpdateTag)
		r.Delete("/{id}", s.handleDeleteTag)
	})

	r.Delete("/comments/{id}", s.handleDeleteComment)

	return r, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check failed", "err", err)
		RespondError(w, err)
		return
	}
	RespondOK(w, map[string]string{"status": "ok"})
}
