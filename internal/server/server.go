package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/api"
	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/router"
	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New wires services, handlers and routes. redisClient may be nil, which
// disables rate limiting.
func New(cfg *config.Config, db *gorm.DB, images storage.ImageStore, redisClient *redis.Client, log *zap.Logger) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)
	recipeService := service.NewRecipeService(db, images, log)

	handlers := router.Handlers{
		Auth:        api.NewAuthHandler(authService, log),
		Recipes:     api.NewRecipeHandler(recipeService, log),
		Ingredients: api.NewIngredientHandler(service.NewIngredientService(db), log),
		Upvotes:     api.NewUpvoteHandler(service.NewUpvoteService(db), log),
		Health:      api.NewHealthHandler(db, log),
	}

	opts := router.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if local, ok := images.(*storage.LocalStore); ok {
		opts.MediaRoot = local.Root
		opts.MediaURL = local.BaseURL
	}
	if redisClient != nil {
		opts.RecipeCreationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RecipeCreationPerHour, log)
		opts.UpvoteLimiter = middleware.NewUpvoteRateLimiter(redisClient, cfg.UpvotesPerHour, log)
	}

	engine := router.SetupRouter(handlers, authService, opts, log)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 15 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		log: log,
	}
}

// Handler exposes the routed engine
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
