package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipeshare/backend/internal/api"
	"github.com/recipeshare/backend/internal/metrics"
	"github.com/recipeshare/backend/internal/middleware"
)

// Handlers groups the endpoint handlers served by the router
type Handlers struct {
	Auth        *api.AuthHandler
	Recipes     *api.RecipeHandler
	Ingredients *api.IngredientHandler
	Upvotes     *api.UpvoteHandler
	Health      *api.HealthHandler
}

// Options carries the router settings that do not come from handlers
type Options struct {
	CORSAllowedOrigins []string

	// MediaRoot and MediaURL serve locally stored images; leave MediaRoot empty to disable
	MediaRoot string
	MediaURL  string

	RecipeCreationLimiter *middleware.RateLimiter
	UpvoteLimiter         *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, validator middleware.TokenValidator, opts Options, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics())
	if len(opts.CORSAllowedOrigins) > 0 {
		router.Use(middleware.CORS(opts.CORSAllowedOrigins))
	}

	router.GET("/health", h.Health.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	if opts.MediaRoot != "" {
		router.Static(strings.TrimSuffix(opts.MediaURL, "/"), opts.MediaRoot)
	}

	auth := middleware.AuthMiddleware(validator)
	creationLimit := limiter(opts.RecipeCreationLimiter)
	upvoteLimit := limiter(opts.UpvoteLimiter)

	// Accounts
	router.POST("/register/", h.Auth.Register)
	router.POST("/login/", h.Auth.Login)

	// Recipes
	router.GET("/recipes/", h.Recipes.ListRecipes)
	router.POST("/recipes/", auth, creationLimit, h.Recipes.CreateRecipe)
	router.GET("/recipes/:id/", h.Recipes.GetRecipe)
	router.PUT("/recipes/:id/", auth, h.Recipes.UpdateRecipe)
	router.PATCH("/recipes/:id/", auth, h.Recipes.PatchRecipe)
	router.DELETE("/recipes/:id/", auth, h.Recipes.DeleteRecipe)
	router.POST("/recipes/:id/upvote/", auth, upvoteLimit, h.Upvotes.UpvoteRecipe)

	// Ingredients
	router.GET("/ingredients/", h.Ingredients.ListIngredients)
	router.POST("/ingredients/", h.Ingredients.CreateIngredient)

	return router
}

func limiter(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.RateLimitMiddleware()
}
