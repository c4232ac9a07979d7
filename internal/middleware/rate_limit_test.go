package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recipeshare/backend/internal/testhelpers"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/recipes/",
		func(c *gin.Context) { c.Set(UserIDKey, uint(1)); c.Next() },
		rl.RateLimitMiddleware(),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)
	return r
}

func post(r http.Handler) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/recipes/", nil))
	return w
}

func TestRateLimiterDisabledWithoutRedis(t *testing.T) {
	r := newLimitedRouter(NewRecipeCreationRateLimiter(nil, 1, zap.NewNop()))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusCreated, post(r).Code)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	w := post(newLimitedRouter(NewUpvoteRateLimiter(client, 1, zap.NewNop())))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimiterWithRedis(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	rl := NewRecipeCreationRateLimiter(client, 2, zap.NewNop())
	r := newLimitedRouter(rl)

	first := post(r)
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	require.Equal(t, http.StatusCreated, post(r).Code)

	third := post(r)
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
}
