package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(recipesCreated)
	RecordRecipeCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(recipesCreated))

	before = testutil.ToFloat64(rateLimited.WithLabelValues("upvote"))
	RecordRateLimited("upvote")
	assert.Equal(t, before+1, testutil.ToFloat64(rateLimited.WithLabelValues("upvote")))
}

func TestRequestStarted(t *testing.T) {
	done := RequestStarted(http.MethodGet)
	assert.Equal(t, float64(1), testutil.ToFloat64(httpInFlight))
	done("/recipes/:id/", http.StatusOK)
	assert.Equal(t, float64(0), testutil.ToFloat64(httpInFlight))
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/recipes/:id/", "200")))
}

func TestHandlerServesRegistry(t *testing.T) {
	RecordRegistration()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "recipeshare_registrations_total")
}
