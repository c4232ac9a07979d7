package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/storage"
	"github.com/recipeshare/backend/internal/testhelpers"
)

var pngImage = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	images *storage.LocalStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testhelpers.SetupTestDatabase(t)
	images, err := storage.NewLocalStore(t.TempDir(), "/media/")
	require.NoError(t, err)
	log := zap.NewNop()

	authService := service.NewAuthService(db, "test-secret-that-is-long-enough-123", time.Hour)
	authHandler := NewAuthHandler(authService, log)
	recipeHandler := NewRecipeHandler(service.NewRecipeService(db, images, log), log)
	ingredientHandler := NewIngredientHandler(service.NewIngredientService(db), log)
	upvoteHandler := NewUpvoteHandler(service.NewUpvoteService(db), log)
	healthHandler := NewHealthHandler(db, log)

	r := gin.New()
	auth := middleware.AuthMiddleware(authService)
	r.GET("/health", healthHandler.HealthCheck)
	r.POST("/register/", authHandler.Register)
	r.POST("/login/", authHandler.Login)
	r.GET("/recipes/", recipeHandler.ListRecipes)
	r.POST("/recipes/", auth, recipeHandler.CreateRecipe)
	r.GET("/recipes/:id/", recipeHandler.GetRecipe)
	r.PUT("/recipes/:id/", auth, recipeHandler.UpdateRecipe)
	r.PATCH("/recipes/:id/", auth, recipeHandler.PatchRecipe)
	r.DELETE("/recipes/:id/", auth, recipeHandler.DeleteRecipe)
	r.POST("/recipes/:id/upvote/", auth, upvoteHandler.UpvoteRecipe)
	r.GET("/ingredients/", ingredientHandler.ListIngredients)
	r.POST("/ingredients/", ingredientHandler.CreateIngredient)

	return &testEnv{router: r, db: db, images: images}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	return e.do(t, method, path, token, body, "application/json")
}

func (e *testEnv) doForm(t *testing.T, method, path, token string, fields map[string][]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "dish.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return e.do(t, method, path, token, &buf, mw.FormDataContentType())
}

// register creates a user over HTTP and returns its token
func (e *testEnv) register(t *testing.T, username string) string {
	t.Helper()
	w := e.doJSON(t, http.MethodPost, "/register/", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func (e *testEnv) ingredient(t *testing.T, name string, calories int) uint {
	t.Helper()
	w := e.doJSON(t, http.MethodPost, "/ingredients/", "", map[string]interface{}{"name": name, "calories": calories})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(decode(t, w)["id"].(float64))
}

// recipe creates a recipe over HTTP and returns its id
func (e *testEnv) recipe(t *testing.T, token string, ingredientIDs ...uint) uint {
	t.Helper()
	w := e.doForm(t, http.MethodPost, "/recipes/", token, recipeFields("Soup", ingredientIDs...), pngImage)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(decode(t, w)["id"].(float64))
}

func recipeFields(title string, ingredientIDs ...uint) map[string][]string {
	fields := map[string][]string{
		"title":     {title},
		"time_mins": {"20"},
	}
	for _, id := range ingredientIDs {
		fields["ingredients"] = append(fields["ingredients"], fmt.Sprint(id))
	}
	return fields
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	fields, ok := decode(t, w)["fields"].(map[string]interface{})
	require.True(t, ok, "no field errors in %s", w.Body.String())
	return fields
}
