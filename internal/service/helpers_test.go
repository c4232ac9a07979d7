package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/storage"
	"github.com/recipeshare/backend/internal/testhelpers"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func pngUpload() *ImageUpload {
	return &ImageUpload{Filename: "dish.png", Body: bytes.NewReader(pngHeader)}
}

type fixture struct {
	db          *gorm.DB
	images      *storage.LocalStore
	recipes     *RecipeService
	ingredients *IngredientService
	upvotes     *UpvoteService
	users       *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	images, err := storage.NewLocalStore(t.TempDir(), "/media/")
	require.NoError(t, err)
	log := zap.NewNop()
	return &fixture{
		db:          db,
		images:      images,
		recipes:     NewRecipeService(db, images, log),
		ingredients: NewIngredientService(db),
		upvotes:     NewUpvoteService(db),
		users:       NewUserService(db, images, log),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) ingredient(t *testing.T, name string, calories int) *models.Ingredient {
	t.Helper()
	ing, err := f.ingredients.CreateIngredient(context.Background(), CreateIngredientInput{Name: name, Calories: calories})
	require.NoError(t, err)
	return ing
}

func (f *fixture) recipe(t *testing.T, author *models.User, ingredientIDs ...uint) *models.Recipe {
	t.Helper()
	r, err := f.recipes.CreateRecipe(context.Background(), author.ID, CreateRecipeInput{
		Title:         "Soup",
		TimeMins:      20,
		IngredientIDs: ingredientIDs,
		Image:         pngUpload(),
	})
	require.NoError(t, err)
	return r
}
