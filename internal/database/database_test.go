package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/testhelpers"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		Env:      config.Test,
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "recipes.db"),
	}

	db, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	require.NoError(t, Migrate(db))
	// migrating twice is a no-op
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "ingredients", "recipes", "upvotes", "recipe_ingredients"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "mysql"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient(&config.Config{RedisURL: "not a url"}, zap.NewNop())
	assert.Error(t, err)
}

// exerciseConstraints checks the store-level guarantees the services rely on
func exerciseConstraints(t *testing.T, db *gorm.DB) {
	t.Helper()

	alice := models.User{Username: "alice", PasswordHash: "x"}
	bob := models.User{Username: "bob", PasswordHash: "x"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	assert.ErrorIs(t, db.Create(&models.User{Username: "alice", PasswordHash: "y"}).Error, gorm.ErrDuplicatedKey)

	carrot := models.Ingredient{Name: "Carrot", Calories: 25}
	require.NoError(t, db.Create(&carrot).Error)
	assert.Error(t, db.Create(&models.Ingredient{Name: "Antimatter", Calories: -1}).Error)

	recipe := models.Recipe{AuthorID: alice.ID, Title: "Soup", Image: "/media/images/a.png", TimeMins: 10, Diet: models.DietBalanced}
	require.NoError(t, db.Omit("Author").Create(&recipe).Error)
	require.NoError(t, db.Model(&recipe).Association("Ingredients").Append(&carrot))

	require.NoError(t, db.Create(&models.Upvote{UserID: bob.ID, RecipeID: recipe.ID}).Error)
	assert.ErrorIs(t, db.Create(&models.Upvote{UserID: bob.ID, RecipeID: recipe.ID}).Error, gorm.ErrDuplicatedKey)

	// removing the author cascades to recipes, their upvotes and ingredient links
	require.NoError(t, db.Delete(&models.User{}, alice.ID).Error)

	var recipes, upvotes, links, ingredients int64
	db.Model(&models.Recipe{}).Count(&recipes)
	db.Model(&models.Upvote{}).Count(&upvotes)
	db.Table("recipe_ingredients").Count(&links)
	db.Model(&models.Ingredient{}).Count(&ingredients)
	assert.Zero(t, recipes)
	assert.Zero(t, upvotes)
	assert.Zero(t, links)
	assert.Equal(t, int64(1), ingredients)
}

func TestConstraintsSQLite(t *testing.T) {
	exerciseConstraints(t, testhelpers.SetupTestDatabase(t))
}

func TestConstraintsPostgres(t *testing.T) {
	exerciseConstraints(t, testhelpers.SetupPostgresDatabase(t))
}
