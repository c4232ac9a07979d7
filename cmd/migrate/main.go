package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/database"
	"github.com/recipeshare/backend/internal/models"
)

func main() {
	reset := flag.Bool("reset", false, "Drop all tables before migrating (development only)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if *reset {
		if cfg.IsProduction() {
			logger.Fatal("Refusing to drop tables in production")
		}
		logger.Warn("Dropping all tables")
		tables := []interface{}{"recipe_ingredients", &models.Upvote{}, &models.Recipe{}, &models.Ingredient{}, &models.User{}}
		if err := db.Migrator().DropTable(tables...); err != nil {
			logger.Fatal("Failed to drop tables", zap.Error(err))
		}
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Migrations applied")
}
