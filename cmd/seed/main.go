package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/database"
	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/service"
)

// starterIngredients are per 100g, rounded
var starterIngredients = []models.Ingredient{
	{Name: "Carrot", Calories: 41},
	{Name: "Onion", Calories: 40},
	{Name: "Garlic", Calories: 149},
	{Name: "Potato", Calories: 77},
	{Name: "Tomato", Calories: 18},
	{Name: "Spinach", Calories: 23},
	{Name: "Chickpeas", Calories: 164},
	{Name: "Lentils", Calories: 116},
	{Name: "Brown rice", Calories: 112},
	{Name: "Oats", Calories: 389},
	{Name: "Chicken breast", Calories: 165},
	{Name: "Salmon", Calories: 208},
	{Name: "Egg", Calories: 155},
	{Name: "Greek yogurt", Calories: 59},
	{Name: "Olive oil", Calories: 884},
	{Name: "Butter", Calories: 717},
	{Name: "Avocado", Calories: 160},
	{Name: "Banana", Calories: 89},
	{Name: "Almonds", Calories: 579},
	{Name: "Water", Calories: 0},
}

func main() {
	demoUser := flag.String("demo-user", "", "Also create a demo account with this username")
	demoPassword := flag.String("demo-password", "", "Password for the demo account")
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
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()

	created, err := seedIngredients(ctx, db)
	if err != nil {
		logger.Fatal("Failed to seed ingredients", zap.Error(err))
	}
	logger.Info("Seeded ingredients", zap.Int("created", created), zap.Int("total", len(starterIngredients)))

	if *demoUser != "" {
		auth := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)
		token, err := seedDemoUser(ctx, auth, *demoUser, *demoPassword)
		if err != nil {
			logger.Fatal("Failed to create demo user", zap.Error(err))
		}
		if token == "" {
			logger.Info("Demo user already exists", zap.String("username", *demoUser))
		} else {
			fmt.Println(token)
		}
	}
}

// seedIngredients inserts the starter ingredients that are not present yet, matched by name
func seedIngredients(ctx context.Context, db *gorm.DB) (int, error) {
	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ing := range starterIngredients {
			var existing int64
			if err := tx.Model(&models.Ingredient{}).Where("name = ?", ing.Name).Count(&existing).Error; err != nil {
				return fmt.Errorf("failed to look up %q: %w", ing.Name, err)
			}
			if existing > 0 {
				continue
			}
			row := models.Ingredient{Name: ing.Name, Calories: ing.Calories}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed %q: %w", ing.Name, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// seedDemoUser registers username and returns a token for it. An existing
// account is left alone and an empty token is returned.
func seedDemoUser(ctx context.Context, auth *service.AuthService, username, password string) (string, error) {
	user, err := auth.Register(ctx, service.RegisterInput{Username: username, Password: password})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) && len(verr.Fields["username"]) > 0 && len(verr.Fields) == 1 {
			return "", nil
		}
		return "", err
	}
	return auth.IssueToken(user)
}
