package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
)

const duplicateUpvoteMessage = "You have already voted on this."

// UpvoteService records endorsements of recipes
type UpvoteService struct {
	db *gorm.DB
}

func NewUpvoteService(db *gorm.DB) *UpvoteService {
	return &UpvoteService{db: db}
}

// CreateUpvote records userID's upvote of recipeID. A second upvote by the same
// user is a validation error; the unique index on (user_id, recipe_id) backs the
// pre-insert check when two requests race.
func (s *UpvoteService) CreateUpvote(ctx context.Context, userID, recipeID uint) (*models.Upvote, error) {
	db := s.db.WithContext(ctx)

	var recipes int64
	if err := db.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if recipes == 0 {
		return nil, &NotFoundError{Resource: "recipe", ID: recipeID}
	}

	var existing int64
	if err := db.Model(&models.Upvote{}).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check upvote: %w", err)
	}
	if existing > 0 {
		return nil, NewValidationError(duplicateUpvoteMessage)
	}

	upvote := models.Upvote{UserID: userID, RecipeID: recipeID}
	if err := db.Create(&upvote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError(duplicateUpvoteMessage)
		}
		return nil, fmt.Errorf("failed to create upvote: %w", err)
	}
	return &upvote, nil
}
