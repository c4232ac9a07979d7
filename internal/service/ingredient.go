package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
)

// CreateIngredientInput is the data needed to create an ingredient
type CreateIngredientInput struct {
	Name     string
	Calories int
}

// IngredientService manages the shared ingredient catalogue
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// CreateIngredient stores a new ingredient
func (s *IngredientService) CreateIngredient(ctx context.Context, in CreateIngredientInput) (*models.Ingredient, error) {
	verr := &ValidationError{}
	if in.Name == "" {
		verr.Add("name", "This field is required.")
	} else if len(in.Name) > 255 {
		verr.Add("name", "Ensure this field has no more than 255 characters.")
	}
	if in.Calories < 0 {
		verr.Add("calories", "Ensure this value is greater than or equal to 0.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	ingredient := models.Ingredient{Name: in.Name, Calories: in.Calories}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return &ingredient, nil
}

// ListIngredients returns every ingredient ordered by id
func (s *IngredientService) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Order("id").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// resolveIngredients loads the ingredients for ids ordered by id, collapsing
// duplicates. Unknown ids are a validation error on "ingredients".
func resolveIngredients(db *gorm.DB, ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}

	var found []models.Ingredient
	if err := db.Where("id IN ?", ids).Order("id").Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}

	known := make(map[uint]bool, len(found))
	for _, ing := range found {
		known[ing.ID] = true
	}

	verr := &ValidationError{}
	for _, id := range ids {
		if !known[id] {
			verr.Add("ingredients", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
			known[id] = true
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return found, nil
}
