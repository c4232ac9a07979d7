package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/storage"
)

// CreateRecipeInput is the data needed to create a recipe. An empty Diet means balanced.
type CreateRecipeInput struct {
	Title         string
	TimeMins      int
	Diet          models.Diet
	IngredientIDs []uint
	Image         *ImageUpload
}

// UpdateRecipeInput changes only the non-nil fields
type UpdateRecipeInput struct {
	Title         *string
	TimeMins      *int
	Diet          *models.Diet
	IngredientIDs *[]uint
	Image         *ImageUpload
	// Replace requires title, time_mins and ingredients to be present
	Replace bool
}

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	images storage.ImageStore
	log    *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images storage.ImageStore, log *zap.Logger) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
		log:    log,
	}
}

func orderedIngredients(db *gorm.DB) *gorm.DB {
	return db.Order("ingredients.id")
}

func validateTitle(verr *ValidationError, title string) {
	if title == "" {
		verr.Add("title", "This field may not be blank.")
	} else if len(title) > 255 {
		verr.Add("title", "Ensure this field has no more than 255 characters.")
	}
}

func validateTimeMins(verr *ValidationError, mins int) {
	if mins < 0 {
		verr.Add("time_mins", "Ensure this value is greater than or equal to 0.")
	}
}

func validateDiet(verr *ValidationError, diet models.Diet) {
	if !diet.Valid() {
		verr.Add("diet", fmt.Sprintf("%q is not a valid choice.", string(diet)))
	}
}

// CreateRecipe stores a recipe authored by authorID. The author is always the
// caller; the image is written to the store before the row and removed again
// if the row cannot be written.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uint, in CreateRecipeInput) (*models.Recipe, error) {
	if in.Diet == "" {
		in.Diet = models.DietBalanced
	}

	verr := &ValidationError{}
	validateTitle(verr, in.Title)
	validateTimeMins(verr, in.TimeMins)
	validateDiet(verr, in.Diet)
	if in.Image == nil {
		verr.Add("image", "No file was submitted.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	ingredients, err := resolveIngredients(s.db.WithContext(ctx), in.IngredientIDs)
	if err != nil {
		return nil, err
	}

	data, mtype, err := readImage(in.Image)
	if err != nil {
		return nil, err
	}
	imageRef, err := saveImage(ctx, s.images, data, mtype)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Title:       in.Title,
		Image:       imageRef,
		TimeMins:    in.TimeMins,
		Diet:        in.Diet,
		Ingredients: ingredients,
	}
	if err := s.db.WithContext(ctx).Omit("Author", "Ingredients.*").Create(&recipe).Error; err != nil {
		discardImage(ctx, s.images, s.log, imageRef)
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	return &recipe, nil
}

// GetRecipe retrieves a recipe with its ingredients
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.loadRecipe(s.db.WithContext(ctx), id)
}

func (s *RecipeService) loadRecipe(db *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.Preload("Ingredients", orderedIngredients).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "recipe", ID: id}
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}

// ListRecipes returns every recipe with its ingredients, oldest first
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Preload("Ingredients", orderedIngredients).Order("id").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// ownedRecipe loads a recipe and checks that actorID authored it
func (s *RecipeService) ownedRecipe(db *gorm.DB, actorID, id uint) (*models.Recipe, error) {
	recipe, err := s.loadRecipe(db, id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != actorID {
		return nil, &AuthorizationError{Message: "This isn't your recipe."}
	}
	return recipe, nil
}

// UpdateRecipe applies the non-nil fields of in to a recipe owned by actorID
func (s *RecipeService) UpdateRecipe(ctx context.Context, actorID, id uint, in UpdateRecipeInput) (*models.Recipe, error) {
	db := s.db.WithContext(ctx)

	recipe, err := s.ownedRecipe(db, actorID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	verr := &ValidationError{}
	if in.Replace {
		if in.Title == nil {
			verr.Add("title", "This field is required.")
		}
		if in.TimeMins == nil {
			verr.Add("time_mins", "This field is required.")
		}
		if in.IngredientIDs == nil {
			verr.Add("ingredients", "This field is required.")
		}
	}
	if in.Title != nil {
		validateTitle(verr, *in.Title)
		updates["title"] = *in.Title
	}
	if in.TimeMins != nil {
		validateTimeMins(verr, *in.TimeMins)
		updates["time_mins"] = *in.TimeMins
	}
	if in.Diet != nil {
		validateDiet(verr, *in.Diet)
		updates["diet"] = *in.Diet
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var ingredients []models.Ingredient
	if in.IngredientIDs != nil {
		if ingredients, err = resolveIngredients(db, *in.IngredientIDs); err != nil {
			return nil, err
		}
	}

	var newImage string
	if in.Image != nil {
		data, mtype, err := readImage(in.Image)
		if err != nil {
			return nil, err
		}
		if newImage, err = saveImage(ctx, s.images, data, mtype); err != nil {
			return nil, err
		}
		updates["image"] = newImage
	}
	updates["updated_at"] = time.Now()

	// Updates writes the new values back into recipe
	oldImage := recipe.Image
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Omit(clause.Associations).Updates(updates).Error; err != nil {
			return err
		}
		if in.IngredientIDs == nil {
			return nil
		}
		if len(ingredients) == 0 {
			return tx.Model(recipe).Association("Ingredients").Clear()
		}
		return tx.Model(recipe).Association("Ingredients").Replace(ingredients)
	})
	if err != nil {
		discardImage(ctx, s.images, s.log, newImage)
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	if newImage != "" {
		discardImage(ctx, s.images, s.log, oldImage)
	}

	return s.loadRecipe(db, id)
}

// DeleteRecipe removes a recipe owned by actorID together with its upvotes and
// ingredient links. The ingredients themselves are kept.
func (s *RecipeService) DeleteRecipe(ctx context.Context, actorID, id uint) error {
	db := s.db.WithContext(ctx)

	recipe, err := s.ownedRecipe(db, actorID, id)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return deleteRecipes(tx, []models.Recipe{*recipe})
	})
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	discardImage(ctx, s.images, s.log, recipe.Image)
	return nil
}

// deleteRecipes removes recipes and everything that hangs off them inside tx
func deleteRecipes(tx *gorm.DB, recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(recipes))
	for i := range recipes {
		ids = append(ids, recipes[i].ID)
	}

	if err := tx.Where("recipe_id IN ?", ids).Delete(&models.Upvote{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id IN ?", ids).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Recipe{}, ids).Error
}

// UpvoteCounts returns the number of upvotes per recipe id. Recipes without
// upvotes are absent from the map.
func (s *RecipeService) UpvoteCounts(ctx context.Context, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		RecipeID uint
		Count    int64
	}
	err := s.db.WithContext(ctx).Model(&models.Upvote{}).
		Select("recipe_id, COUNT(*) AS count").
		Where("recipe_id IN ?", ids).
		Group("recipe_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count upvotes: %w", err)
	}

	for _, row := range rows {
		counts[row.RecipeID] = row.Count
	}
	return counts, nil
}
