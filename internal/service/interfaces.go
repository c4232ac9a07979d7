package service

import (
	"context"

	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/types"
)

// IAuthService defines the interface for registration and credential operations
type IAuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	IssueToken(user *models.User) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, authorID uint, in CreateRecipeInput) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	UpdateRecipe(ctx context.Context, actorID, id uint, in UpdateRecipeInput) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, actorID, id uint) error
	UpvoteCounts(ctx context.Context, ids []uint) (map[uint]int64, error)
}

// IIngredientService defines the interface for ingredient operations
type IIngredientService interface {
	CreateIngredient(ctx context.Context, in CreateIngredientInput) (*models.Ingredient, error)
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
}

// IUpvoteService defines the interface for upvote operations
type IUpvoteService interface {
	CreateUpvote(ctx context.Context, userID, recipeID uint) (*models.Upvote, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ IIngredientService = (*IngredientService)(nil)
	_ IUpvoteService     = (*UpvoteService)(nil)
)
