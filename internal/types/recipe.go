package types

import (
	"time"

	"github.com/recipeshare/backend/internal/models"
)

// RecipeResponse is the summary shape: ingredients are rendered as ids
type RecipeResponse struct {
	ID            uint      `json:"id"`
	Author        uint      `json:"author"`
	Title         string    `json:"title"`
	Image         string    `json:"image"`
	TimeMins      int       `json:"time_mins"`
	Ingredients   []uint    `json:"ingredients"`
	TotalCalories int       `json:"total_calories"`
	Diet          string    `json:"diet"`
	Upvotes       int64     `json:"upvotes"`
	Created       time.Time `json:"created"`
	Updated       time.Time `json:"updated"`
}

// RecipeDetailResponse is the detail shape: ingredients are rendered as objects
type RecipeDetailResponse struct {
	ID            uint                 `json:"id"`
	Author        uint                 `json:"author"`
	Title         string               `json:"title"`
	Image         string               `json:"image"`
	TimeMins      int                  `json:"time_mins"`
	Ingredients   []IngredientResponse `json:"ingredients"`
	TotalCalories int                  `json:"total_calories"`
	Diet          string               `json:"diet"`
	Upvotes       int64                `json:"upvotes"`
	Created       time.Time            `json:"created"`
	Updated       time.Time            `json:"updated"`
}

// IngredientResponse is the wire form of an ingredient
type IngredientResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// UpvoteResponse is returned when an upvote is recorded
type UpvoteResponse struct {
	ID     uint `json:"id"`
	User   uint `json:"user"`
	Recipe uint `json:"recipe"`
}

// NewRecipeResponse renders r with its upvote count in the summary shape
func NewRecipeResponse(r *models.Recipe, upvotes int64) RecipeResponse {
	return RecipeResponse{
		ID:            r.ID,
		Author:        r.AuthorID,
		Title:         r.Title,
		Image:         r.Image,
		TimeMins:      r.TimeMins,
		Ingredients:   r.IngredientIDs(),
		TotalCalories: r.TotalCalories(),
		Diet:          string(r.Diet),
		Upvotes:       upvotes,
		Created:       r.CreatedAt,
		Updated:       r.UpdatedAt,
	}
}

// NewRecipeDetailResponse renders r with its upvote count in the detail shape
func NewRecipeDetailResponse(r *models.Recipe, upvotes int64) RecipeDetailResponse {
	ingredients := make([]IngredientResponse, 0, len(r.Ingredients))
	for i := range r.Ingredients {
		ingredients = append(ingredients, NewIngredientResponse(&r.Ingredients[i]))
	}
	return RecipeDetailResponse{
		ID:            r.ID,
		Author:        r.AuthorID,
		Title:         r.Title,
		Image:         r.Image,
		TimeMins:      r.TimeMins,
		Ingredients:   ingredients,
		TotalCalories: r.TotalCalories(),
		Diet:          string(r.Diet),
		Upvotes:       upvotes,
		Created:       r.CreatedAt,
		Updated:       r.UpdatedAt,
	}
}

// NewRecipeListResponse renders recipes in the summary shape using counts keyed by recipe id
func NewRecipeListResponse(recipes []models.Recipe, upvotes map[uint]int64) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeResponse(&recipes[i], upvotes[recipes[i].ID]))
	}
	return out
}

// NewIngredientResponse renders an ingredient
func NewIngredientResponse(i *models.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name, Calories: i.Calories}
}

// NewUpvoteResponse renders an upvote
func NewUpvoteResponse(u *models.Upvote) UpvoteResponse {
	return UpvoteResponse{ID: u.ID, User: u.UserID, Recipe: u.RecipeID}
}
