package models

import (
	"time"
)

// Diet is the dietary classification of a recipe
type Diet string

const (
	DietBalanced    Diet = "balanced"
	DietHighProtein Diet = "high-protein"
	DietHighFibre   Diet = "high-fibre"
	DietLowFat      Diet = "low-fat"
	DietLowCarb     Diet = "low-carb"
	DietLowSodium   Diet = "low-sodium"
)

// Diets lists every accepted diet in display order
var Diets = []Diet{
	DietBalanced,
	DietHighProtein,
	DietHighFibre,
	DietLowFat,
	DietLowCarb,
	DietLowSodium,
}

// Valid reports whether d is one of the fixed diet choices
func (d Diet) Valid() bool {
	for _, known := range Diets {
		if d == known {
			return true
		}
	}
	return false
}

type Recipe struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
	AuthorID  uint      `gorm:"not null;index" json:"author"`
	Author    User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	// Image is the stored reference returned by the image store
	Image       string       `gorm:"size:255;not null" json:"image"`
	TimeMins    int          `gorm:"not null;check:time_mins >= 0" json:"time_mins"`
	Diet        Diet         `gorm:"size:12;not null;default:'balanced'" json:"diet"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`
	Upvotes     []Upvote     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TotalCalories sums the calories of the loaded ingredients
func (r *Recipe) TotalCalories() int {
	total := 0
	for _, ing := range r.Ingredients {
		total += ing.Calories
	}
	return total
}

// IngredientIDs returns the ids of the loaded ingredients in order
func (r *Recipe) IngredientIDs() []uint {
	ids := make([]uint, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ids = append(ids, ing.ID)
	}
	return ids
}
