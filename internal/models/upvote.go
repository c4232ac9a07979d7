package models

import (
	"time"
)

// Upvote records one user's endorsement of one recipe. The composite unique
// index allows at most one row per (user, recipe).
type Upvote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_upvote_user_recipe" json:"user"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_upvote_user_recipe;index" json:"recipe"`
}
