package models

// Ingredient is shared by any number of recipes and is never removed with them.
type Ingredient struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Calories int    `gorm:"not null;check:calories >= 0" json:"calories"`
}
