// Package models holds the gorm entities of the recipe store.
package models

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Ingredient{},
		&Recipe{},
		&Upvote{},
	}
}
