package types

// RegisterRequest is the registration body. Password is write-only.
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=150"`
	Email    string `json:"email" form:"email" binding:"omitempty,email,max=254"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=72"`
}

// LoginRequest exchanges credentials for a token
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// CreateRecipeRequest carries the non-file recipe fields. The image arrives as a
// multipart file part named "image". Any author value in the body is ignored.
type CreateRecipeRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=255"`
	TimeMins    *int   `json:"time_mins" form:"time_mins" binding:"required,min=0"`
	Diet        string `json:"diet" form:"diet"`
	Ingredients []uint `json:"ingredients" form:"ingredients"`
}

// UpdateRecipeRequest is used by both PUT and PATCH. Nil fields are left untouched.
type UpdateRecipeRequest struct {
	Title       *string `json:"title" form:"title" binding:"omitempty,max=255"`
	TimeMins    *int    `json:"time_mins" form:"time_mins" binding:"omitempty,min=0"`
	Diet        *string `json:"diet" form:"diet"`
	Ingredients *[]uint `json:"ingredients" form:"ingredients"`
}

// CreateIngredientRequest is the ingredient creation body
type CreateIngredientRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=255"`
	Calories *int   `json:"calories" form:"calories" binding:"required,min=0"`
}
