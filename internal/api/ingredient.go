package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/types"
)

// IngredientHandler serves the shared ingredient catalogue
type IngredientHandler struct {
	ingredients service.IIngredientService
	log         *zap.Logger
}

func NewIngredientHandler(ingredients service.IIngredientService, log *zap.Logger) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients, log: log}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredients.ListIngredients(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]types.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, types.NewIngredientResponse(&ingredients[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req types.CreateIngredientRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, h.log, bindingError(err))
		return
	}

	ingredient, err := h.ingredients.CreateIngredient(c.Request.Context(), service.CreateIngredientInput{
		Name:     req.Name,
		Calories: *req.Calories,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, types.NewIngredientResponse(ingredient))
}
