package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/recipeshare/backend/internal/metrics"
	"github.com/recipeshare/backend/internal/middleware"
	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/types"
)

// RecipeHandler serves recipe CRUD
type RecipeHandler struct {
	recipes service.IRecipeService
	log     *zap.Logger
}

func NewRecipeHandler(recipes service.IRecipeService, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, log: log}
}

// recipeID parses the :id path parameter. A malformed id cannot name a recipe.
func recipeID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, &service.NotFoundError{Resource: "recipe"}
	}
	return uint(id), nil
}

// currentUser returns the authenticated user id; routes using it sit behind AuthMiddleware
func currentUser(c *gin.Context) uint {
	id, _ := middleware.CurrentUserID(c)
	return id
}

// imageUpload returns the "image" part of a multipart request, or nil when there is none.
// The returned close func must be called once the upload has been consumed.
func imageUpload(c *gin.Context) (*service.ImageUpload, func(), error) {
	noop := func() {}
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, noop, nil
	}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, service.NewFieldError("image", "The submitted data was not a file.")
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*service.ImageUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, service.NewFieldError("image", "The submitted file could not be read.")
	}
	return &service.ImageUpload{Filename: fh.Filename, Body: f}, func() { _ = f.Close() }, nil
}

// CreateRecipe stores a recipe authored by the caller. Any author in the body is ignored.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, h.log, bindingError(err))
		return
	}

	image, closeImage, err := imageUpload(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer closeImage()

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), currentUser(c), service.CreateRecipeInput{
		Title:         req.Title,
		TimeMins:      *req.TimeMins,
		Diet:          models.Diet(req.Diet),
		IngredientIDs: req.Ingredients,
		Image:         image,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	metrics.RecordRecipeCreated()
	c.JSON(http.StatusCreated, types.NewRecipeResponse(recipe, 0))
}

// ListRecipes returns every recipe in the summary shape
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	ctx := c.Request.Context()

	recipes, err := h.recipes.ListRecipes(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ids := make([]uint, 0, len(recipes))
	for i := range recipes {
		ids = append(ids, recipes[i].ID)
	}
	counts, err := h.recipes.UpvoteCounts(ctx, ids)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeListResponse(recipes, counts))
}

// GetRecipe returns one recipe in the detail shape
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	counts, err := h.recipes.UpvoteCounts(c.Request.Context(), []uint{id})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeDetailResponse(recipe, counts[id]))
}

// UpdateRecipe replaces a recipe's fields (PUT). Image is optional and kept when absent.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	h.update(c, false)
}

// PatchRecipe changes only the supplied fields (PATCH)
func (h *RecipeHandler) PatchRecipe(c *gin.Context) {
	h.update(c, true)
}

func (h *RecipeHandler) update(c *gin.Context, partial bool) {
	id, err := recipeID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req types.UpdateRecipeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, h.log, bindingError(err))
			return
		}
	}

	// multipart forms cannot express an empty list, so a missing field means none
	if !partial && req.Ingredients == nil && c.ContentType() == binding.MIMEMultipartPOSTForm {
		req.Ingredients = &[]uint{}
	}

	image, closeImage, err := imageUpload(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer closeImage()

	in := service.UpdateRecipeInput{
		Title:         req.Title,
		TimeMins:      req.TimeMins,
		IngredientIDs: req.Ingredients,
		Image:         image,
		Replace:       !partial,
	}
	if req.Diet != nil {
		diet := models.Diet(*req.Diet)
		in.Diet = &diet
	}

	ctx := c.Request.Context()
	recipe, err := h.recipes.UpdateRecipe(ctx, currentUser(c), id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	counts, err := h.recipes.UpvoteCounts(ctx, []uint{id})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeResponse(recipe, counts[id]))
}

// DeleteRecipe removes a recipe owned by the caller
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
