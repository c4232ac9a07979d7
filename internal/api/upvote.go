package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipeshare/backend/internal/metrics"
	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/types"
)

// UpvoteHandler records upvotes
type UpvoteHandler struct {
	upvotes service.IUpvoteService
	log     *zap.Logger
}

func NewUpvoteHandler(upvotes service.IUpvoteService, log *zap.Logger) *UpvoteHandler {
	return &UpvoteHandler{upvotes: upvotes, log: log}
}

// UpvoteRecipe records the caller's upvote of the recipe named in the path
func (h *UpvoteHandler) UpvoteRecipe(c *gin.Context) {
	id, err := recipeID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	upvote, err := h.upvotes.CreateUpvote(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	metrics.RecordUpvote()
	c.JSON(http.StatusCreated, types.NewUpvoteResponse(upvote))
}
