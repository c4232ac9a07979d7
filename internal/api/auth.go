package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipeshare/backend/internal/metrics"
	"github.com/recipeshare/backend/internal/service"
	"github.com/recipeshare/backend/internal/types"
)

// AuthHandler serves registration and login
type AuthHandler struct {
	auth service.IAuthService
	log  *zap.Logger
}

func NewAuthHandler(auth service.IAuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Register creates an account and answers with a token for it
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, h.log, bindingError(err))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	metrics.RecordRegistration()
	h.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	c.JSON(http.StatusCreated, types.TokenResponse{Token: token})
}

// Login exchanges a username and password for a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, h.log, bindingError(err))
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{Token: token})
}
