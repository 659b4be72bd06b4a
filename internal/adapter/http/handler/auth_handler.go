package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AintAsh/Churn-Prediction/internal/usecase"
)

// RegisterRequest represents the body of POST /register
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the body of POST /login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	authUC usecase.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	token, err := h.authUC.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateUser) {
			respondDetail(c, http.StatusBadRequest, "Username already registered")
			return
		}
		respondDetail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, token)
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondDetail(c, http.StatusBadRequest, "Invalid username or password")
			return
		}
		respondDetail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, token)
}
