package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lmodev/asaa_quiz/internal/services"
	"github.com/lmodev/asaa_quiz/pkg/errors"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Username string `json:"username"`
}

type loginRequest struct {
	Username   string `json:"username"`
	AccessCode string `json:"accessCode"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "Requête invalide."))
		return
	}

	result, err := h.auth.Register(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "Requête invalide."))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Username, req.AccessCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
