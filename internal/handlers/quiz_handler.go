package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lmodev/asaa_quiz/internal/middleware"
	"github.com/lmodev/asaa_quiz/internal/services"
	"github.com/lmodev/asaa_quiz/pkg/errors"
)

type QuizHandler struct {
	quiz *services.QuizService
}

func NewQuizHandler(quiz *services.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

// Status reports whether a quiz can be started right now.
func (h *QuizHandler) Status(c *gin.Context) {
	open, err := h.quiz.QuizOpen(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"open": open})
}

type startRequest struct {
	Difficulty string `json:"difficulty"`
}

func (h *QuizHandler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "Requête invalide."))
		return
	}

	username := c.GetString(middleware.ContextUsername)
	view, err := h.quiz.Start(c.Request.Context(), username, req.Difficulty)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

type answerRequest struct {
	OptionIndex *int `json:"optionIndex"`
}

func (h *QuizHandler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OptionIndex == nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "Requête invalide."))
		return
	}

	view, err := h.quiz.Answer(c.Param("id"), *req.OptionIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *QuizHandler) Next(c *gin.Context) {
	view, err := h.quiz.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *QuizHandler) State(c *gin.Context) {
	view, err := h.quiz.State(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
