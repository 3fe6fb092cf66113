package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/services"
	"github.com/lmodev/asaa_quiz/pkg/errors"
)

// AdminHandler groups the question bank, user management and global switch
// endpoints behind the admin guard.
type AdminHandler struct {
	questions *services.QuestionService
	auth      *services.AuthService
	admin     *services.AdminService
}

func NewAdminHandler(questions *services.QuestionService, auth *services.AuthService, admin *services.AdminService) *AdminHandler {
	return &AdminHandler{questions: questions, auth: auth, admin: admin}
}

func (h *AdminHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questions.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *AdminHandler) SaveQuestion(c *gin.Context) {
	var q models.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "Requête invalide."))
		return
	}

	if err := h.questions.Save(c.Request.Context(), &q); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "Identifiant de question invalide."))
		return
	}

	if err := h.questions.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ImportJSON(c *gin.Context) {
	imported, err := h.questions.ImportJSON(c.Request.Context(), c.Request.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

func (h *AdminHandler) ImportXLSX(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "Fichier manquant."))
		return
	}
	defer file.Close()

	imported, err := h.questions.ImportXLSX(c.Request.Context(), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

func (h *AdminHandler) ExportResults(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="resultats_quiz.csv"`)
	if err := h.questions.ExportResultsCSV(c.Request.Context(), c.Writer); err != nil {
		respondError(c, err)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) ToggleRole(c *gin.Context) {
	user, err := h.auth.ToggleRole(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) GlobalState(c *gin.Context) {
	state, err := h.admin.GlobalState(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *AdminHandler) SaveGlobalState(c *gin.Context) {
	var state models.GlobalState
	if err := c.ShouldBindJSON(&state); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "Requête invalide."))
		return
	}

	if err := h.admin.SaveGlobalState(c.Request.Context(), state); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts, err := h.admin.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
