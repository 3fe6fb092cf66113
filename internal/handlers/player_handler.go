package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lmodev/asaa_quiz/internal/middleware"
	"github.com/lmodev/asaa_quiz/internal/services"
)

// PlayerHandler serves the leaderboard and the signed-in player's profile.
type PlayerHandler struct {
	leaderboard *services.LeaderboardService
	profile     *services.ProfileService
}

func NewPlayerHandler(leaderboard *services.LeaderboardService, profile *services.ProfileService) *PlayerHandler {
	return &PlayerHandler{leaderboard: leaderboard, profile: profile}
}

func (h *PlayerHandler) Leaderboard(c *gin.Context) {
	board, err := h.leaderboard.Board(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *PlayerHandler) Profile(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)
	profile, err := h.profile.Get(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
