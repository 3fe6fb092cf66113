package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lmodev/asaa_quiz/internal/handlers"
	"github.com/lmodev/asaa_quiz/internal/middleware"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	playerHandler *handlers.PlayerHandler,
	adminHandler *handlers.AdminHandler,
	limiter *middleware.RateLimiter,
	jwtSecret string,
) {
	router.Use(middleware.CORS())
	router.Use(limiter.Middleware())

	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.Auth(jwtSecret))
		{
			quiz := protected.Group("/quiz")
			{
				quiz.GET("/status", quizHandler.Status)
				quiz.POST("/start", quizHandler.Start)
				quiz.GET("/:id", quizHandler.State)
				quiz.POST("/:id/answer", quizHandler.Answer)
				quiz.POST("/:id/next", quizHandler.Next)
			}

			protected.POST("/auth/logout", authHandler.Logout)

			protected.GET("/leaderboard", playerHandler.Leaderboard)
			protected.GET("/profile", playerHandler.Profile)

			// Admin-only routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/dashboard", adminHandler.Dashboard)

				admin.GET("/questions", adminHandler.ListQuestions)
				admin.POST("/questions", adminHandler.SaveQuestion)
				admin.DELETE("/questions/:id", adminHandler.DeleteQuestion)
				admin.POST("/questions/import", adminHandler.ImportJSON)
				admin.POST("/questions/import-xlsx", adminHandler.ImportXLSX)

				admin.GET("/results/export", adminHandler.ExportResults)

				admin.GET("/users", adminHandler.ListUsers)
				admin.POST("/users/:username/toggle-role", adminHandler.ToggleRole)

				admin.GET("/state", adminHandler.GlobalState)
				admin.PUT("/state", adminHandler.SaveGlobalState)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
