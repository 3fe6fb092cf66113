package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/security"
)

const testSecret = "test_secret_key_minimum_32_chars"

func newAuthRouter(adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/")
	group.Use(Auth(testSecret))
	if adminOnly {
		group.Use(RequireAdmin())
	}
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": c.GetString(ContextUsername),
			"role":     c.GetString(ContextRole),
		})
	})
	return router
}

func TestAuth(t *testing.T) {
	token, err := security.GenerateJWT("Aicha", models.RoleUser, testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	router := newAuthRouter(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{
			name:       "admin allowed",
			role:       models.RoleAdmin,
			wantStatus: http.StatusOK,
		},
		{
			name:       "player rejected",
			role:       models.RoleUser,
			wantStatus: http.StatusForbidden,
		},
	}

	router := newAuthRouter(true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := security.GenerateJWT("Someone", tt.role, testSecret)
			if err != nil {
				t.Fatalf("GenerateJWT() error = %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
