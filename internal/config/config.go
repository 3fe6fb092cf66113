package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Persistence
	DatabaseURL    string
	LocalStorePath string

	// Question generation
	GeminiAPIKey string
	GeminiModel  string

	// Security
	JWTSecret       string
	AdminAccessCode string

	// Leaderboard cache
	RedisAddr     string
	RedisPassword string

	// Application
	AppEnv   string
	AppPort  string
	LogLevel string

	// Quiz session
	QuestionsPerQuiz      int
	QuestionSeconds       int
	SessionTimeoutMinutes int

	// Rate limiting
	RateLimitPerIP int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "asaa_store.json"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		JWTSecret:       getEnv("JWT_SECRET_KEY", ""),
		AdminAccessCode: getEnv("ADMIN_ACCESS_CODE", "ASAA2023"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		QuestionsPerQuiz:      getEnvInt("QUESTIONS_PER_QUIZ", 6),
		QuestionSeconds:       getEnvInt("QUESTION_SECONDS", 25),
		SessionTimeoutMinutes: getEnvInt("SESSION_TIMEOUT_MINUTES", 30),

		RateLimitPerIP: getEnvInt("RATE_LIMIT_PER_IP", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.AdminAccessCode == "" {
		return fmt.Errorf("ADMIN_ACCESS_CODE must not be empty")
	}
	if c.QuestionsPerQuiz <= 0 {
		return fmt.Errorf("QUESTIONS_PER_QUIZ must be positive")
	}
	return nil
}

// UseRemoteStore reports whether a remote database is configured. The
// storage factory falls back to the local file store when this is false.
func (c *Config) UseRemoteStore() bool {
	return c.DatabaseURL != ""
}

// UseAIGeneration reports whether the external question generator is configured.
func (c *Config) UseAIGeneration() bool {
	return c.GeminiAPIKey != ""
}

func (c *Config) QuestionDuration() time.Duration {
	return time.Duration(c.QuestionSeconds) * time.Second
}

func (c *Config) SessionTimeout() time.Duration {
	return time.Duration(c.SessionTimeoutMinutes) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
