package generator

import (
	"context"

	"github.com/lmodev/asaa_quiz/internal/config"
	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

// Source produces a batch of multiple-choice questions at a requested
// difficulty. ADAPTIVE asks for an escalating ladder across the batch.
type Source interface {
	Generate(ctx context.Context, count int, difficulty string) ([]models.Question, error)
}

// New wires the configured source chain. With an API key the AI generator is
// primary and the static set covers its failures; without one, the static set
// serves alone. The returned source never propagates an error to the quiz
// session.
func New(cfg *config.Config) Source {
	fallback := NewFallbackSource()
	if !cfg.UseAIGeneration() {
		logger.Warn("GEMINI_API_KEY is not set, quiz questions come from the built-in set")
		return fallback
	}
	return &resilientSource{
		primary:  NewGeminiSource(cfg.GeminiAPIKey, cfg.GeminiModel),
		fallback: fallback,
	}
}

type resilientSource struct {
	primary  Source
	fallback Source
}

func (s *resilientSource) Generate(ctx context.Context, count int, difficulty string) ([]models.Question, error) {
	questions, err := s.primary.Generate(ctx, count, difficulty)
	if err != nil {
		logger.Error("question generation failed, using built-in set", "difficulty", difficulty, "error", err)
		return s.fallback.Generate(ctx, count, difficulty)
	}
	return questions, nil
}
