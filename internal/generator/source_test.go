package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/pkg/errors"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestFallbackSource_Generate(t *testing.T) {
	src := NewFallbackSource()

	questions, err := src.Generate(context.Background(), 6, models.DifficultyMedium)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(questions) != 6 {
		t.Fatalf("len(questions) = %d, want 6", len(questions))
	}

	for i, q := range questions {
		if q.QuestionText == "" {
			t.Errorf("question %d has no text", i)
		}
		if len(q.Options) != models.OptionCount {
			t.Errorf("question %d has %d options, want %d", i, len(q.Options), models.OptionCount)
		}
		if q.Source != models.SourceManual {
			t.Errorf("question %d source = %q, want MANUAL", i, q.Source)
		}
	}
}

func TestFallbackSource_CapsAtPoolSize(t *testing.T) {
	src := NewFallbackSource()

	questions, err := src.Generate(context.Background(), 1000, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(questions) == 0 || len(questions) > len(fallbackPool) {
		t.Errorf("len(questions) = %d, want at most the pool size %d", len(questions), len(fallbackPool))
	}
}

// generationBody wraps a question array the way the generation API returns it.
func generationBody(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{
						map[string]interface{}{"text": text},
					},
				},
			},
		},
	}
}

type brokenSource struct{}

func (brokenSource) Generate(context.Context, int, string) ([]models.Question, error) {
	return nil, errors.New(errors.ErrCodeInternalError, "generation down")
}

func TestResilientSource_FallsBack(t *testing.T) {
	src := &resilientSource{primary: brokenSource{}, fallback: NewFallbackSource()}

	questions, err := src.Generate(context.Background(), 6, models.DifficultyHard)
	if err != nil {
		t.Fatalf("Generate() error = %v, the fallback must absorb primary failures", err)
	}
	if len(questions) != 6 {
		t.Errorf("len(questions) = %d, want 6", len(questions))
	}
}

func TestGeminiSource_Generate(t *testing.T) {
	batch := []models.Question{
		{
			QuestionText:       "Quel ange transmet la révélation ?",
			Options:            []string{"Mikaïl", "Jibril", "Israfil", "Azraïl"},
			CorrectAnswerIndex: 1,
			Explanation:        "Jibril est chargé de la révélation.",
			Difficulty:         models.DifficultyEasy,
		},
		{
			QuestionText:       "Combien de sourates dans le Coran ?",
			Options:            []string{"110", "114", "120", "100"},
			CorrectAnswerIndex: 1,
			Explanation:        "114 sourates.",
			Difficulty:         models.DifficultyEasy,
		},
	}
	inner, err := json.Marshal(batch)
	if err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		json.NewEncoder(w).Encode(generationBody(string(inner)))
	}))
	defer server.Close()

	src := NewGeminiSource("test-key", "gemini-2.5-flash")
	src.baseURL = server.URL

	questions, err := src.Generate(context.Background(), 2, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("len(questions) = %d, want 2", len(questions))
	}
	for i, q := range questions {
		if q.Source != models.SourceAI {
			t.Errorf("question %d source = %q, want AI", i, q.Source)
		}
		if q.ID != 0 {
			t.Errorf("question %d has id %d, want unsaved", i, q.ID)
		}
	}
}

func TestGeminiSource_RejectsMalformedQuestions(t *testing.T) {
	batch := []models.Question{
		{
			// Missing options: dropped.
			QuestionText:       "Question invalide",
			CorrectAnswerIndex: 0,
		},
		{
			QuestionText:       "Question valide",
			Options:            []string{"a", "b", "c", "d"},
			CorrectAnswerIndex: 2,
		},
	}
	inner, err := json.Marshal(batch)
	if err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generationBody(string(inner)))
	}))
	defer server.Close()

	src := NewGeminiSource("test-key", "gemini-2.5-flash")
	src.baseURL = server.URL

	questions, err := src.Generate(context.Background(), 6, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("len(questions) = %d, want the malformed record dropped", len(questions))
	}
	if questions[0].QuestionText != "Question valide" {
		t.Errorf("kept %q, want the valid question", questions[0].QuestionText)
	}
}

func TestGeminiSource_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	src := NewGeminiSource("test-key", "gemini-2.5-flash")
	src.baseURL = server.URL

	if _, err := src.Generate(context.Background(), 6, models.DifficultyEasy); err == nil {
		t.Error("Generate() expected an error on a non-200 response")
	}
}
