package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/pkg/errors"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Rotating sub-topics keep successive quizzes from repeating themselves.
var subTopics = []string{
	"Les Prophètes (Adam, Nuh, Ibrahim, Moussa, Issa)",
	"La vie du Prophète Muhammad (Sâw) - Période Mecquoise",
	"La vie du Prophète Muhammad (Sâw) - Période Médinoise",
	"Les Compagnons (Sahaba) et leurs mérites",
	"Les Mères des Croyants (épouses du Prophète)",
	"Le Saint Coran (Révélation, Sourates, Versets spécifiques)",
	"Le Tafsir (Exégèse) et le contexte de révélation",
	"Les Hadiths (Bukhari, Muslim, Tirmidhi...)",
	"Le Fiqh de la Prière (Salat) et ses conditions",
	"Le Fiqh du Jeûne (Ramadan) et de la rupture",
	"Le Fiqh de la Zakat et de l'Aumône",
	"Le Hajj et la Omra (Rites et Lieux)",
	"Les Batailles de l'Islam (Badr, Uhud, Khandaq, Tabuk)",
	"L'Histoire des Califes Bien Guidés (Abu Bakr, Umar, Uthman, Ali)",
	"La Croyance (Aqida), le Tawhid et les Noms d'Allah",
	"Les Signes de la Fin des Temps (Mineurs et Majeurs)",
	"L'Éthique, le Comportement (Adab) et les droits du voisin",
	"Les Femmes pieuses de l'Histoire (Maryam, Asiya, Khadija, Aisha)",
	"La Science du Hadith (Isnad, Matn)",
	"L'histoire de l'Andalousie et la civilisation islamique",
}

// GeminiSource calls the Generative Language API and expects a JSON array of
// question records back.
type GeminiSource struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client

	mu   sync.Mutex
	rand *rand.Rand
}

func NewGeminiSource(apiKey, model string) *GeminiSource {
	return &GeminiSource{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: 45 * time.Second},
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig map[string]interface{} `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiSource) Generate(ctx context.Context, count int, difficulty string) ([]models.Question, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: g.buildPrompt(count, difficulty)}}}},
		GenerationConfig: map[string]interface{}{
			"responseMimeType": "application/json",
			"responseSchema": map[string]interface{}{
				"type": "ARRAY",
				"items": map[string]interface{}{
					"type": "OBJECT",
					"properties": map[string]interface{}{
						"questionText":       map[string]interface{}{"type": "STRING"},
						"options":            map[string]interface{}{"type": "ARRAY", "items": map[string]interface{}{"type": "STRING"}},
						"correctAnswerIndex": map[string]interface{}{"type": "INTEGER"},
						"explanation":        map[string]interface{}{"type": "STRING"},
						"difficulty":         map[string]interface{}{"type": "STRING"},
					},
					"required": []string{"questionText", "options", "correctAnswerIndex", "explanation", "difficulty"},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to encode generation request")
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to build generation request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "generation request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to read generation response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeInternalError, fmt.Sprintf("generation API returned status %d", resp.StatusCode))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to decode generation response")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New(errors.ErrCodeInternalError, "empty generation response")
	}

	var questions []models.Question
	if err := json.Unmarshal([]byte(parsed.Candidates[0].Content.Parts[0].Text), &questions); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "generation response is not a question array")
	}

	valid := questions[:0]
	for _, q := range questions {
		if q.QuestionText == "" || len(q.Options) != models.OptionCount {
			continue
		}
		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= models.OptionCount {
			continue
		}
		q.ID = 0
		q.Source = models.SourceAI
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, errors.New(errors.ErrCodeInternalError, "generation produced no usable questions")
	}
	if len(valid) > count {
		valid = valid[:count]
	}

	return valid, nil
}

func (g *GeminiSource) buildPrompt(count int, difficulty string) string {
	var levelPrompt string
	switch difficulty {
	case models.DifficultyEasy:
		levelPrompt = "NIVEAU: DÉBUTANT (Facile). Questions sur les bases fondamentales accessibles à tous."
	case models.DifficultyMedium:
		levelPrompt = "NIVEAU: INTERMÉDIAIRE. Questions demandant de la réflexion et une connaissance générale."
	case models.DifficultyHard:
		levelPrompt = "NIVEAU: AVANCÉ. Questions difficiles sur des détails précis (dates, noms, règles spécifiques)."
	case models.DifficultyExpert:
		levelPrompt = "NIVEAU: EXPERT / SAVANT. Questions très pointues, rares ou académiques."
	default:
		// ADAPTIVE: the difficulty escalates across the batch.
		levelPrompt = `NIVEAU PROGRESSIF (ADAPTIVE):
- Question 1-2 : NIVEAU FACILE (Culture générale)
- Question 3-4 : NIVEAU MOYEN (Détails historiques ou Fiqh de base)
- Question 5 : NIVEAU DIFFICILE (Précision requise)
- Question 6 : NIVEAU EXPERT (Détail subtil ou méconnu)
Simule une augmentation de la difficulté pour challenger le candidat.`
	}

	topics := g.pickTopics(3)

	return fmt.Sprintf(`Agis comme un grand savant et pédagogue en sciences islamiques.
Génère %d questions à choix multiples (QCM) sur l'Islam en français.

%s

DIVERSITÉ ET ORIGINALITÉ :
1. Pour ce quiz, inclus impérativement des questions liées à ces thèmes aléatoires : [%s].
2. Pour le reste, varie les sujets.
3. ÉVITE les questions trop répétitives (ex: "Combien de piliers a l'Islam") sauf si le niveau est DÉBUTANT.
4. Sois créatif : interroge sur des événements, des sagesses, des contextes, pas juste des chiffres.

Format attendu : JSON uniquement.
Les questions doivent être basées sur des sources authentiques (Coran et Sounnah).`,
		count, levelPrompt, strings.Join(topics, ", "))
}

func (g *GeminiSource) pickTopics(n int) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	picked := make([]string, len(subTopics))
	copy(picked, subTopics)
	g.rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if n > len(picked) {
		n = len(picked)
	}
	return picked[:n]
}
