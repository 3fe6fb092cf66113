package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/security"
	"github.com/lmodev/asaa_quiz/internal/storage"
	"github.com/lmodev/asaa_quiz/pkg/errors"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

// QuestionService manages the question bank behind the admin surface.
type QuestionService struct {
	store *storage.Facade
}

func NewQuestionService(store *storage.Facade) *QuestionService {
	return &QuestionService{store: store}
}

func (s *QuestionService) List(ctx context.Context) ([]models.Question, error) {
	return s.store.ListQuestions(ctx)
}

// Save sanitizes the textual fields and upserts the question. A zero ID
// inserts, anything else updates in place.
func (s *QuestionService) Save(ctx context.Context, q *models.Question) error {
	q.QuestionText = security.SanitizeText(q.QuestionText)
	q.Explanation = security.SanitizeText(q.Explanation)
	for i := range q.Options {
		q.Options[i] = security.SanitizeText(q.Options[i])
	}
	if q.Source == "" {
		q.Source = models.SourceManual
	}

	if err := s.validate(q); err != nil {
		return err
	}
	return s.store.SaveQuestion(ctx, q)
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New(errors.ErrCodeValidation, "Identifiant de question invalide.")
	}
	return s.store.DeleteQuestion(ctx, id)
}

func (s *QuestionService) validate(q *models.Question) error {
	if q.QuestionText == "" {
		return errors.New(errors.ErrCodeValidation, "Le texte de la question est requis.")
	}
	if len(q.Options) != models.OptionCount {
		return errors.New(errors.ErrCodeValidation, "Chaque question doit avoir exactement 4 options.")
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= models.OptionCount {
		return errors.New(errors.ErrCodeValidation, "L'index de la bonne réponse est invalide.")
	}
	// Stored questions carry a fixed level; ADAPTIVE is a quiz mode only.
	if q.Difficulty != "" && (!models.ValidDifficulty(q.Difficulty) || q.Difficulty == models.DifficultyAdaptive) {
		return errors.New(errors.ErrCodeValidation, "Niveau de difficulté invalide.")
	}
	return nil
}

// ImportJSON reads an exported question array and saves every record that has
// a question text. Records without one are skipped, not rejected.
func (s *QuestionService) ImportJSON(ctx context.Context, r io.Reader) (int, error) {
	var incoming []models.Question
	if err := json.NewDecoder(r).Decode(&incoming); err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeValidation, "Fichier JSON invalide.")
	}

	imported := 0
	for i := range incoming {
		q := incoming[i]
		if strings.TrimSpace(q.QuestionText) == "" {
			continue
		}
		q.ID = 0
		if err := s.Save(ctx, &q); err != nil {
			logger.Warn("skipping invalid imported question", "error", err)
			continue
		}
		imported++
	}
	logger.Info("question import finished", "imported", imported, "received", len(incoming))
	return imported, nil
}

// ImportXLSX reads a spreadsheet whose first sheet holds one question per row:
// text, four options, correct index, explanation, difficulty. The header row
// is skipped.
func (s *QuestionService) ImportXLSX(ctx context.Context, r io.Reader) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeValidation, "Fichier XLSX invalide.")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, errors.New(errors.ErrCodeValidation, "Le fichier XLSX ne contient aucune feuille.")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeValidation, "Impossible de lire la feuille XLSX.")
	}

	imported := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 6 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		correct, err := strconv.Atoi(strings.TrimSpace(row[5]))
		if err != nil {
			logger.Warn("skipping XLSX row with invalid answer index", "row", i+1)
			continue
		}
		q := models.Question{
			QuestionText:       row[0],
			Options:            []string{row[1], row[2], row[3], row[4]},
			CorrectAnswerIndex: correct,
			Source:             models.SourceManual,
			Difficulty:         models.DifficultyMedium,
		}
		if len(row) > 6 {
			q.Explanation = row[6]
		}
		if len(row) > 7 && models.ValidDifficulty(strings.ToUpper(strings.TrimSpace(row[7]))) {
			q.Difficulty = strings.ToUpper(strings.TrimSpace(row[7]))
		}
		if err := s.Save(ctx, &q); err != nil {
			logger.Warn("skipping invalid XLSX row", "row", i+1, "error", err)
			continue
		}
		imported++
	}
	logger.Info("XLSX question import finished", "imported", imported)
	return imported, nil
}

// ExportResultsCSV writes every result as CSV. The UTF-8 BOM keeps accented
// usernames readable when the file lands in a spreadsheet program.
func (s *QuestionService) ExportResultsCSV(ctx context.Context, w io.Writer) error {
	results, err := s.store.ListResults(ctx)
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write CSV export")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Pseudo", "Score", "Questions", "Date", "Difficulté"}); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write CSV export")
	}
	for _, r := range results {
		record := []string{
			r.Username,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.TotalQuestions),
			r.Date,
			r.DifficultyLevel,
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write CSV export")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write CSV export")
	}
	return nil
}
