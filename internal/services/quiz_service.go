package services

import (
	"context"
	"sync"
	"time"

	"github.com/lmodev/asaa_quiz/internal/config"
	"github.com/lmodev/asaa_quiz/internal/generator"
	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/storage"
	"github.com/lmodev/asaa_quiz/pkg/errors"
	"github.com/lmodev/asaa_quiz/pkg/logger"
	"github.com/lmodev/asaa_quiz/pkg/utils"
)

const (
	PhaseLoading  = "LOADING"
	PhasePlaying  = "PLAYING"
	PhaseFinished = "FINISHED"
)

const sessionIDLength = 24

// session is the server-side state of one running quiz.
type session struct {
	ID         string
	Username   string
	Difficulty string
	Questions  []models.Question
	Index      int
	Score      int
	Answered   bool
	LastPick   int
	Deadline   time.Time
	Phase      string
	LastTouch  time.Time
	Result     *models.QuizResult
	NewBadges  []models.Badge
}

// QuizService owns the in-memory session registry and drives each quiz from
// start to the single persistence point at the end.
type QuizService struct {
	mu       sync.Mutex
	sessions map[string]*session

	store       *storage.Facade
	source      generator.Source
	badges      *BadgeService
	leaderboard interface{ Invalidate(context.Context) }
	cfg         *config.Config
	now         func() time.Time
}

func NewQuizService(store *storage.Facade, source generator.Source, badges *BadgeService, cfg *config.Config) *QuizService {
	s := &QuizService{
		sessions: make(map[string]*session),
		store:    store,
		source:   source,
		badges:   badges,
		cfg:      cfg,
		now:      time.Now,
	}
	go s.cleanupAbandoned()
	return s
}

// SetLeaderboard registers the cache to invalidate whenever a result lands.
func (s *QuizService) SetLeaderboard(lb interface{ Invalidate(context.Context) }) {
	s.leaderboard = lb
}

// QuizOpen reports whether quizzes can be started right now. A manual
// override wins; otherwise the nightly 20:00 to midnight GMT window applies.
func (s *QuizService) QuizOpen(ctx context.Context) (bool, error) {
	state, err := s.store.GlobalState(ctx)
	if err != nil {
		return false, err
	}
	if state.IsManualOverride {
		return state.IsQuizOpen, nil
	}
	return s.now().UTC().Hour() >= 20, nil
}

// SessionView is the client-facing snapshot of a session. The correct answer
// and explanation are revealed only once the current question is answered.
type SessionView struct {
	SessionID    string             `json:"sessionId"`
	Phase        string             `json:"phase"`
	Index        int                `json:"index"`
	Total        int                `json:"total"`
	Score        int                `json:"score"`
	QuestionText string             `json:"questionText,omitempty"`
	Options      []string           `json:"options,omitempty"`
	SecondsLeft  int                `json:"secondsLeft"`
	Answered     bool               `json:"answered"`
	PickedIndex  int                `json:"pickedIndex"`
	CorrectIndex int                `json:"correctIndex"`
	Explanation  string             `json:"explanation,omitempty"`
	Result       *models.QuizResult `json:"result,omitempty"`
	NewBadges    []models.Badge     `json:"newBadges,omitempty"`
}

// Start opens a session for the player, fetches its questions and moves it
// straight to PLAYING.
func (s *QuizService) Start(ctx context.Context, username, difficulty string) (*SessionView, error) {
	open, err := s.QuizOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, errors.New(errors.ErrCodeQuizClosed, "Le quiz est actuellement fermé. Revenez ce soir à 20h GMT.")
	}
	if !models.ValidDifficulty(difficulty) {
		return nil, errors.New(errors.ErrCodeValidation, "Niveau de difficulté invalide.")
	}

	sess := &session{
		ID:         utils.GenerateRandomID(sessionIDLength),
		Username:   username,
		Difficulty: difficulty,
		Phase:      PhaseLoading,
		LastPick:   -1,
		LastTouch:  s.now(),
	}

	questions, err := s.source.Generate(ctx, s.cfg.QuestionsPerQuiz, difficulty)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load quiz questions")
	}
	sess.Questions = questions
	s.persistGenerated(questions)

	sess.Phase = PhasePlaying
	sess.Deadline = s.now().Add(s.cfg.QuestionDuration())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	logger.Info("quiz session started", "session", sess.ID, "username", username, "difficulty", difficulty)
	return s.view(sess), nil
}

// Answer records the player's single pick for the current question. A pick
// arriving after the deadline scores nothing, whatever the index.
func (s *QuizService) Answer(sessionID string, optionIndex int) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Phase != PhasePlaying {
		return nil, errors.New(errors.ErrCodeValidation, "La session n'est pas en cours de jeu.")
	}
	if sess.Answered {
		return nil, errors.New(errors.ErrCodeValidation, "Cette question a déjà été répondue.")
	}
	if optionIndex < 0 || optionIndex >= models.OptionCount {
		return nil, errors.New(errors.ErrCodeValidation, "Réponse invalide.")
	}

	sess.Answered = true
	sess.LastPick = optionIndex
	sess.LastTouch = s.now()

	onTime := !s.now().After(sess.Deadline)
	if onTime && optionIndex == sess.Questions[sess.Index].CorrectAnswerIndex {
		sess.Score += models.PointsPerQuestion
	}
	return s.view(sess), nil
}

// Next advances past the current question. Leaving the last question ends the
// quiz: the result is written, then badges are evaluated against it.
func (s *QuizService) Next(ctx context.Context, sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Phase != PhasePlaying {
		return nil, errors.New(errors.ErrCodeValidation, "La session n'est pas en cours de jeu.")
	}
	if !sess.Answered && s.now().Before(sess.Deadline) {
		return nil, errors.New(errors.ErrCodeValidation, "Répondez à la question avant de continuer.")
	}

	sess.LastTouch = s.now()
	sess.Index++
	if sess.Index < len(sess.Questions) {
		sess.Answered = false
		sess.LastPick = -1
		sess.Deadline = s.now().Add(s.cfg.QuestionDuration())
		return s.view(sess), nil
	}

	return s.finish(ctx, sess)
}

// State returns the current snapshot without mutating the session.
func (s *QuizService) State(sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.LastTouch = s.now()
	return s.view(sess), nil
}

// finish is the only place a quiz writes a result. Badges run strictly after
// the save so the engine sees the new game in the history.
func (s *QuizService) finish(ctx context.Context, sess *session) (*SessionView, error) {
	sess.Phase = PhaseFinished

	result := models.QuizResult{
		Username:        sess.Username,
		Score:           sess.Score,
		TotalQuestions:  len(sess.Questions),
		Date:            s.now().UTC().Format(time.RFC3339),
		DifficultyLevel: sess.Difficulty,
	}
	if err := s.store.SaveResult(ctx, result); err != nil {
		return nil, err
	}
	sess.Result = &result

	newly, err := s.badges.CheckAndAward(ctx, sess.Username, result)
	if err != nil {
		logger.Error("badge evaluation failed", "username", sess.Username, "error", err)
	} else {
		sess.NewBadges = newly
	}

	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx)
	}

	logger.Info("quiz finished", "session", sess.ID, "username", sess.Username, "score", sess.Score)
	return s.view(sess), nil
}

func (s *QuizService) get(sessionID string) (*session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "Session de quiz introuvable ou expirée.")
	}
	return sess, nil
}

func (s *QuizService) view(sess *session) *SessionView {
	v := &SessionView{
		SessionID:    sess.ID,
		Phase:        sess.Phase,
		Index:        sess.Index,
		Total:        len(sess.Questions),
		Score:        sess.Score,
		Answered:     sess.Answered,
		PickedIndex:  sess.LastPick,
		CorrectIndex: -1,
	}
	if sess.Phase == PhasePlaying {
		q := sess.Questions[sess.Index]
		v.QuestionText = q.QuestionText
		v.Options = q.Options
		if left := int(sess.Deadline.Sub(s.now()).Seconds()); left > 0 {
			v.SecondsLeft = left
		}
		if sess.Answered {
			v.CorrectIndex = q.CorrectAnswerIndex
			v.Explanation = q.Explanation
		}
	}
	if sess.Phase == PhaseFinished {
		v.Result = sess.Result
		v.NewBadges = sess.NewBadges
	}
	return v
}

// persistGenerated feeds freshly generated questions into the bank without
// blocking the session. Failures are logged and the quiz plays on.
func (s *QuizService) persistGenerated(questions []models.Question) {
	toSave := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if q.Source == models.SourceAI && q.ID == 0 {
			toSave = append(toSave, q)
		}
	}
	if len(toSave) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for i := range toSave {
			if err := s.store.SaveQuestion(ctx, &toSave[i]); err != nil {
				logger.Error("failed to persist generated question", "error", err)
			}
		}
	}()
}

// cleanupAbandoned drops sessions nobody has touched for the configured
// timeout. Abandoned quizzes persist nothing.
func (s *QuizService) cleanupAbandoned() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := s.now().Add(-s.cfg.SessionTimeout())
		s.mu.Lock()
		for id, sess := range s.sessions {
			if sess.LastTouch.Before(cutoff) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
