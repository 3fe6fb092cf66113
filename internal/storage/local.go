package storage

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/pkg/errors"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

// localData mirrors the named slots of the file store: one slot per entity
// collection plus the cached current-session user.
type localData struct {
	Users       []models.User       `json:"users"`
	Results     []models.QuizResult `json:"results"`
	Questions   []models.Question   `json:"questions"`
	UserBadges  []models.UserBadge  `json:"user_badges"`
	GlobalState *models.GlobalState `json:"global_state"`
	Session     *models.User        `json:"session"`

	NextQuestionID uint `json:"next_question_id"`
	NextResultID   uint `json:"next_result_id"`
}

// LocalStore is the file-resident fallback backend. Every operation is
// synchronous under a single mutex; the asynchronous contract of the facade
// is preserved by presenting the same context-taking signatures.
type LocalStore struct {
	path string
	mu   sync.RWMutex
	data localData
	now  func() time.Time
}

func NewLocalStore(path string) (*LocalStore, error) {
	s := &LocalStore{
		path: path,
		data: localData{NextQuestionID: 1, NextResultID: 1},
		now:  time.Now,
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "corrupt local store file")
		}
		if s.data.NextQuestionID == 0 {
			s.data.NextQuestionID = 1
		}
		if s.data.NextResultID == 0 {
			s.data.NextResultID = 1
		}
	case os.IsNotExist(err):
		if err := s.flush(); err != nil {
			return nil, err
		}
		logger.Info("Local store initialized (fallback mode)", "path", path)
	default:
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to read local store file")
	}

	return s, nil
}

// flush persists the slots. Callers must hold the write lock.
func (s *LocalStore) flush() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to encode local store")
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to write local store")
	}
	return nil
}

func (s *LocalStore) SaveUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.data.Users {
		if s.data.Users[i].Username == user.Username {
			s.data.Users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.Users = append(s.data.Users, user)
	}
	return s.flush()
}

func (s *LocalStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, len(s.data.Users))
	copy(users, s.data.Users)
	return users, nil
}

func (s *LocalStore) SaveResult(ctx context.Context, result models.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result.ID = s.data.NextResultID
	s.data.NextResultID++
	s.data.Results = append(s.data.Results, result)

	today := s.now().UTC().Format("2006-01-02")
	for i := range s.data.Users {
		if s.data.Users[i].Username == result.Username {
			s.data.Users[i].LastPlayedDate = &today
			break
		}
	}
	return s.flush()
}

func (s *LocalStore) ListResults(ctx context.Context) ([]models.QuizResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first: results are appended in insertion order.
	results := make([]models.QuizResult, 0, len(s.data.Results))
	for i := len(s.data.Results) - 1; i >= 0; i-- {
		results = append(results, s.data.Results[i])
	}
	return results, nil
}

func (s *LocalStore) SaveQuestion(ctx context.Context, q *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.ID != 0 {
		// Update into nothing is a silent no-op, matching the remote store.
		for i := range s.data.Questions {
			if s.data.Questions[i].ID == q.ID {
				s.data.Questions[i] = *q
				break
			}
		}
		return s.flush()
	}

	q.ID = s.data.NextQuestionID
	s.data.NextQuestionID++
	s.data.Questions = append(s.data.Questions, *q)
	return s.flush()
}

func (s *LocalStore) DeleteQuestion(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.data.Questions[:0]
	for _, q := range s.data.Questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	s.data.Questions = kept
	return s.flush()
}

func (s *LocalStore) ListQuestions(ctx context.Context) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	questions := make([]models.Question, 0, len(s.data.Questions))
	for i := len(s.data.Questions) - 1; i >= 0; i-- {
		questions = append(questions, s.data.Questions[i])
	}
	return questions, nil
}

func (s *LocalStore) GlobalState(ctx context.Context) (models.GlobalState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data.GlobalState == nil {
		return models.DefaultGlobalState(), nil
	}
	return *s.data.GlobalState, nil
}

func (s *LocalStore) SaveGlobalState(ctx context.Context, state models.GlobalState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.GlobalState = &state
	return s.flush()
}

func (s *LocalStore) UserBadges(ctx context.Context, username string) ([]models.UserBadge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var badges []models.UserBadge
	for _, b := range s.data.UserBadges {
		if b.Username == username {
			badges = append(badges, b)
		}
	}
	return badges, nil
}

func (s *LocalStore) AwardBadge(ctx context.Context, badge models.UserBadge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.data.UserBadges {
		if b.Username == badge.Username && b.BadgeID == badge.BadgeID {
			return nil
		}
	}
	s.data.UserBadges = append(s.data.UserBadges, badge)
	return s.flush()
}

// SetSessionUser overwrites the cached current-session user. The slot is
// client-local state and lives here even when the remote store is primary.
func (s *LocalStore) SetSessionUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Session = &user
	return s.flush()
}

// SessionUser returns the cached current-session user, or nil when no one is
// logged in.
func (s *LocalStore) SessionUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data.Session == nil {
		return nil
	}
	u := *s.data.Session
	return &u
}

// ClearSessionUser drops the cached current-session user.
func (s *LocalStore) ClearSessionUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Session = nil
	return s.flush()
}
