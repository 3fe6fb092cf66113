package storage

import (
	"context"

	"github.com/lmodev/asaa_quiz/internal/config"
	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

// Store is the backend-agnostic persistence surface consumed by every
// service. Both backends and the facade implement it; no caller talks to a
// backend directly.
type Store interface {
	SaveUser(ctx context.Context, user models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)

	SaveResult(ctx context.Context, result models.QuizResult) error
	ListResults(ctx context.Context) ([]models.QuizResult, error)

	SaveQuestion(ctx context.Context, q *models.Question) error
	DeleteQuestion(ctx context.Context, id uint) error
	ListQuestions(ctx context.Context) ([]models.Question, error)

	GlobalState(ctx context.Context) (models.GlobalState, error)
	SaveGlobalState(ctx context.Context, state models.GlobalState) error

	UserBadges(ctx context.Context, username string) ([]models.UserBadge, error)
	AwardBadge(ctx context.Context, badge models.UserBadge) error
}

// New selects the backend once at startup. A configured remote store that
// fails to connect or migrate is abandoned for the rest of the process
// lifetime; there is no reconnection attempt.
func New(cfg *config.Config) (*Facade, error) {
	local, err := NewLocalStore(cfg.LocalStorePath)
	if err != nil {
		return nil, err
	}

	if !cfg.UseRemoteStore() {
		logger.Warn("DATABASE_URL is not set, using the local store as fallback")
		return NewFacade(nil, local), nil
	}

	remote, err := OpenRemoteStore(cfg)
	if err != nil {
		logger.Error("Remote store initialization failed, switching to local fallback", "error", err)
		return NewFacade(nil, local), nil
	}

	return NewFacade(remote, local), nil
}
