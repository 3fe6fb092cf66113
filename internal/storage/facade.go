package storage

import (
	"context"
	"time"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

func todayUTC() string {
	return time.Now().UTC().Format("2006-01-02")
}

// Facade wraps the selected backend behind the Store contract. When a remote
// call fails, the call is redirected to the local store for that single
// operation; the remote backend stays selected and is tried again on the next
// call. Under a sustained outage this keeps paying the failed remote attempt
// on every operation; a known limitation.
type Facade struct {
	remote Store
	local  *LocalStore
}

// NewFacade builds the facade. remote may be nil, in which case every call is
// served by the local store directly.
func NewFacade(remote Store, local *LocalStore) *Facade {
	return &Facade{remote: remote, local: local}
}

// Remote reports whether the remote backend was selected at startup.
func (f *Facade) Remote() bool {
	return f.remote != nil
}

func (f *Facade) SaveUser(ctx context.Context, user models.User) error {
	// The current-session slot is client-local and written unconditionally,
	// whichever backend is primary.
	if err := f.local.SetSessionUser(user); err != nil {
		logger.Warn("failed to cache session user", "error", err)
	}

	if f.remote != nil {
		if err := f.remote.SaveUser(ctx, user); err == nil {
			return nil
		} else {
			logger.Error("remote SaveUser failed, falling back to local store", "username", user.Username, "error", err)
		}
	}
	return f.local.SaveUser(ctx, user)
}

func (f *Facade) ListUsers(ctx context.Context) ([]models.User, error) {
	if f.remote != nil {
		users, err := f.remote.ListUsers(ctx)
		if err == nil {
			return users, nil
		}
		logger.Error("remote ListUsers failed, falling back to local store", "error", err)
	}
	return f.local.ListUsers(ctx)
}

func (f *Facade) SaveResult(ctx context.Context, result models.QuizResult) error {
	// Refresh the cached session user's last played date when it is the
	// submitting user.
	if cached := f.local.SessionUser(); cached != nil && cached.Username == result.Username {
		today := todayUTC()
		cached.LastPlayedDate = &today
		if err := f.local.SetSessionUser(*cached); err != nil {
			logger.Warn("failed to refresh session user", "error", err)
		}
	}

	if f.remote != nil {
		if err := f.remote.SaveResult(ctx, result); err == nil {
			return nil
		} else {
			logger.Error("remote SaveResult failed, falling back to local store", "username", result.Username, "error", err)
		}
	}
	return f.local.SaveResult(ctx, result)
}

func (f *Facade) ListResults(ctx context.Context) ([]models.QuizResult, error) {
	if f.remote != nil {
		results, err := f.remote.ListResults(ctx)
		if err == nil {
			return results, nil
		}
		logger.Error("remote ListResults failed, falling back to local store", "error", err)
	}
	return f.local.ListResults(ctx)
}

func (f *Facade) SaveQuestion(ctx context.Context, q *models.Question) error {
	if f.remote != nil {
		if err := f.remote.SaveQuestion(ctx, q); err == nil {
			return nil
		} else {
			logger.Error("remote SaveQuestion failed, falling back to local store", "error", err)
		}
	}
	return f.local.SaveQuestion(ctx, q)
}

func (f *Facade) DeleteQuestion(ctx context.Context, id uint) error {
	if f.remote != nil {
		if err := f.remote.DeleteQuestion(ctx, id); err == nil {
			return nil
		} else {
			logger.Error("remote DeleteQuestion failed, falling back to local store", "id", id, "error", err)
		}
	}
	return f.local.DeleteQuestion(ctx, id)
}

func (f *Facade) ListQuestions(ctx context.Context) ([]models.Question, error) {
	if f.remote != nil {
		questions, err := f.remote.ListQuestions(ctx)
		if err == nil {
			return questions, nil
		}
		logger.Error("remote ListQuestions failed, falling back to local store", "error", err)
	}
	return f.local.ListQuestions(ctx)
}

func (f *Facade) GlobalState(ctx context.Context) (models.GlobalState, error) {
	if f.remote != nil {
		state, err := f.remote.GlobalState(ctx)
		if err == nil {
			return state, nil
		}
		logger.Error("remote GlobalState failed, falling back to local store", "error", err)
	}
	return f.local.GlobalState(ctx)
}

func (f *Facade) SaveGlobalState(ctx context.Context, state models.GlobalState) error {
	if f.remote != nil {
		if err := f.remote.SaveGlobalState(ctx, state); err == nil {
			return nil
		} else {
			logger.Error("remote SaveGlobalState failed, falling back to local store", "error", err)
		}
	}
	return f.local.SaveGlobalState(ctx, state)
}

func (f *Facade) UserBadges(ctx context.Context, username string) ([]models.UserBadge, error) {
	if f.remote != nil {
		badges, err := f.remote.UserBadges(ctx, username)
		if err == nil {
			return badges, nil
		}
		logger.Error("remote UserBadges failed, falling back to local store", "username", username, "error", err)
	}
	return f.local.UserBadges(ctx, username)
}

func (f *Facade) AwardBadge(ctx context.Context, badge models.UserBadge) error {
	if f.remote != nil {
		if err := f.remote.AwardBadge(ctx, badge); err == nil {
			return nil
		} else {
			logger.Error("remote AwardBadge failed, falling back to local store", "username", badge.Username, "badge", badge.BadgeID, "error", err)
		}
	}
	return f.local.AwardBadge(ctx, badge)
}

// SessionUser returns the cached current-session user, if any.
func (f *Facade) SessionUser() *models.User {
	return f.local.SessionUser()
}

// ClearSession drops the cached current-session user on logout.
func (f *Facade) ClearSession() error {
	return f.local.ClearSessionUser()
}
