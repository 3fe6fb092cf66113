package services

import (
	"context"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/storage"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

// BadgeService evaluates the badge catalog against a player's history and
// records newly earned badges.
type BadgeService struct {
	store *storage.Facade
	now   func() string
}

func NewBadgeService(store *storage.Facade) *BadgeService {
	return &BadgeService{store: store, now: todayDate}
}

// EvaluateBadges returns the catalog badges the player qualifies for but has
// not earned yet. history must already include current when it was persisted;
// current is passed separately so the perfect-game check does not depend on
// listing order.
func EvaluateBadges(history []models.QuizResult, current models.QuizResult, earned map[string]bool) []models.Badge {
	quizCount := len(history)
	totalScore := 0
	for _, r := range history {
		totalScore += r.Score
	}

	var newly []models.Badge
	for _, b := range models.BadgeCatalog {
		if earned[b.ID] {
			continue
		}
		qualifies := false
		switch b.ConditionType {
		case models.ConditionCount:
			qualifies = quizCount >= b.Threshold
		case models.ConditionTotalScore:
			qualifies = totalScore >= b.Threshold
		case models.ConditionPerfect:
			qualifies = current.IsPerfect()
		case models.ConditionScore:
			// No catalog entry uses this type yet.
			qualifies = false
		}
		if qualifies {
			newly = append(newly, b)
		}
	}
	return newly
}

// CheckAndAward runs the engine for one freshly saved result and persists the
// awards. It returns the badges earned by this game.
func (s *BadgeService) CheckAndAward(ctx context.Context, username string, current models.QuizResult) ([]models.Badge, error) {
	all, err := s.store.ListResults(ctx)
	if err != nil {
		return nil, err
	}
	history := make([]models.QuizResult, 0, 8)
	for _, r := range all {
		if r.Username == username {
			history = append(history, r)
		}
	}

	owned, err := s.store.UserBadges(ctx, username)
	if err != nil {
		return nil, err
	}
	earned := make(map[string]bool, len(owned))
	for _, ub := range owned {
		earned[ub.BadgeID] = true
	}

	newly := EvaluateBadges(history, current, earned)
	for _, b := range newly {
		award := models.UserBadge{
			Username:   username,
			BadgeID:    b.ID,
			DateEarned: s.now(),
		}
		if err := s.store.AwardBadge(ctx, award); err != nil {
			logger.Error("failed to award badge", "badge", b.ID, "username", username, "error", err)
			continue
		}
		logger.Info("badge awarded", "badge", b.ID, "username", username)
	}
	return newly, nil
}
