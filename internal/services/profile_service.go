package services

import (
	"context"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/storage"
)

// EarnedBadge pairs a catalog badge with the date the player earned it.
type EarnedBadge struct {
	models.Badge
	DateEarned string `json:"dateEarned"`
}

// Profile is the player's own stats page payload.
type Profile struct {
	Username    string              `json:"username"`
	TotalScore  int                 `json:"totalScore"`
	GamesPlayed int                 `json:"gamesPlayed"`
	BestScore   int                 `json:"bestScore"`
	History     []models.QuizResult `json:"history"`
	Badges      []EarnedBadge       `json:"badges"`
}

// ProfileService assembles per-player stats from results and earned badges.
type ProfileService struct {
	store *storage.Facade
}

func NewProfileService(store *storage.Facade) *ProfileService {
	return &ProfileService{store: store}
}

func (s *ProfileService) Get(ctx context.Context, username string) (*Profile, error) {
	results, err := s.store.ListResults(ctx)
	if err != nil {
		return nil, err
	}

	p := &Profile{Username: username, History: make([]models.QuizResult, 0, 8)}
	for _, r := range results {
		if r.Username != username {
			continue
		}
		p.History = append(p.History, r)
		p.TotalScore += r.Score
		p.GamesPlayed++
		if r.Score > p.BestScore {
			p.BestScore = r.Score
		}
	}

	owned, err := s.store.UserBadges(ctx, username)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Badge, len(models.BadgeCatalog))
	for _, b := range models.BadgeCatalog {
		byID[b.ID] = b
	}
	p.Badges = make([]EarnedBadge, 0, len(owned))
	for _, ub := range owned {
		catalog, ok := byID[ub.BadgeID]
		if !ok {
			continue
		}
		p.Badges = append(p.Badges, EarnedBadge{Badge: catalog, DateEarned: ub.DateEarned})
	}
	return p, nil
}
