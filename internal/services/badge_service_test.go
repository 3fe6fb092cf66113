package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/storage"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestFacade(t *testing.T) *storage.Facade {
	t.Helper()
	local, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	return storage.NewFacade(nil, local)
}

func perfectGames(n int) []models.QuizResult {
	games := make([]models.QuizResult, n)
	for i := range games {
		games[i] = models.QuizResult{Username: "Aicha", Score: 30, TotalQuestions: 6}
	}
	return games
}

func badgeIDs(badges []models.Badge) []string {
	ids := make([]string, len(badges))
	for i, b := range badges {
		ids[i] = b.ID
	}
	return ids
}

func containsBadge(badges []models.Badge, id string) bool {
	for _, b := range badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

func TestEvaluateBadges_CountThresholdBoundary(t *testing.T) {
	tests := []struct {
		name        string
		games       int
		wantRegular bool
	}{
		{name: "one below threshold", games: 9, wantRegular: false},
		{name: "exactly at threshold", games: 10, wantRegular: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := perfectGames(tt.games)
			current := history[len(history)-1]
			earned := map[string]bool{
				models.BadgeFirstStep:     true,
				models.BadgePerfectionist: true,
			}

			newly := EvaluateBadges(history, current, earned)
			if got := containsBadge(newly, models.BadgeRegular); got != tt.wantRegular {
				t.Errorf("REGULAR awarded = %v after %d games, want %v", got, tt.games, tt.wantRegular)
			}
		})
	}
}

func TestEvaluateBadges_FirstGame(t *testing.T) {
	current := models.QuizResult{Username: "Moussa", Score: 30, TotalQuestions: 6}
	history := []models.QuizResult{current}

	newly := EvaluateBadges(history, current, map[string]bool{})

	if !containsBadge(newly, models.BadgeFirstStep) {
		t.Errorf("badges = %v, want FIRST_STEP after the first game", badgeIDs(newly))
	}
	if !containsBadge(newly, models.BadgePerfectionist) {
		t.Errorf("badges = %v, want PERFECTIONIST for a perfect game", badgeIDs(newly))
	}
	if containsBadge(newly, models.BadgeScholar) {
		t.Errorf("badges = %v, SCHOLAR must not be awarded at 30 points", badgeIDs(newly))
	}
}

func TestEvaluateBadges_EarnedBadgesNeverRepeat(t *testing.T) {
	history := perfectGames(3)
	current := history[2]
	earned := map[string]bool{
		models.BadgeFirstStep:     true,
		models.BadgePerfectionist: true,
	}

	newly := EvaluateBadges(history, current, earned)
	if len(newly) != 0 {
		t.Errorf("badges = %v, want none when everything qualifying is already earned", badgeIDs(newly))
	}
}

func TestEvaluateBadges_TotalScoreThreshold(t *testing.T) {
	// 17 perfect six-question games put the total at 510 points.
	history := perfectGames(17)
	current := history[16]
	earned := map[string]bool{
		models.BadgeFirstStep:     true,
		models.BadgeRegular:       true,
		models.BadgePerfectionist: true,
	}

	newly := EvaluateBadges(history, current, earned)
	if !containsBadge(newly, models.BadgeScholar) {
		t.Errorf("badges = %v, want SCHOLAR at 510 total points", badgeIDs(newly))
	}
	if containsBadge(newly, models.BadgeMaster) {
		t.Errorf("badges = %v, MASTER must wait for 1000 points", badgeIDs(newly))
	}
}

func TestEvaluateBadges_PerfectJudgedOnCurrentGame(t *testing.T) {
	// A historic perfect game does not retroactively qualify: only the game
	// that just finished counts.
	history := []models.QuizResult{
		{Username: "Moussa", Score: 30, TotalQuestions: 6},
		{Username: "Moussa", Score: 20, TotalQuestions: 6},
	}
	current := history[1]

	newly := EvaluateBadges(history, current, map[string]bool{models.BadgeFirstStep: true})
	if containsBadge(newly, models.BadgePerfectionist) {
		t.Errorf("badges = %v, PERFECTIONIST must not be awarded for an imperfect game", badgeIDs(newly))
	}
}

func TestBadgeService_TenPerfectSingleQuestionQuizzes(t *testing.T) {
	// Ten flawless one-question games: 50 total points. The player ends up
	// with FIRST_STEP, REGULAR and PERFECTIONIST but neither score badge.
	facade := newTestFacade(t)
	svc := NewBadgeService(facade)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		result := models.QuizResult{
			Username:       "Aicha",
			Score:          5,
			TotalQuestions: 1,
			Date:           fmt.Sprintf("2026-09-%02dT21:00:00Z", i+1),
		}
		if err := facade.SaveResult(ctx, result); err != nil {
			t.Fatalf("SaveResult() error = %v", err)
		}
		if _, err := svc.CheckAndAward(ctx, "Aicha", result); err != nil {
			t.Fatalf("CheckAndAward() error = %v", err)
		}
	}

	owned, err := facade.UserBadges(ctx, "Aicha")
	if err != nil {
		t.Fatalf("UserBadges() error = %v", err)
	}

	got := make(map[string]bool, len(owned))
	for _, b := range owned {
		got[b.BadgeID] = true
	}
	want := []string{models.BadgeFirstStep, models.BadgeRegular, models.BadgePerfectionist}
	for _, id := range want {
		if !got[id] {
			t.Errorf("badge %s missing, owned = %v", id, owned)
		}
	}
	if len(owned) != len(want) {
		t.Errorf("owned %d badges, want exactly %d: %v", len(owned), len(want), owned)
	}
}

func TestBadgeService_AwardIsIdempotent(t *testing.T) {
	facade := newTestFacade(t)
	svc := NewBadgeService(facade)
	ctx := context.Background()

	result := models.QuizResult{Username: "Moussa", Score: 30, TotalQuestions: 6, Date: "2026-09-01T21:00:00Z"}
	if err := facade.SaveResult(ctx, result); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	first, err := svc.CheckAndAward(ctx, "Moussa", result)
	if err != nil {
		t.Fatalf("CheckAndAward() error = %v", err)
	}
	if len(first) == 0 {
		t.Fatal("expected badges on the first evaluation")
	}

	// Re-running for the same result must award nothing new.
	second, err := svc.CheckAndAward(ctx, "Moussa", result)
	if err != nil {
		t.Fatalf("CheckAndAward() error = %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second evaluation awarded %v, want none", badgeIDs(second))
	}
}
