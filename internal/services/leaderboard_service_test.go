package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmodev/asaa_quiz/internal/models"
	"github.com/lmodev/asaa_quiz/internal/storage"
)

func seedResults(t *testing.T, facade *storage.Facade) {
	t.Helper()
	ctx := context.Background()
	results := []models.QuizResult{
		{Username: "Aicha", Score: 30, TotalQuestions: 6, Date: "2026-08-30T21:00:00Z"},
		{Username: "Moussa", Score: 10, TotalQuestions: 6, Date: "2026-08-30T21:10:00Z"},
		{Username: "Aicha", Score: 20, TotalQuestions: 6, Date: "2026-08-31T21:00:00Z"},
		{Username: "Fatou", Score: 25, TotalQuestions: 6, Date: "2026-09-01T21:00:00Z"},
	}
	for _, r := range results {
		require.NoError(t, facade.SaveResult(ctx, r))
	}
}

func TestLeaderboardService_BoardWithoutCache(t *testing.T) {
	facade := newTestFacade(t)
	seedResults(t, facade)
	svc := NewLeaderboardService(facade, nil)

	board, err := svc.Board(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 3)

	assert.Equal(t, "Aicha", board[0].Username)
	assert.Equal(t, 50, board[0].TotalScore)
	assert.Equal(t, 2, board[0].GamesPlayed)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "2026-08-31T21:00:00Z", board[0].LastDate)

	assert.Equal(t, "Fatou", board[1].Username)
	assert.Equal(t, "Moussa", board[2].Username)
	assert.Equal(t, 3, board[2].Rank)
}

func TestLeaderboardService_CacheHitSkipsComputation(t *testing.T) {
	facade := newTestFacade(t)
	client, mock := redismock.NewClientMock()
	svc := NewLeaderboardService(facade, client)

	cached := []LeaderboardEntry{{Rank: 1, Username: "Aicha", TotalScore: 50, GamesPlayed: 2}}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)
	mock.ExpectGet(leaderboardCacheKey).SetVal(string(raw))

	board, err := svc.Board(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, board)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaderboardService_CacheMissComputesAndStores(t *testing.T) {
	facade := newTestFacade(t)
	seedResults(t, facade)
	client, mock := redismock.NewClientMock()
	svc := NewLeaderboardService(facade, client)

	mock.ExpectGet(leaderboardCacheKey).RedisNil()
	mock.Regexp().ExpectSet(leaderboardCacheKey, `.*Aicha.*`, leaderboardCacheTTL).SetVal("OK")

	board, err := svc.Board(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "Aicha", board[0].Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaderboardService_Invalidate(t *testing.T) {
	facade := newTestFacade(t)
	client, mock := redismock.NewClientMock()
	svc := NewLeaderboardService(facade, client)

	mock.ExpectDel(leaderboardCacheKey).SetVal(1)
	svc.Invalidate(context.Background())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaderboardService_CacheErrorFallsThrough(t *testing.T) {
	facade := newTestFacade(t)
	seedResults(t, facade)
	client, mock := redismock.NewClientMock()
	svc := NewLeaderboardService(facade, client)

	mock.ExpectGet(leaderboardCacheKey).SetErr(assert.AnError)
	mock.Regexp().ExpectSet(leaderboardCacheKey, `.*`, leaderboardCacheTTL).SetVal("OK")

	board, err := svc.Board(context.Background())
	require.NoError(t, err)
	assert.Len(t, board, 3)
}
