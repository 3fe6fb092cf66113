package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lmodev/asaa_quiz/internal/storage"
	"github.com/lmodev/asaa_quiz/pkg/logger"
)

const (
	leaderboardCacheKey = "asaa:leaderboard"
	leaderboardCacheTTL = 5 * time.Minute
)

// LeaderboardEntry is one ranked row of the public leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	TotalScore  int    `json:"totalScore"`
	GamesPlayed int    `json:"gamesPlayed"`
	LastDate    string `json:"lastDate"`
}

// LeaderboardService aggregates results into a ranked board, with an optional
// redis cache in front of the computation.
type LeaderboardService struct {
	store *storage.Facade
	cache *redis.Client
}

// NewLeaderboardService accepts a nil cache client; the board is then
// computed on every request.
func NewLeaderboardService(store *storage.Facade, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{store: store, cache: cache}
}

// Board returns every player ranked by total score. Cache misses and cache
// errors fall through to a fresh computation.
func (s *LeaderboardService) Board(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var cached []LeaderboardEntry
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Warn("leaderboard cache read failed", "error", err)
		}
	}

	board, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(board); err == nil {
			if err := s.cache.Set(ctx, leaderboardCacheKey, string(raw), leaderboardCacheTTL).Err(); err != nil {
				logger.Warn("leaderboard cache write failed", "error", err)
			}
		}
	}
	return board, nil
}

// Invalidate drops the cached board. Called after every saved result.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, leaderboardCacheKey).Err(); err != nil {
		logger.Warn("leaderboard cache invalidation failed", "error", err)
	}
}

func (s *LeaderboardService) compute(ctx context.Context) ([]LeaderboardEntry, error) {
	results, err := s.store.ListResults(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*LeaderboardEntry)
	order := make([]string, 0)
	for _, r := range results {
		entry, ok := byUser[r.Username]
		if !ok {
			entry = &LeaderboardEntry{Username: r.Username}
			byUser[r.Username] = entry
			order = append(order, r.Username)
		}
		entry.TotalScore += r.Score
		entry.GamesPlayed++
		if r.Date > entry.LastDate {
			entry.LastDate = r.Date
		}
	}

	board := make([]LeaderboardEntry, 0, len(order))
	for _, name := range order {
		board = append(board, *byUser[name])
	}
	sort.SliceStable(board, func(i, j int) bool {
		if board[i].TotalScore != board[j].TotalScore {
			return board[i].TotalScore > board[j].TotalScore
		}
		return board[i].GamesPlayed < board[j].GamesPlayed
	})
	for i := range board {
		board[i].Rank = i + 1
	}
	return board, nil
}
