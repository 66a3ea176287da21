package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/model"
	"github.com/Chirandip-dev07/ujjivana/internal/util"
	"github.com/Chirandip-dev07/ujjivana/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardCacheTTL = 60 * time.Second

type LeaderboardEntry struct {
	Rank   int           `json:"rank"`
	UserID string        `json:"userId"`
	Name   string        `json:"name"`
	School string        `json:"school"`
	Points int           `json:"points"`
	Streak int           `json:"streak"`
	Badges []model.Badge `json:"badges"`
}

type LeaderboardService struct {
	Users UserStore
	Cache *redis.Client
}

func NewLeaderboardService(users UserStore, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{Users: users, Cache: cache}
}

// Top returns the ranked students for a timeframe (all, monthly, weekly),
// optionally filtered to one school. Results are cached briefly in Redis.
func (s *LeaderboardService) Top(ctx context.Context, timeframe, school string, limit int) ([]LeaderboardEntry, error) {
	field, err := pointsField(timeframe)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("leaderboard:%s:%s:%d", timeframe, school, limit)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	users, err := s.Users.TopByPoints(ctx, field, school, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		points := u.Points
		switch field {
		case "monthlyPoints":
			points = u.MonthlyPoints
		case "weeklyPoints":
			points = u.WeeklyPoints
		}
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			UserID: u.ID.Hex(),
			Name:   u.Name,
			School: u.School,
			Points: points,
			Streak: u.Streak,
			Badges: u.Badges,
		})
	}

	if s.Cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}
	return entries, nil
}

func pointsField(timeframe string) (string, error) {
	switch timeframe {
	case "", "all":
		return "points", nil
	case "monthly":
		return "monthlyPoints", nil
	case "weekly":
		return "weeklyPoints", nil
	default:
		return "", fmt.Errorf("%w: timeframe must be all, monthly or weekly", util.ErrValidation)
	}
}
