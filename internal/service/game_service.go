package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/config"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/repository"
)

const leaderboardSize = 10

// GameService tracks mini-game scores. The live leaderboard is a Redis
// sorted set keyed per wordbook; durable rows are written by the game
// score worker from a queue.
type GameService struct {
	scores *repository.GameScoreRepository
	users  *repository.UserRepository
	rdb    *redis.Client
	log    zerolog.Logger
}

// NewGameService creates a new GameService.
func NewGameService(scores *repository.GameScoreRepository, users *repository.UserRepository, rdb *redis.Client, log zerolog.Logger) *GameService {
	return &GameService{
		scores: scores,
		users:  users,
		rdb:    rdb,
		log:    log.With().Str("component", "game_service").Logger(),
	}
}

// SubmitScore records a finished game run. The leaderboard keeps each
// player's best score only; every run still lands in the history table.
func (s *GameService) SubmitScore(ctx context.Context, userID int, req *model.SubmitGameScoreRequest) error {
	key := config.CacheKey.WordbookLeaderboardKey(req.WordbookID.String())
	err := s.rdb.ZAddGT(ctx, key, redis.Z{
		Score:  float64(req.Score),
		Member: strconv.Itoa(userID),
	}).Err()
	if err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Leaderboard update failed")
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"user_id":     userID,
		"wordbook_id": req.WordbookID.String(),
		"game":        req.Game,
		"score":       req.Score,
	})
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistGameScoresQueue, payload).Err(); err != nil {
		s.log.Error().Err(err).Int("user_id", userID).Msg("Failed to queue game score")
		// Queue down: write the row directly so the run is not lost.
		return s.scores.Insert(ctx, &model.GameScore{
			UserID:     userID,
			WordbookID: req.WordbookID,
			Game:       req.Game,
			Score:      req.Score,
		})
	}
	return nil
}

// Leaderboard returns the top players for a wordbook. It serves from the
// Redis sorted set and rebuilds it from PostgreSQL when the set is gone.
func (s *GameService) Leaderboard(ctx context.Context, wordbookID uuid.UUID) ([]model.LeaderboardEntry, error) {
	key := config.CacheKey.WordbookLeaderboardKey(wordbookID.String())

	zs, err := s.rdb.ZRevRangeWithScores(ctx, key, 0, leaderboardSize-1).Result()
	if err != nil {
		s.log.Warn().Err(err).Msg("Leaderboard read failed, falling through to database")
		zs = nil
	}
	if len(zs) == 0 {
		return s.rebuildLeaderboard(ctx, wordbookID, key)
	}

	entries := make([]model.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		userID, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		entry := model.LeaderboardEntry{
			Rank:   i + 1,
			UserID: userID,
			Score:  int(z.Score),
		}
		if u, err := s.users.GetByID(ctx, userID); err == nil {
			entry.UserName = u.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// rebuildLeaderboard loads the top scores from PostgreSQL and repopulates
// the sorted set so later reads are served from Redis again.
func (s *GameService) rebuildLeaderboard(ctx context.Context, wordbookID uuid.UUID, key string) ([]model.LeaderboardEntry, error) {
	entries, err := s.scores.TopByWordbook(ctx, wordbookID, leaderboardSize)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}

	zs := make([]redis.Z, 0, len(entries))
	for _, e := range entries {
		zs = append(zs, redis.Z{Score: float64(e.Score), Member: strconv.Itoa(e.UserID)})
	}
	if len(zs) > 0 {
		if err := s.rdb.ZAdd(ctx, key, zs...).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Leaderboard rebuild write failed")
		}
	}
	return entries, nil
}
