package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/config"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/repository"
)

const (
	GameScoreBatchSize    = 100
	GameScoreBatchTimeout = 3 * time.Second
	GameScorePollTimeout  = 1 * time.Second
)

// GameScoreWorker drains finished game runs from the queue into the
// history table. The live leaderboard was already bumped in the request
// path, so latency here is invisible to players.
type GameScoreWorker struct {
	scores *repository.GameScoreRepository
	rdb    *redis.Client
	log    zerolog.Logger
}

// NewGameScoreWorker creates a new GameScoreWorker.
func NewGameScoreWorker(scores *repository.GameScoreRepository, rdb *redis.Client, log zerolog.Logger) *GameScoreWorker {
	return &GameScoreWorker{
		scores: scores,
		rdb:    rdb,
		log:    log.With().Str("component", "game_score_worker").Logger(),
	}
}

type gameScorePayload struct {
	UserID     int    `json:"user_id"`
	WordbookID string `json:"wordbook_id"`
	Game       string `json:"game"`
	Score      int    `json:"score"`
}

// Start runs the worker loop until the context is cancelled.
func (w *GameScoreWorker) Start(ctx context.Context) {
	w.log.Info().Msg("GameScoreWorker started")

	batch := make([]*gameScorePayload, 0, GameScoreBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= GameScoreBatchSize || time.Since(lastFlush) >= GameScoreBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, GameScorePollTimeout, config.WorkerKey.PersistGameScoresQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p gameScorePayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

func (w *GameScoreWorker) flushSafe(ctx context.Context, batch []*gameScorePayload) {
	if len(batch) == 0 {
		return
	}

	scores := make([]*model.GameScore, 0, len(batch))
	kept := make([]*gameScorePayload, 0, len(batch))
	for _, p := range batch {
		wbID, err := uuid.Parse(p.WordbookID)
		if err != nil {
			w.log.Error().Str("wordbook_id", p.WordbookID).Msg("Dropping score with malformed wordbook ID")
			continue
		}
		kept = append(kept, p)
		scores = append(scores, &model.GameScore{
			UserID:     p.UserID,
			WordbookID: wbID,
			Game:       p.Game,
			Score:      p.Score,
		})
	}
	if len(scores) == 0 {
		return
	}

	if err := w.scores.InsertBatch(ctx, scores); err != nil {
		w.log.Warn().Err(err).Msg("Bulk score insert failed, using fallback")

		for i, gs := range scores {
			if err := w.scores.Insert(ctx, gs); err != nil {
				w.log.Error().Err(err).Msg("Single insert failed, requeueing")
				raw, _ := json.Marshal(kept[i])
				w.rdb.RPush(ctx, config.WorkerKey.PersistGameScoresQueue, raw)
			}
		}
		return
	}

	w.log.Debug().Int("count", len(scores)).Msg("Game score batch persisted")
}
