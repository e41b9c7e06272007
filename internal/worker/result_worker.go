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
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second
)

// ResultWorker drains graded test results from the queue and persists them
// in batches. Grading already happened in the request path; this loop only
// writes history.
type ResultWorker struct {
	results *repository.TestResultRepository
	rdb     *redis.Client
	log     zerolog.Logger
}

// NewResultWorker creates a new ResultWorker.
func NewResultWorker(results *repository.TestResultRepository, rdb *redis.Client, log zerolog.Logger) *ResultWorker {
	return &ResultWorker{
		results: results,
		rdb:     rdb,
		log:     log.With().Str("component", "result_worker").Logger(),
	}
}

type resultPayload struct {
	UserID       int             `json:"user_id"`
	WordbookID   string          `json:"wordbook_id"`
	TestType     string          `json:"test_type"`
	Score        int             `json:"score"`
	CorrectCount int             `json:"correct_count"`
	WrongCount   int             `json:"wrong_count"`
	Total        int             `json:"total"`
	IsReview     bool            `json:"is_review"`
	Details      json.RawMessage `json:"details"`
}

// Start runs the worker loop until the context is cancelled. Pending items
// are flushed on shutdown.
func (w *ResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultWorker started")

	batch := make([]*resultPayload, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

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
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p resultPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

// flushSafe writes a batch, falling back to row-at-a-time inserts and
// requeueing anything that still fails.
func (w *ResultWorker) flushSafe(ctx context.Context, batch []*resultPayload) {
	if len(batch) == 0 {
		return
	}

	results, kept := w.toModels(batch)
	if len(results) == 0 {
		return
	}

	if err := w.results.InsertBatch(ctx, results); err != nil {
		w.log.Warn().Err(err).Msg("Bulk result insert failed, using fallback")

		for i, tr := range results {
			if err := w.results.Insert(ctx, tr); err != nil {
				w.log.Error().Err(err).Msg("Single insert failed, requeueing")
				raw, _ := json.Marshal(kept[i])
				w.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
			}
		}
		return
	}

	w.log.Debug().Int("count", len(results)).Msg("Result batch persisted")
}

// toModels converts payloads, dropping any with a malformed wordbook ID.
// The returned payload slice stays index-aligned with the models for the
// requeue path.
func (w *ResultWorker) toModels(batch []*resultPayload) ([]*model.TestResult, []*resultPayload) {
	results := make([]*model.TestResult, 0, len(batch))
	kept := make([]*resultPayload, 0, len(batch))

	for _, p := range batch {
		wbID, err := uuid.Parse(p.WordbookID)
		if err != nil {
			w.log.Error().Str("wordbook_id", p.WordbookID).Msg("Dropping result with malformed wordbook ID")
			continue
		}
		kept = append(kept, p)
		results = append(results, &model.TestResult{
			UserID:       p.UserID,
			WordbookID:   wbID,
			TestType:     p.TestType,
			Score:        p.Score,
			CorrectCount: p.CorrectCount,
			WrongCount:   p.WrongCount,
			Total:        p.Total,
			IsReview:     p.IsReview,
			Details:      p.Details,
		})
	}
	return results, kept
}
