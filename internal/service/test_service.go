package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/config"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/testgen"
)

const wordbookCacheTTL = 0 // no expiry; invalidated explicitly on word changes

// WordSource supplies the word items of a wordbook. Satisfied by
// repository.WordRepository in production and by fakes in tests.
type WordSource interface {
	ListByWordbook(ctx context.Context, wordbookID uuid.UUID) ([]model.Word, error)
}

// TestService generates test papers and grades submissions. Generation
// reads words through a Redis cache with PostgreSQL fall-through; grading
// is pure and queues its outcome for asynchronous persistence.
type TestService struct {
	words WordSource
	gen   *testgen.Generator
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewTestService creates a new TestService.
func NewTestService(words WordSource, gen *testgen.Generator, rdb *redis.Client, log zerolog.Logger) *TestService {
	return &TestService{
		words: words,
		gen:   gen,
		rdb:   rdb,
		log:   log.With().Str("component", "test_service").Logger(),
	}
}

// GenerateTest builds a test paper for a wordbook. A wordbook without words
// yields an empty paper; a failed word fetch propagates as an error so the
// caller can tell a broken store from an empty wordbook.
func (s *TestService) GenerateTest(ctx context.Context, wordbookID uuid.UUID, testType string, count int) ([]testgen.Question, error) {
	items, err := s.fetchItems(ctx, wordbookID)
	if err != nil {
		return nil, fmt.Errorf("fetch words: %w", err)
	}

	questions := s.gen.Generate(items, testgen.TestType(testType), count)
	if questions == nil {
		questions = []testgen.Question{}
	}
	return questions, nil
}

// SubmitTest grades a submission set and queues the outcome for the result
// worker. The graded result is returned to the caller immediately; the
// database write happens in the background.
func (s *TestService) SubmitTest(ctx context.Context, userID int, req *model.SubmitTestRequest) (*testgen.GradingResult, error) {
	graded := testgen.Grade(req.Answers)

	details, err := json.Marshal(graded.Results)
	if err != nil {
		return nil, fmt.Errorf("marshal details: %w", err)
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"user_id":       userID,
		"wordbook_id":   req.WordbookID.String(),
		"test_type":     req.Type,
		"score":         graded.Score,
		"correct_count": graded.CorrectCount,
		"wrong_count":   graded.WrongCount,
		"total":         graded.Total,
		"is_review":     req.IsReview,
		"details":       json.RawMessage(details),
	})
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, payload).Err(); err != nil {
		// Persistence is best-effort from the student's point of view:
		// they still get their score, the loss is logged.
		s.log.Error().Err(err).Int("user_id", userID).Msg("Failed to queue result")
	}

	s.log.Info().
		Int("user_id", userID).
		Str("wordbook_id", req.WordbookID.String()).
		Int("score", graded.Score).
		Int("total", graded.Total).
		Msg("Test graded")

	return &graded, nil
}

// fetchItems reads a wordbook's items from the Redis cache, falling through
// to PostgreSQL and repopulating on a miss.
func (s *TestService) fetchItems(ctx context.Context, wordbookID uuid.UUID) ([]testgen.WordItem, error) {
	key := config.CacheKey.WordbookItemsKey(wordbookID.String())

	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var items []testgen.WordItem
		if jsonErr := json.Unmarshal(data, &items); jsonErr == nil {
			return items, nil
		}
		// Corrupt cache entry: drop it and fall through.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Wordbook cache read failed, falling through to database")
	}

	words, err := s.words.ListByWordbook(ctx, wordbookID)
	if err != nil {
		return nil, err
	}

	items := make([]testgen.WordItem, 0, len(words))
	for _, w := range words {
		items = append(items, testgen.WordItem{
			ID:              w.ID,
			English:         w.English,
			Korean:          w.Korean,
			ExampleSentence: w.ExampleSentence,
		})
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := s.rdb.Set(ctx, key, raw, wordbookCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Wordbook cache write failed")
		}
	}

	return items, nil
}

// InvalidateWordbookCache drops the cached item list after word changes.
func (s *TestService) InvalidateWordbookCache(ctx context.Context, wordbookID uuid.UUID) {
	if err := s.rdb.Del(ctx, config.CacheKey.WordbookItemsKey(wordbookID.String())).Err(); err != nil {
		s.log.Warn().Err(err).Str("wordbook_id", wordbookID.String()).Msg("Cache invalidation failed")
	}
}
