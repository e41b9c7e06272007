package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vocastudio/voca-backend/internal/model"
)

// TestResultRepository handles persisted graded test data access.
type TestResultRepository struct {
	pool *pgxpool.Pool
}

// NewTestResultRepository creates a new TestResultRepository.
func NewTestResultRepository(pool *pgxpool.Pool) *TestResultRepository {
	return &TestResultRepository{pool: pool}
}

// Insert stores a single graded result.
func (r *TestResultRepository) Insert(ctx context.Context, tr *model.TestResult) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO test_results (user_id, wordbook_id, test_type, score, correct_count, wrong_count, total, is_review, details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		tr.UserID, tr.WordbookID, tr.TestType, tr.Score, tr.CorrectCount, tr.WrongCount, tr.Total, tr.IsReview, tr.Details,
	).Scan(&tr.ID, &tr.CreatedAt)
}

// InsertBatch stores many graded results in one round trip via UNNEST.
// Used by the result worker when flushing its queue.
func (r *TestResultRepository) InsertBatch(ctx context.Context, results []*model.TestResult) error {
	if len(results) == 0 {
		return nil
	}

	n := len(results)
	userIDs := make([]int, 0, n)
	wordbookIDs := make([]uuid.UUID, 0, n)
	testTypes := make([]string, 0, n)
	scores := make([]int, 0, n)
	corrects := make([]int, 0, n)
	wrongs := make([]int, 0, n)
	totals := make([]int, 0, n)
	reviews := make([]bool, 0, n)
	details := make([][]byte, 0, n)
	createdAts := make([]time.Time, 0, n)

	now := time.Now()
	for _, tr := range results {
		det := tr.Details
		if det == nil {
			det = json.RawMessage("null")
		}
		userIDs = append(userIDs, tr.UserID)
		wordbookIDs = append(wordbookIDs, tr.WordbookID)
		testTypes = append(testTypes, tr.TestType)
		scores = append(scores, tr.Score)
		corrects = append(corrects, tr.CorrectCount)
		wrongs = append(wrongs, tr.WrongCount)
		totals = append(totals, tr.Total)
		reviews = append(reviews, tr.IsReview)
		details = append(details, det)
		createdAts = append(createdAts, now)
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO test_results (user_id, wordbook_id, test_type, score, correct_count, wrong_count, total, is_review, details, created_at)
		 SELECT u.user_id, u.wordbook_id, u.test_type, u.score, u.correct_count, u.wrong_count, u.total, u.is_review, u.details, u.created_at
		 FROM UNNEST(
		     $1::int[],
		     $2::uuid[],
		     $3::text[],
		     $4::int[],
		     $5::int[],
		     $6::int[],
		     $7::int[],
		     $8::boolean[],
		     $9::jsonb[],
		     $10::timestamptz[]
		 ) AS u (user_id, wordbook_id, test_type, score, correct_count, wrong_count, total, is_review, details, created_at)`,
		userIDs, wordbookIDs, testTypes, scores, corrects, wrongs, totals, reviews, details, createdAts,
	)
	return err
}

// ListByUserPaginated retrieves a user's result history, newest first.
func (r *TestResultRepository) ListByUserPaginated(ctx context.Context, userID, limit, offset int) ([]model.TestResult, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM test_results WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, wordbook_id, test_type, score, correct_count, wrong_count, total, is_review, details, created_at
		 FROM test_results WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return scanResults(rows, total)
}

// ListByWordbookPaginated retrieves results for a wordbook across students,
// newest first. Used by teachers reviewing class performance.
func (r *TestResultRepository) ListByWordbookPaginated(ctx context.Context, wordbookID uuid.UUID, limit, offset int) ([]model.TestResult, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM test_results WHERE wordbook_id = $1`, wordbookID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, wordbook_id, test_type, score, correct_count, wrong_count, total, is_review, details, created_at
		 FROM test_results WHERE wordbook_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		wordbookID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return scanResults(rows, total)
}

// UserStats aggregates a user's lifetime test activity for the dashboard.
func (r *TestResultRepository) UserStats(ctx context.Context, userID int) (tests int, avgScore float64, bestScore int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(AVG(score), 0),
		        COALESCE(MAX(score), 0)
		 FROM test_results WHERE user_id = $1 AND NOT is_review`, userID,
	).Scan(&tests, &avgScore, &bestScore)
	return tests, avgScore, bestScore, err
}

type resultRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanResults(rows resultRows, total int) ([]model.TestResult, int, error) {
	var results []model.TestResult
	for rows.Next() {
		var tr model.TestResult
		if err := rows.Scan(&tr.ID, &tr.UserID, &tr.WordbookID, &tr.TestType, &tr.Score,
			&tr.CorrectCount, &tr.WrongCount, &tr.Total, &tr.IsReview, &tr.Details, &tr.CreatedAt); err != nil {
			return nil, 0, err
		}
		results = append(results, tr)
	}
	return results, total, rows.Err()
}
