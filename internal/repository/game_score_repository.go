package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vocastudio/voca-backend/internal/model"
)

// GameScoreRepository handles the durable history behind the Redis
// leaderboards.
type GameScoreRepository struct {
	pool *pgxpool.Pool
}

// NewGameScoreRepository creates a new GameScoreRepository.
func NewGameScoreRepository(pool *pgxpool.Pool) *GameScoreRepository {
	return &GameScoreRepository{pool: pool}
}

// InsertBatch stores many game runs in one round trip via UNNEST.
// Used by the game score worker when flushing its queue.
func (r *GameScoreRepository) InsertBatch(ctx context.Context, scores []*model.GameScore) error {
	if len(scores) == 0 {
		return nil
	}

	n := len(scores)
	userIDs := make([]int, 0, n)
	wordbookIDs := make([]uuid.UUID, 0, n)
	games := make([]string, 0, n)
	points := make([]int, 0, n)
	createdAts := make([]time.Time, 0, n)

	now := time.Now()
	for _, gs := range scores {
		userIDs = append(userIDs, gs.UserID)
		wordbookIDs = append(wordbookIDs, gs.WordbookID)
		games = append(games, gs.Game)
		points = append(points, gs.Score)
		createdAts = append(createdAts, now)
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO game_scores (user_id, wordbook_id, game, score, created_at)
		 SELECT u.user_id, u.wordbook_id, u.game, u.score, u.created_at
		 FROM UNNEST(
		     $1::int[],
		     $2::uuid[],
		     $3::text[],
		     $4::int[],
		     $5::timestamptz[]
		 ) AS u (user_id, wordbook_id, game, score, created_at)`,
		userIDs, wordbookIDs, games, points, createdAts,
	)
	return err
}

// Insert stores a single game run. Fallback path when a batch fails.
func (r *GameScoreRepository) Insert(ctx context.Context, gs *model.GameScore) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO game_scores (user_id, wordbook_id, game, score)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		gs.UserID, gs.WordbookID, gs.Game, gs.Score,
	).Scan(&gs.ID, &gs.CreatedAt)
}

// TopByWordbook returns the best score per user for a wordbook, used to
// rebuild a Redis leaderboard that was evicted.
func (r *GameScoreRepository) TopByWordbook(ctx context.Context, wordbookID uuid.UUID, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT gs.user_id, u.name, MAX(gs.score) AS best
		 FROM game_scores gs
		 JOIN users u ON u.id = gs.user_id
		 WHERE gs.wordbook_id = $1
		 GROUP BY gs.user_id, u.name
		 ORDER BY best DESC
		 LIMIT $2`, wordbookID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.Score); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
