package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vocastudio/voca-backend/internal/model"
)

// WordbookRepository handles wordbook data access.
type WordbookRepository struct {
	pool *pgxpool.Pool
}

// NewWordbookRepository creates a new WordbookRepository.
func NewWordbookRepository(pool *pgxpool.Pool) *WordbookRepository {
	return &WordbookRepository{pool: pool}
}

// GetByID retrieves a wordbook by its UUID.
func (r *WordbookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Wordbook, error) {
	w := &model.Wordbook{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, academy_id, author_id, title, description, level, word_count, created_at, updated_at
		 FROM wordbooks WHERE id = $1`, id,
	).Scan(&w.ID, &w.AcademyID, &w.AuthorID, &w.Title, &w.Description, &w.Level, &w.WordCount, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// ListForAcademyPaginated retrieves wordbooks visible to an academy:
// its own plus globally shared ones (academy_id IS NULL).
func (r *WordbookRepository) ListForAcademyPaginated(ctx context.Context, academyID, limit, offset int) ([]model.Wordbook, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM wordbooks WHERE academy_id = $1 OR academy_id IS NULL`,
		academyID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, academy_id, author_id, title, description, level, word_count, created_at, updated_at
		 FROM wordbooks
		 WHERE academy_id = $1 OR academy_id IS NULL
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		academyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var wordbooks []model.Wordbook
	for rows.Next() {
		var w model.Wordbook
		if err := rows.Scan(&w.ID, &w.AcademyID, &w.AuthorID, &w.Title, &w.Description, &w.Level, &w.WordCount, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, 0, err
		}
		wordbooks = append(wordbooks, w)
	}
	return wordbooks, total, rows.Err()
}

// Create inserts a new wordbook.
func (r *WordbookRepository) Create(ctx context.Context, w *model.Wordbook) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO wordbooks (academy_id, author_id, title, description, level)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, word_count, created_at, updated_at`,
		w.AcademyID, w.AuthorID, w.Title, w.Description, w.Level,
	).Scan(&w.ID, &w.WordCount, &w.CreatedAt, &w.UpdatedAt)
}

// Update modifies a wordbook's metadata.
func (r *WordbookRepository) Update(ctx context.Context, w *model.Wordbook) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE wordbooks
		 SET title = COALESCE(NULLIF($1, ''), title),
		     description = COALESCE(NULLIF($2, ''), description),
		     level = COALESCE(NULLIF($3, ''), level),
		     updated_at = NOW()
		 WHERE id = $4`,
		w.Title, w.Description, w.Level, w.ID,
	)
	return err
}

// Delete removes a wordbook and, via cascade, its words.
func (r *WordbookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wordbooks WHERE id = $1`, id)
	return err
}

// SyncWordCount recomputes the denormalized word_count column.
func (r *WordbookRepository) SyncWordCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE wordbooks
		 SET word_count = (SELECT COUNT(*) FROM words WHERE wordbook_id = $1),
		     updated_at = NOW()
		 WHERE id = $1`, id)
	return err
}
