package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vocastudio/voca-backend/internal/model"
)

// WordRepository handles word data access. It is the WordSource behind
// test generation.
type WordRepository struct {
	pool *pgxpool.Pool
}

// NewWordRepository creates a new WordRepository.
func NewWordRepository(pool *pgxpool.Pool) *WordRepository {
	return &WordRepository{pool: pool}
}

// ListByWordbook retrieves all words of a wordbook ordered by order_num.
func (r *WordRepository) ListByWordbook(ctx context.Context, wordbookID uuid.UUID) ([]model.Word, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, wordbook_id, english, korean, example_sentence, order_num, created_at
		 FROM words WHERE wordbook_id = $1
		 ORDER BY order_num`, wordbookID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []model.Word
	for rows.Next() {
		var w model.Word
		if err := rows.Scan(&w.ID, &w.WordbookID, &w.English, &w.Korean, &w.ExampleSentence, &w.OrderNum, &w.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// GetByID retrieves a single word.
func (r *WordRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Word, error) {
	w := &model.Word{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, wordbook_id, english, korean, example_sentence, order_num, created_at
		 FROM words WHERE id = $1`, id,
	).Scan(&w.ID, &w.WordbookID, &w.English, &w.Korean, &w.ExampleSentence, &w.OrderNum, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Create inserts a new word.
func (r *WordRepository) Create(ctx context.Context, w *model.Word) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO words (wordbook_id, english, korean, example_sentence, order_num)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		w.WordbookID, w.English, w.Korean, w.ExampleSentence, w.OrderNum,
	).Scan(&w.ID, &w.CreatedAt)
}

// BulkCreate inserts many words in one round trip via UNNEST.
// Used by the Excel import path.
func (r *WordRepository) BulkCreate(ctx context.Context, wordbookID uuid.UUID, words []model.Word) error {
	if len(words) == 0 {
		return nil
	}

	n := len(words)
	english := make([]string, 0, n)
	korean := make([]string, 0, n)
	examples := make([]string, 0, n)
	orders := make([]int, 0, n)

	for _, w := range words {
		english = append(english, w.English)
		korean = append(korean, w.Korean)
		examples = append(examples, w.ExampleSentence)
		orders = append(orders, w.OrderNum)
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO words (wordbook_id, english, korean, example_sentence, order_num)
		 SELECT $1, u.english, u.korean, u.example_sentence, u.order_num
		 FROM UNNEST(
		     $2::text[],
		     $3::text[],
		     $4::text[],
		     $5::int[]
		 ) AS u (english, korean, example_sentence, order_num)`,
		wordbookID, english, korean, examples, orders,
	)
	return err
}

// Update modifies a word.
func (r *WordRepository) Update(ctx context.Context, w *model.Word) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE words
		 SET english = $1, korean = $2, example_sentence = $3, order_num = $4
		 WHERE id = $5`,
		w.English, w.Korean, w.ExampleSentence, w.OrderNum, w.ID,
	)
	return err
}

// Delete removes a word.
func (r *WordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM words WHERE id = $1`, id)
	return err
}
