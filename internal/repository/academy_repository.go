package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vocastudio/voca-backend/internal/model"
)

var ErrDuplicateAcademyCode = errors.New("academy with this code already exists")

// AcademyRepository handles tenant data access.
type AcademyRepository struct {
	pool *pgxpool.Pool
}

// NewAcademyRepository creates a new AcademyRepository.
func NewAcademyRepository(pool *pgxpool.Pool) *AcademyRepository {
	return &AcademyRepository{pool: pool}
}

// GetByID retrieves an academy by ID.
func (r *AcademyRepository) GetByID(ctx context.Context, id int) (*model.Academy, error) {
	a := &model.Academy{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, code, plan, is_active, created_at, updated_at
		 FROM academies WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Code, &a.Plan, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListPaginated retrieves academies ordered by name.
func (r *AcademyRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Academy, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM academies`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, code, plan, is_active, created_at, updated_at
		 FROM academies ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var academies []model.Academy
	for rows.Next() {
		var a model.Academy
		if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.Plan, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		academies = append(academies, a)
	}
	return academies, total, rows.Err()
}

// Create inserts a new academy.
func (r *AcademyRepository) Create(ctx context.Context, a *model.Academy) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO academies (name, code, plan, is_active)
		 VALUES ($1, $2, $3, TRUE)
		 RETURNING id, is_active, created_at, updated_at`,
		a.Name, a.Code, a.Plan,
	).Scan(&a.ID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateAcademyCode
	}
	return err
}

// Update modifies an academy.
func (r *AcademyRepository) Update(ctx context.Context, a *model.Academy) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE academies
		 SET name = COALESCE(NULLIF($1, ''), name),
		     plan = COALESCE(NULLIF($2, ''), plan),
		     is_active = $3,
		     updated_at = NOW()
		 WHERE id = $4`,
		a.Name, a.Plan, a.IsActive, a.ID,
	)
	return err
}

// Delete removes an academy. Fails while users or wordbooks still reference it.
func (r *AcademyRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM academies WHERE id = $1`, id)
	return err
}

// BillingSummary aggregates per-academy usage for invoicing.
func (r *AcademyRepository) BillingSummary(ctx context.Context) ([]model.AcademyBilling, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.name, a.plan,
		        COUNT(u.id) FILTER (WHERE u.role = 'student')  AS student_count,
		        COUNT(u.id) FILTER (WHERE u.role = 'teacher')  AS teacher_count,
		        COALESCE(t.test_count, 0)                      AS test_count
		 FROM academies a
		 LEFT JOIN users u ON u.academy_id = a.id
		 LEFT JOIN (
		     SELECT u.academy_id, COUNT(*) AS test_count
		     FROM test_results tr
		     JOIN users u ON u.id = tr.user_id
		     GROUP BY u.academy_id
		 ) t ON t.academy_id = a.id
		 GROUP BY a.id, a.name, a.plan, t.test_count
		 ORDER BY a.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.AcademyBilling
	for rows.Next() {
		var b model.AcademyBilling
		if err := rows.Scan(&b.AcademyID, &b.AcademyName, &b.Plan, &b.StudentCount, &b.TeacherCount, &b.TestCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, b)
	}
	return summaries, rows.Err()
}
