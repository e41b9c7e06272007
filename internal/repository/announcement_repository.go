package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vocastudio/voca-backend/internal/model"
)

// AnnouncementRepository handles announcement data access.
type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository.
func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

// Create inserts a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO announcements (academy_id, author_id, title, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		a.AcademyID, a.AuthorID, a.Title, a.Body,
	).Scan(&a.ID, &a.CreatedAt)
}

// ListRecent retrieves the latest announcements for an academy.
func (r *AnnouncementRepository) ListRecent(ctx context.Context, academyID, limit int) ([]model.Announcement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, academy_id, author_id, title, body, created_at
		 FROM announcements WHERE academy_id = $1
		 ORDER BY created_at DESC LIMIT $2`, academyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []model.Announcement
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.AcademyID, &a.AuthorID, &a.Title, &a.Body, &a.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}
