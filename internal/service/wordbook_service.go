package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/repository"
	"github.com/vocastudio/voca-backend/internal/response"
)

// Domain errors.
var (
	ErrNotWordbookOwner = errors.New("not the author of this wordbook")
	ErrWrongAcademy     = errors.New("wordbook belongs to another academy")
)

// WordbookService handles wordbook business logic and tenant scoping.
type WordbookService struct {
	wordbooks *repository.WordbookRepository
	log       zerolog.Logger
}

// NewWordbookService creates a new WordbookService.
func NewWordbookService(wordbooks *repository.WordbookRepository, log zerolog.Logger) *WordbookService {
	return &WordbookService{
		wordbooks: wordbooks,
		log:       log.With().Str("component", "wordbook_service").Logger(),
	}
}

// GetVisible retrieves a wordbook, checking that the academy may see it.
// Shared wordbooks (no academy) are visible to everyone.
func (s *WordbookService) GetVisible(ctx context.Context, id uuid.UUID, academyID int) (*model.Wordbook, error) {
	wb, err := s.wordbooks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wb.AcademyID != nil && academyID != 0 && *wb.AcademyID != academyID {
		return nil, ErrWrongAcademy
	}
	return wb, nil
}

// List retrieves wordbooks visible to an academy with pagination.
func (s *WordbookService) List(ctx context.Context, academyID, page, perPage int) ([]model.Wordbook, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	wordbooks, total, err := s.wordbooks.ListForAcademyPaginated(ctx, academyID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if wordbooks == nil {
		wordbooks = []model.Wordbook{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return wordbooks, pagination, nil
}

// Create inserts a new wordbook owned by the author's academy, or shared
// globally when requested by a super admin.
func (s *WordbookService) Create(ctx context.Context, wb *model.Wordbook) error {
	if err := s.wordbooks.Create(ctx, wb); err != nil {
		return err
	}
	s.log.Info().Str("wordbook_id", wb.ID.String()).Str("title", wb.Title).Msg("Wordbook created")
	return nil
}

// Update modifies a wordbook after an ownership check. Academy admins may
// edit any wordbook of their academy; teachers only their own. authorID 0
// skips the author check (super admin / academy admin).
func (s *WordbookService) Update(ctx context.Context, authorID, academyID int, wb *model.Wordbook) error {
	existing, err := s.requireEditable(ctx, wb.ID, authorID, academyID)
	if err != nil {
		return err
	}
	wb.ID = existing.ID
	return s.wordbooks.Update(ctx, wb)
}

// Delete removes a wordbook after an ownership check.
func (s *WordbookService) Delete(ctx context.Context, id uuid.UUID, authorID, academyID int) error {
	if _, err := s.requireEditable(ctx, id, authorID, academyID); err != nil {
		return err
	}
	return s.wordbooks.Delete(ctx, id)
}

// SyncWordCount recomputes the denormalized word count after word changes.
func (s *WordbookService) SyncWordCount(ctx context.Context, id uuid.UUID) error {
	return s.wordbooks.SyncWordCount(ctx, id)
}

func (s *WordbookService) requireEditable(ctx context.Context, id uuid.UUID, authorID, academyID int) (*model.Wordbook, error) {
	existing, err := s.wordbooks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.AcademyID != nil && academyID != 0 && *existing.AcademyID != academyID {
		return nil, ErrWrongAcademy
	}
	if authorID != 0 && existing.AuthorID != authorID {
		return nil, ErrNotWordbookOwner
	}
	return existing, nil
}
