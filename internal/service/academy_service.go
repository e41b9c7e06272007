package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/repository"
	"github.com/vocastudio/voca-backend/internal/response"
)

// AcademyService handles tenant management (super admin only).
type AcademyService struct {
	academies *repository.AcademyRepository
	log       zerolog.Logger
}

// NewAcademyService creates a new AcademyService.
func NewAcademyService(academies *repository.AcademyRepository, log zerolog.Logger) *AcademyService {
	return &AcademyService{
		academies: academies,
		log:       log.With().Str("component", "academy_service").Logger(),
	}
}

// GetByID retrieves an academy.
func (s *AcademyService) GetByID(ctx context.Context, id int) (*model.Academy, error) {
	return s.academies.GetByID(ctx, id)
}

// List retrieves academies with pagination.
func (s *AcademyService) List(ctx context.Context, page, perPage int) ([]model.Academy, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	academies, total, err := s.academies.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if academies == nil {
		academies = []model.Academy{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return academies, pagination, nil
}

// Create registers a new academy on the free plan unless specified.
func (s *AcademyService) Create(ctx context.Context, a *model.Academy) error {
	if a.Plan == "" {
		a.Plan = "free"
	}
	if err := s.academies.Create(ctx, a); err != nil {
		return err
	}
	s.log.Info().Int("academy_id", a.ID).Str("code", a.Code).Msg("Academy created")
	return nil
}

// Update modifies an academy.
func (s *AcademyService) Update(ctx context.Context, a *model.Academy) error {
	return s.academies.Update(ctx, a)
}

// Delete removes an academy.
func (s *AcademyService) Delete(ctx context.Context, id int) error {
	return s.academies.Delete(ctx, id)
}

// BillingSummary aggregates usage across all academies for invoicing.
func (s *AcademyService) BillingSummary(ctx context.Context) ([]model.AcademyBilling, error) {
	summaries, err := s.academies.BillingSummary(ctx)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []model.AcademyBilling{}
	}
	return summaries, nil
}
