package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/repository"
	"github.com/vocastudio/voca-backend/internal/response"
)

// UserStats summarizes a student's test history for the dashboard.
type UserStats struct {
	TestsTaken   int     `json:"tests_taken"`
	AverageScore float64 `json:"average_score"`
	BestScore    int     `json:"best_score"`
}

// ResultService reads persisted test results. Writes go through the result
// worker, never through here.
type ResultService struct {
	results *repository.TestResultRepository
	log     zerolog.Logger
}

// NewResultService creates a new ResultService.
func NewResultService(results *repository.TestResultRepository, log zerolog.Logger) *ResultService {
	return &ResultService{
		results: results,
		log:     log.With().Str("component", "result_service").Logger(),
	}
}

// History retrieves a user's test results, newest first.
func (s *ResultService) History(ctx context.Context, userID, page, perPage int) ([]model.TestResult, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	results, total, err := s.results.ListByUserPaginated(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if results == nil {
		results = []model.TestResult{}
	}
	return results, buildPagination(page, perPage, total), nil
}

// WordbookResults retrieves every student's results for one wordbook,
// newest first. Used by staff to review class performance.
func (s *ResultService) WordbookResults(ctx context.Context, wordbookID uuid.UUID, page, perPage int) ([]model.TestResult, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	results, total, err := s.results.ListByWordbookPaginated(ctx, wordbookID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if results == nil {
		results = []model.TestResult{}
	}
	return results, buildPagination(page, perPage, total), nil
}

// Stats aggregates a user's test history.
func (s *ResultService) Stats(ctx context.Context, userID int) (*UserStats, error) {
	tests, avg, best, err := s.results.UserStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserStats{TestsTaken: tests, AverageScore: avg, BestScore: best}, nil
}

func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func buildPagination(page, perPage, total int) *response.Pagination {
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
}
