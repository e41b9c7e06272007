package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/repository"
	"github.com/xuri/excelize/v2"
)

// WordService handles word content management, including Excel import.
type WordService struct {
	words *repository.WordRepository
	log   zerolog.Logger
}

// NewWordService creates a new WordService.
func NewWordService(words *repository.WordRepository, log zerolog.Logger) *WordService {
	return &WordService{
		words: words,
		log:   log.With().Str("component", "word_service").Logger(),
	}
}

// ListByWordbook retrieves all words of a wordbook in their stored order.
func (s *WordService) ListByWordbook(ctx context.Context, wordbookID uuid.UUID) ([]model.Word, error) {
	words, err := s.words.ListByWordbook(ctx, wordbookID)
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []model.Word{}
	}
	return words, nil
}

// Add inserts a single word.
func (s *WordService) Add(ctx context.Context, w *model.Word) error {
	return s.words.Create(ctx, w)
}

// Update modifies a word after checking it belongs to the given wordbook.
func (s *WordService) Update(ctx context.Context, wordbookID uuid.UUID, w *model.Word) error {
	existing, err := s.words.GetByID(ctx, w.ID)
	if err != nil {
		return err
	}
	if existing.WordbookID != wordbookID {
		return ErrWrongAcademy
	}
	return s.words.Update(ctx, w)
}

// Delete removes a word after checking it belongs to the given wordbook.
func (s *WordService) Delete(ctx context.Context, wordbookID, wordID uuid.UUID) error {
	existing, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return err
	}
	if existing.WordbookID != wordbookID {
		return ErrWrongAcademy
	}
	return s.words.Delete(ctx, wordID)
}

// ImportExcel reads an .xlsx sheet of words and bulk-inserts them.
// Expected columns: A=english, B=korean, C=example sentence (optional).
// A first row that looks like a header is skipped. Rows missing either the
// english or korean cell are counted as skipped, not errors.
func (s *WordService) ImportExcel(ctx context.Context, wordbookID uuid.UUID, r io.Reader) (*model.ImportSummary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	summary := &model.ImportSummary{}
	words := make([]model.Word, 0, len(rows))

	for i, row := range rows {
		english, korean, example := cell(row, 0), cell(row, 1), cell(row, 2)

		if i == 0 && strings.EqualFold(english, "english") {
			continue // header row
		}
		if english == "" || korean == "" {
			summary.Skipped++
			if english != "" || korean != "" {
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: incomplete entry", i+1))
			}
			continue
		}

		words = append(words, model.Word{
			WordbookID:      wordbookID,
			English:         english,
			Korean:          korean,
			ExampleSentence: example,
			OrderNum:        len(words),
		})
	}

	if err := s.words.BulkCreate(ctx, wordbookID, words); err != nil {
		return nil, fmt.Errorf("bulk insert: %w", err)
	}
	summary.Imported = len(words)

	s.log.Info().
		Str("wordbook_id", wordbookID.String()).
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Msg("Excel import complete")
	return summary, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
