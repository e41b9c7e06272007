package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/vocastudio/voca-backend/internal/testgen"
)

// TestResult is one persisted graded test. Details carries the per-answer
// verdicts as produced by grading, stored as JSONB.
type TestResult struct {
	ID           int64           `json:"id"`
	UserID       int             `json:"user_id"`
	WordbookID   uuid.UUID       `json:"wordbook_id"`
	TestType     string          `json:"test_type"`
	Score        int             `json:"score"`
	CorrectCount int             `json:"correct_count"`
	WrongCount   int             `json:"wrong_count"`
	Total        int             `json:"total"`
	IsReview     bool            `json:"is_review"`
	Details      json.RawMessage `json:"details,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// GenerateTestRequest is the payload for requesting a test paper.
type GenerateTestRequest struct {
	WordbookID uuid.UUID `json:"wordbook_id" binding:"required"`
	Type       string    `json:"type" binding:"required,max=50"`
	Count      int       `json:"count" binding:"omitempty,min=1,max=100"`
}

// SubmitTestRequest is the payload for submitting answers for grading.
type SubmitTestRequest struct {
	WordbookID uuid.UUID                  `json:"wordbook_id" binding:"required"`
	Type       string                     `json:"type" binding:"required,max=50"`
	Answers    []testgen.AnswerSubmission `json:"answers" binding:"dive"`
	IsReview   bool                       `json:"is_review"`
}
