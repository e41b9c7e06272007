package model

import (
	"time"

	"github.com/google/uuid"
)

// Word is one vocabulary entry inside a wordbook.
type Word struct {
	ID              uuid.UUID `json:"id"`
	WordbookID      uuid.UUID `json:"wordbook_id"`
	English         string    `json:"english"`
	Korean          string    `json:"korean"`
	ExampleSentence string    `json:"example_sentence,omitempty"`
	OrderNum        int       `json:"order_num"`
	CreatedAt       time.Time `json:"created_at"`
}

// AddWordRequest is the payload for adding a word to a wordbook.
type AddWordRequest struct {
	English         string `json:"english" binding:"required,min=1,max=255"`
	Korean          string `json:"korean" binding:"required,min=1,max=255"`
	ExampleSentence string `json:"example_sentence" binding:"omitempty,max=1000"`
	OrderNum        int    `json:"order_num" binding:"min=0"`
}

// UpdateWordRequest is the payload for updating a word.
type UpdateWordRequest struct {
	English         string `json:"english" binding:"omitempty,min=1,max=255"`
	Korean          string `json:"korean" binding:"omitempty,min=1,max=255"`
	ExampleSentence *string `json:"example_sentence" binding:"omitempty,max=1000"`
	OrderNum        *int    `json:"order_num" binding:"omitempty,min=0"`
}

// ImportSummary reports the outcome of an Excel word import.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
