package model

import (
	"time"

	"github.com/google/uuid"
)

// Wordbook is a named collection of vocabulary items. AcademyID is nil for
// globally shared wordbooks visible to every academy.
type Wordbook struct {
	ID          uuid.UUID `json:"id"`
	AcademyID   *int      `json:"academy_id,omitempty"`
	AuthorID    int       `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Level       string    `json:"level,omitempty"`
	WordCount   int       `json:"word_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateWordbookRequest is the payload for creating a wordbook.
type CreateWordbookRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Level       string `json:"level" binding:"omitempty,max=50"`
	Shared      bool   `json:"shared"`
}

// UpdateWordbookRequest is the payload for updating a wordbook.
type UpdateWordbookRequest struct {
	Title       string `json:"title" binding:"omitempty,min=1,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Level       string `json:"level" binding:"omitempty,max=50"`
}
