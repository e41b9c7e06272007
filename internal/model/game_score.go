package model

import (
	"time"

	"github.com/google/uuid"
)

// GameScore is one mini-game run. The live leaderboard lives in Redis;
// rows here are the durable history behind it.
type GameScore struct {
	ID         int64     `json:"id"`
	UserID     int       `json:"user_id"`
	WordbookID uuid.UUID `json:"wordbook_id"`
	Game       string    `json:"game"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmitGameScoreRequest is the payload for reporting a finished game run.
type SubmitGameScoreRequest struct {
	WordbookID uuid.UUID `json:"wordbook_id" binding:"required"`
	Game       string    `json:"game" binding:"required,oneof=matching hangman speed_quiz"`
	Score      int       `json:"score" binding:"min=0"`
}

// LeaderboardEntry is one ranked row of a wordbook leaderboard.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   int    `json:"user_id"`
	UserName string `json:"user_name,omitempty"`
	Score    int    `json:"score"`
}
