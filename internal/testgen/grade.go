package testgen

import (
	"math"

	"github.com/google/uuid"
)

// AnswerSubmission is one answered question as sent back by the client.
// CorrectAnswer is the expected answer previously issued by Generate and
// is taken from the request as-is rather than re-resolved from storage.
type AnswerSubmission struct {
	WordID        uuid.UUID `json:"word_id"`
	UserAnswer    string    `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
}

// AnswerResult is a submission annotated with its grading verdict.
type AnswerResult struct {
	AnswerSubmission
	IsCorrect bool `json:"is_correct"`
}

// GradingResult is the aggregate outcome of one graded submission set.
type GradingResult struct {
	Score        int            `json:"score"`
	CorrectCount int            `json:"correct_count"`
	WrongCount   int            `json:"wrong_count"`
	Total        int            `json:"total"`
	Results      []AnswerResult `json:"results"`
}

// Grade scores a submission set. Deterministic and side-effect free:
// grading the same input twice yields the same result.
//
// Score is a 0-100 integer percentage, rounded half away from zero
// (2 of 3 correct grades to 67, 1 of 3 to 33). An empty submission list
// grades to zero across the board instead of a divide-by-zero NaN.
// A blank or missing answer is wrong, never an error.
func Grade(submissions []AnswerSubmission) GradingResult {
	results := make([]AnswerResult, 0, len(submissions))

	correct := 0
	for _, sub := range submissions {
		ok := NormalizedEquals(sub.UserAnswer, sub.CorrectAnswer)
		if ok {
			correct++
		}
		results = append(results, AnswerResult{AnswerSubmission: sub, IsCorrect: ok})
	}

	total := len(submissions)
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return GradingResult{
		Score:        score,
		CorrectCount: correct,
		WrongCount:   total - correct,
		Total:        total,
		Results:      results,
	}
}
