package testgen

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func sub(user, correct string) AnswerSubmission {
	return AnswerSubmission{WordID: uuid.New(), UserAnswer: user, CorrectAnswer: correct}
}

func TestGrade_ScoreArithmetic(t *testing.T) {
	tests := []struct {
		name        string
		submissions []AnswerSubmission
		score       int
		correct     int
		wrong       int
	}{
		{
			name:        "all correct",
			submissions: []AnswerSubmission{sub("apple", "apple"), sub("book", "book")},
			score:       100, correct: 2, wrong: 0,
		},
		{
			name:        "all wrong",
			submissions: []AnswerSubmission{sub("pear", "apple"), sub("", "book")},
			score:       0, correct: 0, wrong: 2,
		},
		{
			name:        "two thirds rounds up to 67",
			submissions: []AnswerSubmission{sub("a", "a"), sub("b", "b"), sub("x", "c")},
			score:       67, correct: 2, wrong: 1,
		},
		{
			name:        "one third rounds to 33",
			submissions: []AnswerSubmission{sub("a", "a"), sub("x", "b"), sub("x", "c")},
			score:       33, correct: 1, wrong: 2,
		},
		{
			name:        "half scores 50",
			submissions: []AnswerSubmission{sub("Apple", "apple"), sub("", "book")},
			score:       50, correct: 1, wrong: 1,
		},
		{
			name:        "empty submission list scores zero, not NaN",
			submissions: nil,
			score:       0, correct: 0, wrong: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(tc.submissions)
			if got.Score != tc.score || got.CorrectCount != tc.correct || got.WrongCount != tc.wrong {
				t.Fatalf("got score=%d correct=%d wrong=%d, want %d/%d/%d",
					got.Score, got.CorrectCount, got.WrongCount, tc.score, tc.correct, tc.wrong)
			}
			if got.Total != len(tc.submissions) {
				t.Errorf("total = %d, want %d", got.Total, len(tc.submissions))
			}
			if got.CorrectCount+got.WrongCount != got.Total {
				t.Errorf("counts do not add up: %d + %d != %d", got.CorrectCount, got.WrongCount, got.Total)
			}
			if len(got.Results) != len(tc.submissions) {
				t.Errorf("results length = %d, want %d", len(got.Results), len(tc.submissions))
			}
		})
	}
}

func TestGrade_Deterministic(t *testing.T) {
	submissions := []AnswerSubmission{
		sub("Apple!", "apple"),
		sub("", "book"),
		sub("red car", "red  car"),
	}

	first := Grade(submissions)
	second := Grade(submissions)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("grading is not deterministic:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestGrade_EmptyAnswerIsAlwaysWrong(t *testing.T) {
	for _, user := range []string{"", "   ", "\t\n"} {
		got := Grade([]AnswerSubmission{sub(user, "book")})
		if got.Results[0].IsCorrect {
			t.Errorf("blank answer %q graded correct against %q", user, "book")
		}
	}
}

func TestGrade_ResultsKeepSubmissionOrder(t *testing.T) {
	submissions := []AnswerSubmission{sub("apple", "apple"), sub("x", "book"), sub("cat", "cat")}

	got := Grade(submissions)
	for i, r := range got.Results {
		if r.WordID != submissions[i].WordID {
			t.Fatalf("result %d reordered: got word %s, want %s", i, r.WordID, submissions[i].WordID)
		}
	}
	wantVerdicts := []bool{true, false, true}
	for i, r := range got.Results {
		if r.IsCorrect != wantVerdicts[i] {
			t.Errorf("result %d verdict = %v, want %v", i, r.IsCorrect, wantVerdicts[i])
		}
	}
}
