package testgen

import (
	"strings"
	"unicode"
)

// NormalizedEquals reports whether two free-typed answers match after
// normalization. A blank side is always a mismatch; missing input is
// wrong, not vacuously equal. This is the single definition of "correct"
// for the whole application — grading must not grow a second one.
func NormalizedEquals(userAnswer, correctAnswer string) bool {
	if strings.TrimSpace(userAnswer) == "" || strings.TrimSpace(correctAnswer) == "" {
		return false
	}
	return normalize(userAnswer) == normalize(correctAnswer)
}

// normalize strips everything that is not a letter, digit or whitespace,
// lowercases, and collapses whitespace runs to single spaces. Unicode-aware
// so non-ASCII content grades the same way as the shipped English answers.
func normalize(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}
