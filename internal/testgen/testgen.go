// Package testgen builds vocabulary test papers from wordbook items and
// grades submitted answers. It is pure: no storage access, no persistence,
// every call is scoped to its inputs.
package testgen

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// DefaultQuestionCount is used when the caller does not request a count.
const DefaultQuestionCount = 20

// TestType selects the question shape presented to the student.
type TestType string

const (
	// TestTypeTyping shows the Korean gloss; the student types the English word.
	TestTypeTyping TestType = "typing"
	// TestTypeWordOrder shows shuffled tokens of the example sentence;
	// the student reassembles them in order.
	TestTypeWordOrder TestType = "word_order"
)

// WordItem is the read-only view of one vocabulary entry.
type WordItem struct {
	ID              uuid.UUID `json:"id"`
	English         string    `json:"english"`
	Korean          string    `json:"korean"`
	ExampleSentence string    `json:"example_sentence,omitempty"`
}

// Question is a generated, presentation-shaped view of a WordItem.
// For unrecognized test types the raw item is passed through in Word so
// newer client-side types keep working against an older server.
type Question struct {
	WordID         uuid.UUID `json:"word_id"`
	Type           TestType  `json:"type"`
	PromptText     string    `json:"prompt_text,omitempty"`
	ExpectedAnswer string    `json:"expected_answer,omitempty"`
	Parts          []string  `json:"parts,omitempty"`
	Word           *WordItem `json:"word,omitempty"`
}

// Generator shapes wordbook items into question sets.
// The zero value uses the process-wide random source; tests inject their
// own *rand.Rand for reproducible permutations.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator. rng may be nil, in which case the
// shared top-level math/rand/v2 source is used.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate picks min(count, len(items)) items by uniform Fisher-Yates
// shuffle and shapes each into a Question for testType. count <= 0 falls
// back to DefaultQuestionCount. An empty item list yields an empty paper;
// a count beyond the wordbook size returns everything available.
func (g *Generator) Generate(items []WordItem, testType TestType, count int) []Question {
	if count <= 0 {
		count = DefaultQuestionCount
	}

	shuffled := make([]WordItem, len(items))
	copy(shuffled, items)
	g.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}

	questions := make([]Question, 0, count)
	for _, item := range shuffled[:count] {
		questions = append(questions, g.buildQuestion(item, testType))
	}
	return questions
}

func (g *Generator) buildQuestion(item WordItem, testType TestType) Question {
	switch testType {
	case TestTypeTyping:
		return Question{
			WordID:         item.ID,
			Type:           testType,
			PromptText:     item.Korean,
			ExpectedAnswer: item.English,
		}

	case TestTypeWordOrder:
		// Fall back to the word itself when no example sentence exists.
		expected := item.ExampleSentence
		if strings.TrimSpace(expected) == "" {
			expected = item.English
		}
		parts := strings.Fields(expected)
		g.shuffle(len(parts), func(i, j int) {
			parts[i], parts[j] = parts[j], parts[i]
		})
		return Question{
			WordID:         item.ID,
			Type:           testType,
			PromptText:     item.Korean,
			ExpectedAnswer: expected,
			Parts:          parts,
		}

	default:
		// Unknown type: pass the raw item through untouched.
		word := item
		return Question{WordID: item.ID, Type: testType, Word: &word}
	}
}

func (g *Generator) shuffle(n int, swap func(i, j int)) {
	if g.rng != nil {
		g.rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
