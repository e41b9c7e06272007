package testgen

import (
	"math/rand/v2"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func newTestGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed)))
}

func makeItems(n int) []WordItem {
	items := make([]WordItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, WordItem{
			ID:      uuid.New(),
			English: "word" + string(rune('a'+i)),
			Korean:  "뜻" + string(rune('a'+i)),
		})
	}
	return items
}

func TestGenerate_SelectionBound(t *testing.T) {
	tests := []struct {
		name  string
		items int
		count int
		want  int
	}{
		{name: "count below size", items: 10, count: 5, want: 5},
		{name: "count equals size", items: 10, count: 10, want: 10},
		{name: "count above size returns all", items: 3, count: 50, want: 3},
		{name: "zero count defaults to 20", items: 30, count: 0, want: 20},
		{name: "negative count defaults to 20", items: 30, count: -1, want: 20},
		{name: "empty wordbook yields empty paper", items: 0, count: 20, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGenerator(1)
			got := g.Generate(makeItems(tc.items), TestTypeTyping, tc.count)
			if len(got) != tc.want {
				t.Fatalf("got %d questions, want %d", len(got), tc.want)
			}
		})
	}
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	items := makeItems(8)
	original := make([]WordItem, len(items))
	copy(original, items)

	newTestGenerator(2).Generate(items, TestTypeTyping, 8)

	for i := range items {
		if items[i] != original[i] {
			t.Fatalf("input slice mutated at index %d", i)
		}
	}
}

// TestGenerate_ShuffleUniformity checks the positional distribution of the
// first item across many runs. A comparator-random-sign shuffle keeps items
// close to their original position and fails this; Fisher-Yates passes.
func TestGenerate_ShuffleUniformity(t *testing.T) {
	const (
		n    = 6
		runs = 60000
	)
	items := makeItems(n)
	tracked := items[0].ID

	g := newTestGenerator(42)
	positions := make([]int, n)
	for i := 0; i < runs; i++ {
		qs := g.Generate(items, TestTypeTyping, n)
		for pos, q := range qs {
			if q.WordID == tracked {
				positions[pos]++
				break
			}
		}
	}

	expected := float64(runs) / float64(n)
	for pos, got := range positions {
		ratio := float64(got) / expected
		if ratio < 0.9 || ratio > 1.1 {
			t.Errorf("position %d: observed %d, expected ~%.0f (ratio %.3f)", pos, got, expected, ratio)
		}
	}
}

func TestGenerate_Typing(t *testing.T) {
	items := []WordItem{
		{ID: uuid.New(), English: "apple", Korean: "사과"},
		{ID: uuid.New(), English: "book", Korean: "책"},
	}

	qs := newTestGenerator(3).Generate(items, TestTypeTyping, 2)
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}

	byID := map[uuid.UUID]WordItem{}
	for _, item := range items {
		byID[item.ID] = item
	}

	for _, q := range qs {
		src, ok := byID[q.WordID]
		if !ok {
			t.Fatalf("question references unknown word %s", q.WordID)
		}
		delete(byID, q.WordID)

		if q.PromptText != src.Korean {
			t.Errorf("prompt = %q, want korean gloss %q", q.PromptText, src.Korean)
		}
		if q.ExpectedAnswer != src.English {
			t.Errorf("expected answer = %q, want %q", q.ExpectedAnswer, src.English)
		}
	}
	if len(byID) != 0 {
		t.Errorf("%d source items were never used", len(byID))
	}
}

func TestGenerate_WordOrderTokenIntegrity(t *testing.T) {
	items := []WordItem{
		{ID: uuid.New(), English: "apple", Korean: "사과", ExampleSentence: "I ate a red apple this morning"},
		{ID: uuid.New(), English: "book", Korean: "책", ExampleSentence: "the book the whole book"},
	}

	for run := uint64(0); run < 50; run++ {
		qs := newTestGenerator(run).Generate(items, TestTypeWordOrder, len(items))
		for _, q := range qs {
			want := strings.Fields(q.ExpectedAnswer)
			got := append([]string(nil), q.Parts...)
			sort.Strings(want)
			sort.Strings(got)
			if strings.Join(got, " ") != strings.Join(want, " ") {
				t.Fatalf("parts %v are not a permutation of %q", q.Parts, q.ExpectedAnswer)
			}
		}
	}
}

func TestGenerate_WordOrderFallsBackToEnglish(t *testing.T) {
	items := []WordItem{{ID: uuid.New(), English: "apple", Korean: "사과"}}

	qs := newTestGenerator(7).Generate(items, TestTypeWordOrder, 1)
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	q := qs[0]
	if q.ExpectedAnswer != "apple" {
		t.Errorf("expected answer = %q, want english fallback %q", q.ExpectedAnswer, "apple")
	}
	if len(q.Parts) != 1 || q.Parts[0] != "apple" {
		t.Errorf("parts = %v, want single-token %v", q.Parts, []string{"apple"})
	}
}

func TestGenerate_UnknownTypePassesWordThrough(t *testing.T) {
	items := []WordItem{{ID: uuid.New(), English: "apple", Korean: "사과", ExampleSentence: "an apple a day"}}

	qs := newTestGenerator(9).Generate(items, TestType("flashcard"), 1)
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	q := qs[0]
	if q.Type != TestType("flashcard") {
		t.Errorf("type = %q, want requested type kept", q.Type)
	}
	if q.Word == nil || *q.Word != items[0] {
		t.Errorf("raw word not passed through: %+v", q.Word)
	}
	if q.PromptText != "" || q.ExpectedAnswer != "" || q.Parts != nil {
		t.Errorf("fallback question must not be shaped: %+v", q)
	}
}
