package testgen

import "testing"

func TestNormalizedEquals(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		correct string
		want    bool
	}{
		{name: "exact match", user: "apple", correct: "apple", want: true},
		{name: "case insensitive", user: "Apple", correct: "apple", want: true},
		{name: "punctuation stripped", user: "Hello, World!", correct: "hello world", want: true},
		{name: "whitespace collapsed", user: "red   car", correct: "red car", want: true},
		{name: "leading and trailing space trimmed", user: "  apple  ", correct: "apple", want: true},
		{name: "apostrophe ignored", user: "dont", correct: "don't", want: true},
		{name: "digits kept", user: "route 66", correct: "Route 66!", want: true},
		{name: "korean text compares", user: "사과 입니다", correct: "사과, 입니다", want: true},
		{name: "different words", user: "pear", correct: "apple", want: false},
		{name: "missing word", user: "red", correct: "red car", want: false},
		{name: "empty user answer", user: "", correct: "apple", want: false},
		{name: "blank user answer", user: "   ", correct: "apple", want: false},
		{name: "empty correct answer", user: "apple", correct: "", want: false},
		{name: "both empty never match", user: "", correct: "", want: false},
		{name: "no fuzzy matching", user: "aple", correct: "apple", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizedEquals(tc.user, tc.correct); got != tc.want {
				t.Fatalf("NormalizedEquals(%q, %q) = %v, want %v", tc.user, tc.correct, got, tc.want)
			}
		})
	}
}

func TestNormalizedEquals_Idempotent(t *testing.T) {
	inputs := []string{"Hello, World!", "red  car", "don't", "사과"}
	for _, s := range inputs {
		if !NormalizedEquals(s, s) {
			t.Errorf("NormalizedEquals(%q, %q) = false, want true", s, s)
		}
		if !NormalizedEquals(normalize(s), s) {
			t.Errorf("normalized form of %q does not match itself", s)
		}
	}
}
