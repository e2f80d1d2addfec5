package evaluator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const methodology = "an iterative software development methodology"

func TestFuzzyEvaluator_Evaluate(t *testing.T) {
	e := NewFuzzyEvaluator(DefaultThreshold)

	tests := []struct {
		name    string
		user    string
		correct string
		want    bool
	}{
		{"empty answer", "", "anything", false},
		{"whitespace answer", "   \t", "anything", false},
		{"exact after normalization", "An Iterative, software development methodology!", methodology, true},
		{"correct inside user", "The quick brown fox", "quick brown", true},
		{"long user substring", "iterative software development methodology", methodology, true},
		{"short user substring rejected", "an", methodology, false},
		{"keyword overlap", "iterative development", methodology, true},
		{"unrelated", "banana", methodology, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := e.Evaluate(tt.user, tt.correct)
			assert.Equal(t, tt.want, v.IsCorrect)
			if tt.want {
				assert.Equal(t, "Correct!", v.Feedback)
			} else {
				assert.True(t, strings.HasPrefix(v.Feedback, "Incorrect. The correct answer is: "+tt.correct))
			}
		})
	}
}

func TestFuzzyEvaluator_Reflexive(t *testing.T) {
	e := NewFuzzyEvaluator(DefaultThreshold)
	for _, s := range []string{"Agile", "2 weeks", methodology, "Scrum Master", "What?!"} {
		assert.True(t, e.Evaluate(s, s).IsCorrect, s)
	}
}

func TestFuzzyEvaluator_FeedbackWithoutCloseHint(t *testing.T) {
	e := NewFuzzyEvaluator(DefaultThreshold)
	v := e.Evaluate("banana", methodology)
	assert.False(t, v.IsCorrect)
	assert.Equal(t, "Incorrect. The correct answer is: "+methodology, v.Feedback)
	assert.Less(t, v.Score, 0.3)
}

func TestFuzzyEvaluator_CloseHint(t *testing.T) {
	// A threshold of 1 forces the fuzzy step to fail on a near miss.
	e := NewFuzzyEvaluator(1)
	v := e.Evaluate("sprint reviews", "sprint review")
	assert.True(t, v.IsCorrect, "correct answer is contained in the user answer")

	v = e.Evaluate("retrospektive", "retrospective")
	assert.False(t, v.IsCorrect)
	assert.Contains(t, v.Feedback, "(Your answer was close: ")
	assert.Contains(t, v.Feedback, "% similar)")
}

func TestNewFuzzyEvaluator_InvalidThreshold(t *testing.T) {
	assert.Equal(t, DefaultThreshold, NewFuzzyEvaluator(0).threshold)
	assert.Equal(t, DefaultThreshold, NewFuzzyEvaluator(1.5).threshold)
	assert.Equal(t, 0.8, NewFuzzyEvaluator(0.8).threshold)
}

func TestFuzzyScore(t *testing.T) {
	assert.Equal(t, 0.0, FuzzyScore("", "agile"))
	assert.InDelta(t, 1.0, FuzzyScore("the", "the"), 1e-9)
	assert.InDelta(t, 1.0, FuzzyScore("Agile teams", "agile teams"), 1e-9)

	score := FuzzyScore("iterative development", methodology)
	assert.Greater(t, score, 0.5)
	assert.Less(t, score, 0.6)
}

func TestSequenceRatio(t *testing.T) {
	assert.InDelta(t, 1.0, SequenceRatio("abcd", "abcd"), 1e-9)
	assert.InDelta(t, 0.0, SequenceRatio("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.75, SequenceRatio("abcd", "bcde"), 1e-9)
}

func TestKeyPhraseMatch(t *testing.T) {
	assert.True(t, KeyPhraseMatch("it uses software development heavily", methodology))
	assert.True(t, KeyPhraseMatch("iterative and methodology", methodology))
	assert.False(t, KeyPhraseMatch("methodology", methodology))
	assert.False(t, KeyPhraseMatch("anything", "agile"))
	assert.False(t, KeyPhraseMatch("big dog", "a big cat"), "no word is longer than four characters")
}
