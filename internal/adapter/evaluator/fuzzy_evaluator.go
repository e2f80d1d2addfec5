// Package evaluator judges free-text answers with approximate text matching.
package evaluator

import (
	"fmt"
	"strings"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/textutil"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	// DefaultThreshold is the fuzzy score at or above which an answer passes.
	DefaultThreshold = 0.6

	sequenceWeight   = 0.4
	keywordWeight    = 0.6
	containmentRatio = 0.7
	closeScore       = 0.3
	importantWordLen = 4
	minPhraseLen     = 5
)

const feedbackCorrect = "Correct!"

// FuzzyEvaluator implements domain.AnswerEvaluator. The checks run from
// strict to permissive and the first that passes decides.
type FuzzyEvaluator struct {
	threshold float64
}

// NewFuzzyEvaluator returns an evaluator with the given fuzzy threshold.
// Values outside (0, 1] fall back to DefaultThreshold.
func NewFuzzyEvaluator(threshold float64) *FuzzyEvaluator {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &FuzzyEvaluator{threshold: threshold}
}

// Evaluate judges userAnswer against correctAnswer.
func (e *FuzzyEvaluator) Evaluate(userAnswer, correctAnswer string) domain.Verdict {
	incorrect := "Incorrect. The correct answer is: " + correctAnswer
	if strings.TrimSpace(userAnswer) == "" {
		return domain.Verdict{Feedback: incorrect}
	}

	user := textutil.Normalize(userAnswer)
	correct := textutil.Normalize(correctAnswer)

	if user == correct || strings.Contains(user, correct) {
		return domain.Verdict{IsCorrect: true, Feedback: feedbackCorrect, Score: 1}
	}
	if strings.Contains(correct, user) && float64(textutil.Len(user)) > float64(textutil.Len(correct))*containmentRatio {
		return domain.Verdict{IsCorrect: true, Feedback: feedbackCorrect, Score: 1}
	}

	score := FuzzyScore(userAnswer, correctAnswer)
	if score >= e.threshold {
		return domain.Verdict{IsCorrect: true, Feedback: feedbackCorrect, Score: score}
	}
	if KeyPhraseMatch(user, correct) {
		return domain.Verdict{IsCorrect: true, Feedback: feedbackCorrect, Score: score}
	}

	if score > closeScore {
		incorrect += fmt.Sprintf(" (Your answer was close: %.0f%% similar)", score*100)
	}
	return domain.Verdict{Feedback: incorrect, Score: score}
}

// FuzzyScore blends character sequence similarity with keyword overlap.
// When either side has no keywords only the sequence similarity counts.
func FuzzyScore(a, b string) float64 {
	na, nb := textutil.Normalize(a), textutil.Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	seq := SequenceRatio(na, nb)

	ka, kb := textutil.ExtractKeywords(a), textutil.ExtractKeywords(b)
	if len(ka) == 0 || len(kb) == 0 {
		return seq
	}
	return sequenceWeight*seq + keywordWeight*jaccard(ka, kb)
}

// SequenceRatio is the Ratcliff/Obershelp similarity of the characters of
// a and b, in [0, 1].
func SequenceRatio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// KeyPhraseMatch expects normalized input. It passes when a two-word phrase
// of correct appears in user, or when at least half of the long words of
// correct appear in user.
func KeyPhraseMatch(user, correct string) bool {
	words := strings.Fields(correct)
	if len(words) < 2 {
		return false
	}
	for i := 0; i+1 < len(words); i++ {
		phrase := words[i] + " " + words[i+1]
		if textutil.Len(phrase) > minPhraseLen && strings.Contains(user, phrase) {
			return true
		}
	}

	important, matched := 0, 0
	for _, w := range words {
		if textutil.Len(w) <= importantWordLen {
			continue
		}
		important++
		if strings.Contains(user, w) {
			matched++
		}
	}
	if important == 0 {
		return false
	}
	return float64(matched) >= float64(important)*0.5
}

func jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
