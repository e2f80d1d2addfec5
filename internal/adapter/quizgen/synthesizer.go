// Package quizgen turns single lecture sentences into question/answer pairs
// with an ordered cascade of pattern rules.
package quizgen

import (
	"strings"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/textutil"

	"go.uber.org/zap"
)

const (
	MaxAnswerLength   = 100
	MaxQuestionLength = 200
	MaxContextLength  = 200

	minQuestionLength = 10
	minAnswerLength   = 5
	maxCommas         = 8
	minTokens         = 5
	verbFreeTokens    = 10
)

// strategy tries to build a question from a sentence whose trailing
// punctuation has been stripped. An empty question or answer declines.
type strategy struct {
	name  string
	apply func(sentence string) (question, answer string)
}

// Synthesizer implements domain.QuestionSynthesizer.
type Synthesizer struct {
	nlp        domain.LanguagePipeline
	strategies []strategy
}

// NewSynthesizer builds the strategy cascade. nlp may be nil or lack a
// tagger; the tag-based rules then run in their degraded form.
func NewSynthesizer(nlp domain.LanguagePipeline) *Synthesizer {
	s := &Synthesizer{nlp: nlp}
	s.strategies = []strategy{
		{"definition", definition},
		{"agent", agent},
		{"quantity", quantity},
		{"fill_in_blank", s.fillInBlank},
		{"capability", capability},
		{"composition", composition},
		{"purpose", purpose},
		{"loose_definition", looseDefinition},
		{"explain", s.explain},
	}
	return s
}

// IsEligible reports whether sentence is worth synthesizing: long enough,
// capitalized, not a list, and carrying a verb unless it is long.
func (s *Synthesizer) IsEligible(sentence string) bool {
	trimmed := strings.TrimSpace(sentence)
	if textutil.Len(trimmed) <= 20 || !textutil.StartsUpper(trimmed) {
		return false
	}
	if strings.Count(trimmed, ",") > maxCommas {
		return false
	}

	tokens, ok := s.tag(trimmed)
	if !ok {
		return len(strings.Fields(trimmed)) >= minTokens
	}
	if len(tokens) < minTokens {
		return false
	}
	if len(tokens) >= verbFreeTokens {
		return true
	}
	for _, tok := range tokens {
		if strings.HasPrefix(tok.Tag, "VB") {
			return true
		}
	}
	return false
}

// Synthesize runs the strategies in order and returns the first usable
// question. It reports false when every strategy declines or the result is
// too short after cleanup.
func (s *Synthesizer) Synthesize(sentence string) (domain.QuestionRecord, bool) {
	original := strings.TrimSpace(sentence)
	if textutil.Len(original) < 20 {
		return domain.QuestionRecord{}, false
	}
	stripped := strings.TrimRight(original, ".!?")

	for _, st := range s.strategies {
		question, answer := st.apply(stripped)
		if question == "" || answer == "" {
			continue
		}
		question, answer = finish(question, answer)
		if textutil.Len(question) <= minQuestionLength || textutil.Len(answer) <= minAnswerLength {
			logger.Get().Debug("Question rejected after cleanup",
				zap.String("strategy", st.name),
				zap.String("question", question))
			return domain.QuestionRecord{}, false
		}
		logger.Get().Debug("Question synthesized", zap.String("strategy", st.name), zap.String("question", question))
		return domain.QuestionRecord{
			Question: question,
			Answer:   answer,
			Context:  textutil.Prefix(original, MaxContextLength),
		}, true
	}
	return domain.QuestionRecord{}, false
}

func finish(question, answer string) (string, string) {
	answer = textutil.CollapseSpaces(strings.TrimRight(strings.TrimSpace(answer), ".!?"))
	answer = textutil.TruncateAtWord(answer, MaxAnswerLength)
	question = textutil.TruncateAtWord(textutil.CollapseSpaces(question), MaxQuestionLength)
	return question, answer
}

// tag returns the tagged tokens of sentence, or false when no tagger is
// available or tagging failed.
func (s *Synthesizer) tag(sentence string) ([]domain.Token, bool) {
	if s.nlp == nil || !s.nlp.HasTagger() {
		return nil, false
	}
	tokens, err := s.nlp.Tag(sentence)
	if err != nil {
		logger.Get().Debug("Tagging failed", zap.Error(err))
		return nil, false
	}
	return tokens, true
}
