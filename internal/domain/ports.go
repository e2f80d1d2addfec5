package domain

import "context"

// Token is one word of a tagged sentence. Tag is a Penn Treebank tag.
type Token struct {
	Text string
	Tag  string
}

// LanguagePipeline splits text into sentences and tags sentences with parts
// of speech. HasTagger reports whether tagging is available; callers take
// their degraded branch when it is not.
type LanguagePipeline interface {
	Sentences(text string) ([]string, error)
	Tag(sentence string) ([]Token, error)
	HasTagger() bool
}

// RelevanceRanker returns up to n corpus sentences relevant to topic, best
// first. It never fails; internal errors degrade to a keyword match.
type RelevanceRanker interface {
	FindRelevant(ctx context.Context, topic string, n int) []string
}

// QuestionSynthesizer turns a single sentence into a question.
type QuestionSynthesizer interface {
	IsEligible(sentence string) bool
	Synthesize(sentence string) (QuestionRecord, bool)
}

// AnswerEvaluator judges a free-text answer against the expected one.
type AnswerEvaluator interface {
	Evaluate(userAnswer, correctAnswer string) Verdict
}
