package service

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/textutil"

	"go.uber.org/zap"
)

const (
	retrieverCandidates = 5
	maxExtractedAnswer  = 150
	maxFallbackAnswer   = 200
)

var questionWords = map[string]struct{}{
	"what": {}, "who": {}, "where": {}, "when": {}, "why": {}, "how": {},
	"is": {}, "are": {}, "does": {}, "do": {}, "can": {}, "will": {},
}

// Retriever answers direct questions from the corpus, preferring
// definition-style phrasing over returning a whole sentence.
type Retriever struct {
	ranker domain.RelevanceRanker
}

// NewRetriever returns a retriever backed by ranker.
func NewRetriever(ranker domain.RelevanceRanker) *Retriever {
	return &Retriever{ranker: ranker}
}

// Answer looks up question. It reports false when the question has no key
// phrase or no sentence is relevant.
func (r *Retriever) Answer(ctx context.Context, question string) (string, bool) {
	key := KeyPhrase(question)
	if key == "" {
		return "", false
	}

	candidates := r.ranker.FindRelevant(ctx, key, retrieverCandidates)
	if len(candidates) == 0 {
		logger.Get().Debug("No candidate sentences for question", zap.String("key", key))
		return "", false
	}

	patterns := definitionPatterns(key)
	for _, sentence := range candidates {
		if answer, ok := extract(patterns, sentence); ok {
			return answer, true
		}
	}
	return truncateAnswer(candidates[0], maxFallbackAnswer), true
}

// KeyPhrase lowercases question and strips leading and trailing question
// words and a trailing question mark.
func KeyPhrase(question string) string {
	words := strings.Fields(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(question)), "?"))
	for len(words) > 0 {
		if _, ok := questionWords[words[0]]; !ok {
			break
		}
		words = words[1:]
	}
	for len(words) > 0 {
		if _, ok := questionWords[words[len(words)-1]]; !ok {
			break
		}
		words = words[:len(words)-1]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.Join(words, " "), "?"))
}

type definitionPattern struct {
	re     *regexp.Regexp
	group  int
	prefix string
}

func definitionPatterns(key string) []definitionPattern {
	term := `\b(?:` + regexp.QuoteMeta(key) + `|` + regexp.QuoteMeta(titleCase(key)) + `)\b`
	return []definitionPattern{
		{re: regexp.MustCompile(`(?i)` + term + `(\s*,\s*also known as\s+[^,]+\s*,)?\s+is\s+([^.]{10,150})`), group: 2},
		{re: regexp.MustCompile(`(?i)` + term + `\s+(refers to|means|denotes)\s+([^.]{10,150})`), group: 2},
		{re: regexp.MustCompile(`(?i)` + term + `\s*,\s*also known as\s+([^,]+)`), group: 1, prefix: "Also known as "},
	}
}

func extract(patterns []definitionPattern, sentence string) (string, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(sentence)
		if m == nil {
			continue
		}
		answer := strings.TrimSpace(m[p.group])
		if p.prefix != "" {
			return p.prefix + answer, true
		}
		return truncateAnswer(answer, maxExtractedAnswer), true
	}
	return "", false
}

func truncateAnswer(s string, limit int) string {
	if textutil.Len(s) <= limit {
		return s
	}
	head := textutil.Prefix(s, limit)
	if i := strings.LastIndex(head, " "); i > 0 {
		head = head[:i]
	}
	return head + textutil.Ellipsis
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
