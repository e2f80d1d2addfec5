// Package corpus turns cleaned lecture text into the sentence list every
// other component works on.
package corpus

import (
	"regexp"
	"strings"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/textutil"

	"go.uber.org/zap"
)

// MinSentenceLength is the exclusive lower bound on a kept sentence.
const MinSentenceLength = 20

var fallbackSplit = regexp.MustCompile(`[.!?]+\s+`)

// Build splits text into trimmed sentences longer than MinSentenceLength,
// in document order. The segmenter of nlp is used when it works; otherwise
// text is split on sentence punctuation.
func Build(nlp domain.LanguagePipeline, text string) []string {
	var raw []string
	if nlp != nil {
		sentences, err := nlp.Sentences(text)
		if err != nil {
			logger.Get().Warn("Sentence segmenter failed, splitting on punctuation", zap.Error(err))
		} else {
			raw = sentences
		}
	}
	if raw == nil {
		raw = fallbackSplit.Split(text, -1)
	}

	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if textutil.Len(s) > MinSentenceLength {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
