// Package relevance ranks corpus sentences against a free-text topic.
package relevance

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"

	"go.uber.org/zap"
)

// MinSimilarity is the exclusive lower bound a sentence must score to be
// returned by the vector path.
const MinSimilarity = 0.1

// Ranker implements domain.RelevanceRanker. The TF-IDF index is built once
// in NewRanker; when that fails the ranker serves every query with keyword
// overlap instead.
type Ranker struct {
	corpus []string
	index  *Index
}

type rankerOptions struct {
	maxFeatures int
}

// Option configures NewRanker.
type Option func(*rankerOptions)

// WithMaxFeatures caps the vocabulary size of the index.
func WithMaxFeatures(n int) Option {
	return func(o *rankerOptions) { o.maxFeatures = n }
}

// NewRanker indexes corpus. The corpus slice is not copied and must not be
// modified afterwards.
func NewRanker(corpus []string, opts ...Option) domain.RelevanceRanker {
	o := rankerOptions{maxFeatures: defaultMaxFeatures}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Ranker{corpus: corpus}
	if len(corpus) == 0 {
		return r
	}
	index, err := BuildIndex(corpus, o.maxFeatures)
	if err != nil {
		logger.Get().Warn("TF-IDF index build failed, using keyword matching", zap.Error(err), zap.Int("sentences", len(corpus)))
		return r
	}
	r.index = index
	logger.Get().Debug("TF-IDF index built",
		zap.Int("sentences", index.Len()),
		zap.Int("features", index.VocabularySize()))
	return r
}

// FindRelevant returns up to n sentences most similar to topic, best first.
// Any failure of the vector path is logged and answered by keyword overlap.
func (r *Ranker) FindRelevant(ctx context.Context, topic string, n int) []string {
	if n <= 0 || len(r.corpus) == 0 {
		return nil
	}
	if r.index == nil {
		return KeywordMatch(r.corpus, topic, n)
	}

	found, err := r.vectorSearch(ctx, topic, n)
	if err != nil {
		logger.Get().Warn("TF-IDF search failed, using keyword matching", zap.Error(err), zap.String("topic", topic))
		return KeywordMatch(r.corpus, topic, n)
	}
	return found
}

func (r *Ranker) vectorSearch(ctx context.Context, topic string, n int) (found []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			found, err = nil, fmt.Errorf("similarity query panicked: %v", rec)
		}
	}()

	scores, err := r.index.Similarities(ctx, topic)
	if err != nil {
		return nil, err
	}
	if len(scores) != len(r.corpus) {
		return nil, fmt.Errorf("index covers %d sentences, corpus has %d", len(scores), len(r.corpus))
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })
	if len(order) > n {
		order = order[:n]
	}

	found = make([]string, 0, len(order))
	for _, i := range order {
		if scores[i] > MinSimilarity {
			found = append(found, r.corpus[i])
		}
	}
	return found, nil
}

// KeywordMatch ranks sentences by how many distinct lowercase words of topic
// occur as substrings of the lowercased sentence. Sentences matching nothing
// are dropped; ties keep corpus order.
func KeywordMatch(corpus []string, topic string, n int) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, w := range strings.Fields(strings.ToLower(topic)) {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	if len(words) == 0 || n <= 0 {
		return nil
	}

	type hit struct {
		sentence string
		matches  int
	}
	var hits []hit
	for _, s := range corpus {
		lower := strings.ToLower(s)
		matches := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				matches++
			}
		}
		if matches > 0 {
			hits = append(hits, hit{sentence: s, matches: matches})
		}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].matches > hits[b].matches })
	if len(hits) > n {
		hits = hits[:n]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.sentence
	}
	return out
}
