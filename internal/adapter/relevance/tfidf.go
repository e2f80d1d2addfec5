package relevance

import (
	"context"
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned by BuildIndex when no feature survives
// stop-word removal and document-frequency pruning.
var ErrEmptyVocabulary = errors.New("relevance: empty vocabulary")

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

const (
	defaultMaxFeatures = 5000
	maxDocFreqRatio    = 0.95
)

// feature is one non-zero weight of a sparse document vector.
type feature struct {
	index  int
	weight float64
}

// Index is a TF-IDF matrix over unigram and bigram features. It is read-only
// once built and can be queried concurrently.
type Index struct {
	vocab map[string]int
	idf   []float64
	rows  [][]feature
}

// BuildIndex fits the vocabulary to docs and vectorizes every document.
// Features are unigrams and bigrams of the stop-word filtered tokens; terms
// found in more than 95% of docs are dropped and at most maxFeatures of the
// most frequent remaining terms are kept. Weights are raw term counts times
// a smoothed idf, L2-normalized per row.
func BuildIndex(docs []string, maxFeatures int) (*Index, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyVocabulary
	}
	if maxFeatures <= 0 {
		maxFeatures = defaultMaxFeatures
	}

	counts := make([]map[string]int, len(docs))
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)
	for i, doc := range docs {
		counts[i] = termCounts(doc)
		for term, c := range counts[i] {
			docFreq[term]++
			termFreq[term] += c
		}
	}

	maxDF := maxDocFreqRatio * float64(len(docs))
	terms := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if float64(df) > maxDF {
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return nil, ErrEmptyVocabulary
	}

	if len(terms) > maxFeatures {
		sort.Slice(terms, func(a, b int) bool {
			if termFreq[terms[a]] != termFreq[terms[b]] {
				return termFreq[terms[a]] > termFreq[terms[b]]
			}
			return terms[a] < terms[b]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	idx := &Index{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
		rows:  make([][]feature, len(docs)),
	}
	for i, term := range terms {
		idx.vocab[term] = i
		idx.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	for i := range docs {
		idx.rows[i] = idx.vectorize(counts[i])
	}
	return idx, nil
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.rows)
}

// VocabularySize returns the number of kept features.
func (idx *Index) VocabularySize() int {
	return len(idx.vocab)
}

// Similarities returns the cosine similarity of query against every indexed
// document, in document order. A query sharing no feature with the
// vocabulary scores zero everywhere.
func (idx *Index) Similarities(ctx context.Context, query string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := idx.vectorize(termCounts(query))
	dense := make(map[int]float64, len(q))
	for _, f := range q {
		dense[f.index] = f.weight
	}

	scores := make([]float64, len(idx.rows))
	if len(dense) == 0 {
		return scores, nil
	}
	for i, row := range idx.rows {
		var dot float64
		for _, f := range row {
			if w, ok := dense[f.index]; ok {
				dot += w * f.weight
			}
		}
		scores[i] = dot
	}
	return scores, nil
}

func (idx *Index) vectorize(counts map[string]int) []feature {
	row := make([]feature, 0, len(counts))
	var norm float64
	for term, c := range counts {
		j, ok := idx.vocab[term]
		if !ok {
			continue
		}
		w := float64(c) * idx.idf[j]
		row = append(row, feature{index: j, weight: w})
		norm += w * w
	}
	if norm == 0 {
		return row
	}
	norm = math.Sqrt(norm)
	for k := range row {
		row[k].weight /= norm
	}
	sort.Slice(row, func(a, b int) bool { return row[a].index < row[b].index })
	return row
}

// termCounts tokenizes text and counts its unigram and bigram features.
func termCounts(text string) map[string]int {
	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i > 0 {
			counts[tokens[i-1]+" "+tok]++
		}
	}
	return counts
}
