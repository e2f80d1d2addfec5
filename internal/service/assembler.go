package service

import (
	"context"
	"math/rand"
	"strings"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/textutil"
	"lecture-quiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	poolFactor          = 10
	secondPassFactor    = 5
	maxConsecutiveFails = 50
	lastPassMinLength   = 15
	batchPerWorker      = 4
)

// Assembler builds question sets from a fixed corpus. Every sentence is
// synthesized at most once per Generate call.
type Assembler struct {
	corpus      []string
	ranker      domain.RelevanceRanker
	synthesizer domain.QuestionSynthesizer
	rng         *rand.Rand
	workers     int
	newID       func() string
}

// AssemblerOption configures NewAssembler.
type AssemblerOption func(*Assembler)

// WithSeed makes sampling reproducible.
func WithSeed(seed int64) AssemblerOption {
	return func(a *Assembler) { a.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects the random source used for sampling and shuffling.
func WithRand(rng *rand.Rand) AssemblerOption {
	return func(a *Assembler) { a.rng = rng }
}

// WithWorkers synthesizes sentences in ordered parallel batches.
func WithWorkers(n int) AssemblerOption {
	return func(a *Assembler) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithIDGenerator replaces the question ID source.
func WithIDGenerator(fn func() string) AssemblerOption {
	return func(a *Assembler) { a.newID = fn }
}

// NewAssembler wires the ranker and synthesizer over corpus.
func NewAssembler(corpus []string, ranker domain.RelevanceRanker, synthesizer domain.QuestionSynthesizer, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		corpus:      corpus,
		ranker:      ranker,
		synthesizer: synthesizer,
		workers:     1,
		newID:       util.NewULID,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return a
}

// generation holds the state shared by the passes of one Generate call.
type generation struct {
	n         int
	questions []domain.QuestionRecord
	seen      map[string]struct{}
	attempted map[string]struct{}
}

func (g *generation) done() bool { return len(g.questions) >= g.n }

// accept records rec unless its question duplicates an earlier one.
func (g *generation) accept(rec domain.QuestionRecord) bool {
	key := strings.ToLower(rec.Question)
	if _, dup := g.seen[key]; dup {
		return false
	}
	g.seen[key] = struct{}{}
	g.questions = append(g.questions, rec)
	return true
}

// Generate returns up to n questions. With a topic the most relevant
// sentences are tried first; without one a random sample is. Two widening
// passes over untried sentences follow when the first falls short.
func (a *Assembler) Generate(ctx context.Context, topic string, n int) ([]domain.QuestionRecord, error) {
	if n <= 0 || len(a.corpus) == 0 {
		return []domain.QuestionRecord{}, nil
	}
	requested := n
	// Each sentence yields at most one question.
	if n > len(a.corpus) {
		n = len(a.corpus)
	}

	g := &generation{
		n:         n,
		seen:      make(map[string]struct{}),
		attempted: make(map[string]struct{}),
	}

	pool := a.initialPool(ctx, topic, n)
	candidates := filter(pool, a.synthesizer.IsEligible)
	if len(candidates) < 2*n {
		candidates = filter(pool, minimalFilter)
	}
	if err := a.run(ctx, g, candidates, maxConsecutiveFails); err != nil {
		return nil, err
	}
	logger.Get().Debug("First pass finished",
		zap.String("topic", topic),
		zap.Int("pool", len(pool)),
		zap.Int("candidates", len(candidates)),
		zap.Int("questions", len(g.questions)))

	if !g.done() {
		remaining := a.untried(g, func(string) bool { return true })
		extra := filter(a.sample(remaining, secondPassFactor*n), minimalFilter)
		if err := a.run(ctx, g, extra, 0); err != nil {
			return nil, err
		}
	}

	if !g.done() {
		rest := a.untried(g, func(s string) bool { return textutil.Len(strings.TrimSpace(s)) > lastPassMinLength })
		a.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
		if err := a.run(ctx, g, rest, 0); err != nil {
			return nil, err
		}
	}

	if len(g.questions) > n {
		g.questions = g.questions[:n]
	}
	if len(g.questions) < requested {
		logger.Get().Info("Corpus exhausted before reaching requested question count",
			zap.String("topic", topic),
			zap.Int("requested", requested),
			zap.Int("generated", len(g.questions)))
	}
	return g.questions, nil
}

func (a *Assembler) initialPool(ctx context.Context, topic string, n int) []string {
	size := poolFactor * n
	if strings.TrimSpace(topic) != "" {
		return a.ranker.FindRelevant(ctx, topic, size)
	}
	if len(a.corpus) <= n {
		return append([]string(nil), a.corpus...)
	}
	return a.sample(a.corpus, size)
}

// run synthesizes sentences in order until the set is full. A positive
// failLimit stops the pass once more than failLimit sentences in a row
// produced nothing new.
func (a *Assembler) run(ctx context.Context, g *generation, sentences []string, failLimit int) error {
	batchSize := 1
	if a.workers > 1 {
		batchSize = a.workers * batchPerWorker
	}

	pending := make(map[string]struct{}, len(sentences))
	sentences = filter(sentences, func(s string) bool {
		if _, tried := g.attempted[s]; tried {
			return false
		}
		if _, dup := pending[s]; dup {
			return false
		}
		pending[s] = struct{}{}
		return true
	})

	failures := 0
	for start := 0; start < len(sentences) && !g.done(); start += batchSize {
		if err := ctx.Err(); err != nil {
			return domain.NewInternalError("question generation cancelled", err)
		}
		end := start + batchSize
		if end > len(sentences) {
			end = len(sentences)
		}
		batch := sentences[start:end]
		results, err := a.synthesizeBatch(ctx, batch)
		if err != nil {
			return err
		}

		for i, s := range batch {
			if g.done() {
				return nil
			}
			g.attempted[s] = struct{}{}

			if results[i].ok && g.accept(a.withID(results[i].rec)) {
				failures = 0
			} else {
				failures++
			}
			if failLimit > 0 && failures > failLimit {
				logger.Get().Debug("Stopping pass after consecutive failures", zap.Int("failures", failures))
				return nil
			}
		}
	}
	return nil
}

type synthResult struct {
	rec domain.QuestionRecord
	ok  bool
}

// synthesizeBatch runs the synthesizer over batch, in parallel when workers
// are configured. Results keep the batch order.
func (a *Assembler) synthesizeBatch(ctx context.Context, batch []string) ([]synthResult, error) {
	results := make([]synthResult, len(batch))
	if a.workers <= 1 || len(batch) == 1 {
		for i, s := range batch {
			results[i].rec, results[i].ok = a.synthesizer.Synthesize(s)
		}
		return results, nil
	}

	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(a.workers)
	for i, s := range batch {
		eg.Go(func() error {
			results[i].rec, results[i].ok = a.synthesizer.Synthesize(s)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, domain.NewInternalError("synthesizing questions", err)
	}
	return results, nil
}

func (a *Assembler) withID(rec domain.QuestionRecord) domain.QuestionRecord {
	rec.ID = a.newID()
	return rec
}

// untried returns corpus sentences not yet attempted that satisfy keep, in
// corpus order.
func (a *Assembler) untried(g *generation, keep func(string) bool) []string {
	var out []string
	for _, s := range a.corpus {
		if _, tried := g.attempted[s]; tried {
			continue
		}
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// sample draws k distinct elements of src in random order.
func (a *Assembler) sample(src []string, k int) []string {
	if k > len(src) {
		k = len(src)
	}
	if k <= 0 {
		return nil
	}
	out := make([]string, k)
	for i, j := range a.rng.Perm(len(src))[:k] {
		out[i] = src[j]
	}
	return out
}

func minimalFilter(s string) bool {
	trimmed := strings.TrimSpace(s)
	return textutil.Len(trimmed) > 20 && textutil.StartsUpper(s)
}

func filter(in []string, keep func(string) bool) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
