package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"lecture-quiz/internal/adapter/evaluator"
	"lecture-quiz/internal/adapter/quizgen"
	"lecture-quiz/internal/adapter/relevance"
	"lecture-quiz/internal/config"
	"lecture-quiz/internal/corpus"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"

	"go.uber.org/zap"
)

// QuizEngine is the question pipeline over one lecture document.
type QuizEngine interface {
	Generate(ctx context.Context, topic string, n int) ([]domain.QuestionRecord, error)
	Evaluate(userAnswer, correctAnswer string) domain.Verdict
	Answer(ctx context.Context, question string) (string, bool)
	DocumentHash() string
	CorpusSize() int
}

// pipeline is everything derived from one document. It is immutable.
type pipeline struct {
	hash      string
	corpus    []string
	assembler *Assembler
	retriever *Retriever
}

// Engine implements QuizEngine. Reload swaps the document atomically; calls
// already in flight finish on the previous one.
type Engine struct {
	cfg       config.QuizConfig
	nlp       domain.LanguagePipeline
	evaluator domain.AnswerEvaluator
	opts      []AssemblerOption

	mu      sync.RWMutex
	current *pipeline
}

// NewEngine builds the pipeline for text. Extra assembler options are
// applied after those derived from cfg.
func NewEngine(cfg config.QuizConfig, nlp domain.LanguagePipeline, text string, opts ...AssemblerOption) *Engine {
	base := []AssemblerOption{WithWorkers(cfg.Workers)}
	if cfg.Seed != 0 {
		base = append(base, WithSeed(cfg.Seed))
	}
	e := &Engine{
		cfg:       cfg,
		nlp:       nlp,
		evaluator: evaluator.NewFuzzyEvaluator(cfg.SimilarityThreshold),
		opts:      append(base, opts...),
	}
	e.current = e.build(text)
	return e
}

func (e *Engine) build(text string) *pipeline {
	sentences := corpus.Build(e.nlp, text)
	ranker := relevance.NewRanker(sentences, relevance.WithMaxFeatures(e.cfg.MaxFeatures))
	synthesizer := quizgen.NewSynthesizer(e.nlp)

	sum := sha256.Sum256([]byte(text))
	p := &pipeline{
		hash:      hex.EncodeToString(sum[:8]),
		corpus:    sentences,
		assembler: NewAssembler(sentences, ranker, synthesizer, e.opts...),
		retriever: NewRetriever(ranker),
	}
	if len(sentences) == 0 {
		logger.Get().Warn("Document produced no usable sentences")
	}
	logger.Get().Info("Quiz engine ready", zap.Int("sentences", len(sentences)), zap.String("document_hash", p.hash))
	return p
}

// Reload rebuilds the pipeline from new document text.
func (e *Engine) Reload(text string) {
	p := e.build(text)
	e.mu.Lock()
	e.current = p
	e.mu.Unlock()
}

func (e *Engine) snapshot() *pipeline {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Generate returns up to n questions on topic; an empty topic samples the
// whole document.
func (e *Engine) Generate(ctx context.Context, topic string, n int) ([]domain.QuestionRecord, error) {
	return e.snapshot().assembler.Generate(ctx, topic, n)
}

// Evaluate judges a user answer.
func (e *Engine) Evaluate(userAnswer, correctAnswer string) domain.Verdict {
	return e.evaluator.Evaluate(userAnswer, correctAnswer)
}

// Answer looks up a direct question in the document.
func (e *Engine) Answer(ctx context.Context, question string) (string, bool) {
	return e.snapshot().retriever.Answer(ctx, question)
}

// DocumentHash identifies the loaded document text.
func (e *Engine) DocumentHash() string {
	return e.snapshot().hash
}

// CorpusSize is the number of sentences extracted from the document.
func (e *Engine) CorpusSize() int {
	return len(e.snapshot().corpus)
}
