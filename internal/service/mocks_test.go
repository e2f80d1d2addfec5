package service

import (
	"context"
	"time"

	"lecture-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQuizEngine ---
type MockQuizEngine struct {
	mock.Mock
}

func (m *MockQuizEngine) Generate(ctx context.Context, topic string, n int) ([]domain.QuestionRecord, error) {
	args := m.Called(ctx, topic, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionRecord), args.Error(1)
}

func (m *MockQuizEngine) Evaluate(userAnswer, correctAnswer string) domain.Verdict {
	args := m.Called(userAnswer, correctAnswer)
	return args.Get(0).(domain.Verdict)
}

func (m *MockQuizEngine) Answer(ctx context.Context, question string) (string, bool) {
	args := m.Called(ctx, question)
	return args.String(0), args.Bool(1)
}

func (m *MockQuizEngine) DocumentHash() string {
	return m.Called().String(0)
}

func (m *MockQuizEngine) CorpusSize() int {
	return m.Called().Int(0)
}

// stubRanker returns a fixed candidate list.
type stubRanker struct {
	sentences []string
}

func (s stubRanker) FindRelevant(_ context.Context, _ string, n int) []string {
	if len(s.sentences) > n {
		return s.sentences[:n]
	}
	return s.sentences
}

// countingSynthesizer records how often each sentence is synthesized.
type countingSynthesizer struct {
	domain.QuestionSynthesizer
	calls map[string]int
}

func (c *countingSynthesizer) Synthesize(sentence string) (domain.QuestionRecord, bool) {
	c.calls[sentence]++
	return c.QuestionSynthesizer.Synthesize(sentence)
}

// scriptedSynthesizer succeeds only for sentences listed in questions and
// records every Synthesize call in order.
type scriptedSynthesizer struct {
	questions map[string]string
	eligible  func(string) bool
	calls     []string
}

func (s *scriptedSynthesizer) IsEligible(sentence string) bool {
	if s.eligible == nil {
		return true
	}
	return s.eligible(sentence)
}

func (s *scriptedSynthesizer) Synthesize(sentence string) (domain.QuestionRecord, bool) {
	s.calls = append(s.calls, sentence)
	q, ok := s.questions[sentence]
	if !ok {
		return domain.QuestionRecord{}, false
	}
	return domain.QuestionRecord{Question: q, Answer: "answer", Context: sentence}, true
}
