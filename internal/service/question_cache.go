package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lecture-quiz/internal/cache"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"

	"go.uber.org/zap"
)

// ErrQuestionSetNotCached is returned by QuestionCacheService.Get on a miss.
var ErrQuestionSetNotCached = errors.New("question set not found in cache")

// QuestionCacheService stores generated question sets keyed by document,
// topic and size so repeated requests return the same questions.
type QuestionCacheService interface {
	Put(ctx context.Context, key QuestionSetKey, questions []domain.QuestionRecord) error
	Get(ctx context.Context, key QuestionSetKey) ([]domain.QuestionRecord, error)
	// Invalidate drops every set generated from the document with documentHash.
	Invalidate(ctx context.Context, documentHash string) (int64, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// QuestionSetKey identifies a generated set.
type QuestionSetKey struct {
	DocumentHash string
	Topic        string
	Count        int
	Seed         int64
}

func (k QuestionSetKey) String() string {
	topic := strings.Join(strings.Fields(strings.ToLower(k.Topic)), "-")
	if topic == "" {
		topic = "_"
	}
	return cache.GenerateCacheKey("quiz", "questions", k.DocumentHash,
		topic, strconv.Itoa(k.Count), strconv.FormatInt(k.Seed, 10))
}

func documentKeyPrefix(documentHash string) string {
	return cache.KeyPrefix("quiz", "questions", documentHash)
}

type questionCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewQuestionCacheService returns a no-op service when c is nil.
func NewQuestionCacheService(c domain.Cache, ttl time.Duration) QuestionCacheService {
	if c == nil {
		logger.Get().Warn("QuestionCacheService initialized with nil cache. Service will be no-op.")
		return &noopQuestionCacheService{}
	}
	return &questionCacheServiceImpl{cache: c, ttl: ttl}
}

func (s *questionCacheServiceImpl) Put(ctx context.Context, key QuestionSetKey, questions []domain.QuestionRecord) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return domain.NewInternalError("failed to marshal question set for caching", err)
	}
	k := key.String()
	if err := s.cache.Set(ctx, k, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache question set", zap.Error(err), zap.String("key", k))
		return domain.NewInternalError(fmt.Sprintf("failed to set question set to cache for key %s", k), err)
	}
	logger.Get().Debug("Cached question set", zap.String("key", k), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *questionCacheServiceImpl) Get(ctx context.Context, key QuestionSetKey) ([]domain.QuestionRecord, error) {
	k := key.String()
	data, err := s.cache.Get(ctx, k)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Question set cache miss", zap.String("key", k))
			return nil, ErrQuestionSetNotCached
		}
		logger.Get().Error("Failed to get question set from cache", zap.Error(err), zap.String("key", k))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get question set from cache for key %s", k), err)
	}
	if data == "" {
		return nil, ErrQuestionSetNotCached
	}

	var questions []domain.QuestionRecord
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal question set from cache for key %s", k), err)
	}
	return questions, nil
}

func (s *questionCacheServiceImpl) Invalidate(ctx context.Context, documentHash string) (int64, error) {
	prefix := documentKeyPrefix(documentHash)
	n, err := s.cache.DeleteByPrefix(ctx, prefix)
	if err != nil {
		return n, domain.NewInternalError(fmt.Sprintf("failed to invalidate question sets under %s", prefix), err)
	}
	logger.Get().Info("Invalidated cached question sets", zap.String("document_hash", documentHash), zap.Int64("removed", n))
	return n, nil
}

func (s *questionCacheServiceImpl) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

// ErrCacheDisabled is what the no-op service reports from Ping.
var ErrCacheDisabled = errors.New("question cache disabled")

type noopQuestionCacheService struct{}

func (n *noopQuestionCacheService) Put(context.Context, QuestionSetKey, []domain.QuestionRecord) error {
	return nil
}

func (n *noopQuestionCacheService) Get(context.Context, QuestionSetKey) ([]domain.QuestionRecord, error) {
	return nil, ErrQuestionSetNotCached
}

func (n *noopQuestionCacheService) Invalidate(context.Context, string) (int64, error) {
	return 0, nil
}

func (n *noopQuestionCacheService) Ping(context.Context) error {
	return ErrCacheDisabled
}
