package service

import (
	"context"
	"errors"
	"strings"

	"lecture-quiz/internal/config"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/dto"
	"lecture-quiz/internal/logger"

	"go.uber.org/zap"
)

// QuizService is the request-level API the HTTP handlers use.
type QuizService interface {
	GenerateQuestions(ctx context.Context, req *dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error)
	CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error)
	AnswerQuestion(ctx context.Context, question string) (*dto.AnswerResponse, error)
}

type quizService struct {
	engine QuizEngine
	cache  QuestionCacheService
	cfg    config.QuizConfig
}

// NewQuizService wires engine and question cache. questionCache may be nil.
func NewQuizService(engine QuizEngine, questionCache QuestionCacheService, cfg config.QuizConfig) QuizService {
	if questionCache == nil {
		questionCache = NewQuestionCacheService(nil, 0)
	}
	return &quizService{engine: engine, cache: questionCache, cfg: cfg}
}

// GenerateQuestions serves a cached set when one exists for the same
// document, topic, count and seed.
func (s *quizService) GenerateQuestions(ctx context.Context, req *dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	n := req.NumQuestions
	if n == 0 {
		n = s.cfg.DefaultQuestions
	}
	topic := strings.TrimSpace(req.Topic)
	key := QuestionSetKey{DocumentHash: s.engine.DocumentHash(), Topic: topic, Count: n, Seed: s.cfg.Seed}

	questions, err := s.cache.Get(ctx, key)
	if err == nil {
		return &dto.GenerateQuestionsResponse{Topic: topic, Questions: questions}, nil
	}
	if !errors.Is(err, ErrQuestionSetNotCached) {
		logger.Get().Warn("Question cache unavailable, generating", zap.Error(err))
	}

	questions, err = s.engine.Generate(ctx, topic, n)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.NewEmptyCorpusError("the lecture document")
	}
	if err := s.cache.Put(ctx, key, questions); err != nil {
		logger.Get().Warn("Failed to cache generated questions", zap.Error(err))
	}
	return &dto.GenerateQuestionsResponse{Topic: topic, Questions: questions}, nil
}

func (s *quizService) CheckAnswer(_ context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error) {
	v := s.engine.Evaluate(req.UserAnswer, req.CorrectAnswer)
	return &dto.CheckAnswerResponse{IsCorrect: v.IsCorrect, Feedback: v.Feedback, Score: v.Score}, nil
}

func (s *quizService) AnswerQuestion(ctx context.Context, question string) (*dto.AnswerResponse, error) {
	answer, ok := s.engine.Answer(ctx, question)
	if !ok {
		return nil, domain.NewAnswerNotFoundError(question)
	}
	return &dto.AnswerResponse{Question: question, Answer: answer}, nil
}
