package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/textutil"
	"lecture-quiz/internal/util"

	"go.uber.org/zap"
)

// Prompter is the interactive side of a quiz session.
type Prompter interface {
	// Ask shows question number index (1-based) and returns the user's answer.
	Ask(ctx context.Context, index int, q domain.QuestionRecord) (string, error)
	// Reveal shows the verdict for question number index.
	Reveal(index int, v domain.Verdict)
}

// Session runs quizzes and keeps the results of the most recent one.
type Session struct {
	engine  QuizEngine
	results []domain.QuizResult
	now     func() time.Time
}

// NewSession returns a session over engine.
func NewSession(engine QuizEngine) *Session {
	return &Session{engine: engine, now: time.Now}
}

// Run generates n questions on topic, asks each through p and records the
// outcome. It returns an empty export when nothing could be generated.
func (s *Session) Run(ctx context.Context, topic string, n int, p Prompter) (domain.SessionExport, error) {
	sessionID := util.NewULID()
	questions, err := s.engine.Generate(ctx, topic, n)
	if err != nil {
		return domain.SessionExport{}, err
	}
	if len(questions) == 0 {
		logger.Get().Info("No questions generated", zap.String("topic", topic))
		return domain.NewSessionExport(sessionID, topic, s.now(), nil), nil
	}

	results := make([]domain.QuizResult, 0, len(questions))
	for i, q := range questions {
		answer, err := p.Ask(ctx, i+1, q)
		if err != nil {
			return domain.SessionExport{}, fmt.Errorf("reading answer to question %d: %w", i+1, err)
		}
		answer = strings.TrimSpace(answer)
		verdict := s.engine.Evaluate(answer, q.Answer)
		p.Reveal(i+1, verdict)

		results = append(results, domain.QuizResult{
			Question:      q.Question,
			UserAnswer:    answer,
			CorrectAnswer: q.Answer,
			IsCorrect:     verdict.IsCorrect,
			Context:       q.Context,
		})
	}
	s.results = results

	export := domain.NewSessionExport(sessionID, topic, s.now(), results)
	logger.Get().Info("Quiz finished",
		zap.String("session_id", sessionID),
		zap.Int("total", export.Total),
		zap.Int("correct", export.Correct))
	return export, nil
}

// Results returns the results of the last quiz.
func (s *Session) Results() []domain.QuizResult {
	return s.results
}

// Explain renders question number (1-based) of the last quiz.
func (s *Session) Explain(number int) (string, error) {
	if number < 1 || number > len(s.results) {
		return "", domain.NewQuestionNotFoundError(number)
	}
	r := s.results[number-1]

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", r.Question)
	fmt.Fprintf(&b, "Correct Answer: %s\n", r.CorrectAnswer)
	if r.Context != "" {
		fmt.Fprintf(&b, "Source: %s...\n", textutil.Prefix(r.Context, 200))
	}
	fmt.Fprintf(&b, "Your Answer: %s\n", r.UserAnswer)
	if r.IsCorrect {
		b.WriteString("Result: Correct\n")
	} else {
		b.WriteString("Result: Incorrect\n")
	}
	return b.String(), nil
}

// Summary renders the totals of an export.
func Summary(export domain.SessionExport) string {
	rule := strings.Repeat("=", 60)
	return fmt.Sprintf("%s\nSUMMARY\n%s\nTotal questions: %d\nCorrect answers: %d\nAccuracy: %.1f%%\n%s\n",
		rule, rule, export.Total, export.Correct, export.Accuracy, rule)
}
