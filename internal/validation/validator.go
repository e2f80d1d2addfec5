package validation

import (
	"strings"
	"unicode/utf8"

	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/dto"
)

const (
	MaxQuestionsPerRequest = 50
	MaxTopicLength         = 200
	MaxAnswerLength        = 2000
	MaxQuestionLength      = 500
)

// Validator checks API requests before they reach the quiz service.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest allows a zero count, which means the configured default.
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateQuestionsRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if req.NumQuestions < 0 || req.NumQuestions > MaxQuestionsPerRequest {
		errs = append(errs, domain.NewOutOfRangeError("num_questions", req.NumQuestions, 0, MaxQuestionsPerRequest))
	}
	if n := utf8.RuneCountInString(req.Topic); n > MaxTopicLength {
		errs = append(errs, domain.NewTooLongError("topic", n, MaxTopicLength))
	}

	return errs
}

// ValidateCheckAnswerRequest requires a correct answer. An empty user answer
// is a legitimate wrong answer.
func (v *Validator) ValidateCheckAnswerRequest(req *dto.CheckAnswerRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.CorrectAnswer) == "" {
		errs = append(errs, domain.NewMissingFieldError("correct_answer"))
	}
	if n := utf8.RuneCountInString(req.UserAnswer); n > MaxAnswerLength {
		errs = append(errs, domain.NewTooLongError("user_answer", n, MaxAnswerLength))
	}

	return errs
}

func (v *Validator) ValidateQuestion(q string) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(q) == "" {
		errs = append(errs, domain.NewMissingFieldError("q"))
	} else if n := utf8.RuneCountInString(q); n > MaxQuestionLength {
		errs = append(errs, domain.NewTooLongError("q", n, MaxQuestionLength))
	}

	return errs
}
