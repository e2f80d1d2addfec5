package validation

import (
	"strings"
	"testing"

	"lecture-quiz/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateGenerateRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateGenerateRequest(&dto.GenerateQuestionsRequest{}))
	assert.Empty(t, v.ValidateGenerateRequest(&dto.GenerateQuestionsRequest{Topic: "agile", NumQuestions: 50}))

	errs := v.ValidateGenerateRequest(&dto.GenerateQuestionsRequest{Topic: strings.Repeat("é", 201), NumQuestions: -1})
	if assert.Len(t, errs, 2) {
		assert.Equal(t, "num_questions", errs[0].Field)
		assert.Equal(t, "topic", errs[1].Field)
	}
}

func TestValidateCheckAnswerRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateCheckAnswerRequest(&dto.CheckAnswerRequest{CorrectAnswer: "a framework"}))

	errs := v.ValidateCheckAnswerRequest(&dto.CheckAnswerRequest{UserAnswer: strings.Repeat("a", 2001), CorrectAnswer: "  "})
	if assert.Len(t, errs, 2) {
		assert.Equal(t, "correct_answer", errs[0].Field)
		assert.Equal(t, "user_answer", errs[1].Field)
	}
}

func TestValidateQuestion(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateQuestion("what is agile"))
	assert.Len(t, v.ValidateQuestion(" "), 1)
	assert.Len(t, v.ValidateQuestion(strings.Repeat("x", 501)), 1)
}
