package dto

import "lecture-quiz/internal/domain"

// GenerateQuestionsRequest is the body of POST /api/quiz/generate.
// A zero NumQuestions uses the configured default.
type GenerateQuestionsRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
}

type GenerateQuestionsResponse struct {
	Topic     string                  `json:"topic,omitempty"`
	Questions []domain.QuestionRecord `json:"questions"`
}

// CheckAnswerRequest is the body of POST /api/quiz/check.
type CheckAnswerRequest struct {
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

type CheckAnswerResponse struct {
	IsCorrect bool    `json:"is_correct"`
	Feedback  string  `json:"feedback"`
	Score     float64 `json:"score"`
}

type AnswerResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
