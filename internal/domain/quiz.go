package domain

import "time"

// QuestionRecord is one generated question. Answer and Question are already
// truncated; Context is the source sentence.
type QuestionRecord struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Context  string `json:"context" yaml:"context"`
}

// Verdict is the outcome of judging one free-text answer.
type Verdict struct {
	IsCorrect bool    `json:"is_correct"`
	Feedback  string  `json:"feedback"`
	Score     float64 `json:"score"`
}

// QuizResult records one asked question within a session.
type QuizResult struct {
	Question      string `json:"question" yaml:"question"`
	UserAnswer    string `json:"user_answer" yaml:"user_answer"`
	CorrectAnswer string `json:"correct_answer" yaml:"correct_answer"`
	IsCorrect     bool   `json:"is_correct" yaml:"is_correct"`
	Context       string `json:"context" yaml:"context"`
}

// SessionExport is the flat export of a finished quiz session.
type SessionExport struct {
	SessionID string       `json:"session_id" yaml:"session_id"`
	Topic     string       `json:"topic,omitempty" yaml:"topic,omitempty"`
	CreatedAt time.Time    `json:"created_at" yaml:"created_at"`
	Total     int          `json:"total" yaml:"total"`
	Correct   int          `json:"correct" yaml:"correct"`
	Accuracy  float64      `json:"accuracy" yaml:"accuracy"`
	Results   []QuizResult `json:"results" yaml:"results"`
}

// NewSessionExport fills the counters from results.
func NewSessionExport(sessionID, topic string, createdAt time.Time, results []QuizResult) SessionExport {
	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}
	accuracy := 0.0
	if len(results) > 0 {
		accuracy = float64(correct) / float64(len(results)) * 100
	}
	if results == nil {
		results = []QuizResult{}
	}
	return SessionExport{
		SessionID: sessionID,
		Topic:     topic,
		CreatedAt: createdAt,
		Total:     len(results),
		Correct:   correct,
		Accuracy:  accuracy,
		Results:   results,
	}
}
