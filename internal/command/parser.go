// Package command parses the lines typed at the interactive quiz prompt.
package command

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind is the action a command asks for.
type Kind string

const (
	KindQuiz     Kind = "quiz"
	KindAutoQuiz Kind = "autoquiz"
	KindExplain  Kind = "explain"
	KindQA       Kind = "qa"
	KindQuit     Kind = "quit"
	KindInvalid  Kind = "invalid"
)

// DefaultQuestions is used when a quiz command names no count.
const DefaultQuestions = 5

// MaxQuestions caps the count a quiz command may ask for.
const MaxQuestions = 50

// Command is a parsed prompt line. Num is the question count for quiz and
// autoquiz, and the question number for explain. Text holds the original
// question for qa.
type Command struct {
	Kind  Kind
	Topic string
	Num   int
	Text  string
}

var (
	questionStart = regexp.MustCompile(`^(what|who|where|when|why|how|is|are|does|do|can|will)\b`)
	firstNumber   = regexp.MustCompile(`\d+`)
	topicSuffix   = regexp.MustCompile(`(?i)\s+(questions?|quiz|test)$`)
	// Tried in order; whole words so "question on x" does not match inside "question".
	topicMarkers = []*regexp.Regexp{
		regexp.MustCompile(`\bon\s`),
		regexp.MustCompile(`\babout\s`),
		regexp.MustCompile(`\bregarding\s`),
	}
)

// Parse interprets line. autoQuizQuestions is the count autoquiz runs with.
func Parse(line string, autoQuizQuestions int) Command {
	original := strings.TrimSpace(line)
	lower := strings.ToLower(original)

	switch {
	case lower == "":
		return Command{Kind: KindInvalid}
	case lower == "quit" || lower == "exit" || lower == "q":
		return Command{Kind: KindQuit}
	case lower == "autoquiz":
		return Command{Kind: KindAutoQuiz, Num: autoQuizQuestions}
	case strings.HasPrefix(lower, "explain question"):
		fields := strings.Fields(lower)
		n, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			return Command{Kind: KindInvalid}
		}
		return Command{Kind: KindExplain, Num: n}
	case questionStart.MatchString(lower):
		return Command{Kind: KindQA, Text: original}
	}

	cmd := Command{Kind: KindQuiz, Num: DefaultQuestions}
	if m := firstNumber.FindString(lower); m != "" {
		// Digit runs too large for an int fail with ErrRange.
		cmd.Num = MaxQuestions
		if n, err := strconv.Atoi(m); err == nil && n < MaxQuestions {
			cmd.Num = n
		}
	}
	for _, marker := range topicMarkers {
		if loc := marker.FindStringIndex(lower); loc != nil {
			topic := strings.TrimSpace(lower[loc[1]:])
			cmd.Topic = strings.TrimSpace(topicSuffix.ReplaceAllString(topic, ""))
			break
		}
	}
	return cmd
}
