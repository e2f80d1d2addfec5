// Package cli runs the interactive lecture quiz prompt.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"lecture-quiz/internal/command"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/export"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/service"

	"go.uber.org/zap"
)

// Options controls quiz sizing, result export and styling.
type Options struct {
	AutoQuizQuestions int
	// Save writes every finished quiz to SavePath.
	Save         bool
	SavePath     string
	ExportFormat string
	NoColor      bool
}

// REPL reads commands from in and writes everything the user sees to out.
type REPL struct {
	engine  service.QuizEngine
	session *service.Session
	in      *bufio.Scanner
	out     io.Writer
	opts    Options
}

// New builds a REPL over engine. A non-positive AutoQuizQuestions means 7.
func New(engine service.QuizEngine, in io.Reader, out io.Writer, opts Options) *REPL {
	if opts.AutoQuizQuestions <= 0 {
		opts.AutoQuizQuestions = 7
	}
	return &REPL{
		engine:  engine,
		session: service.NewSession(engine),
		in:      bufio.NewScanner(in),
		out:     out,
		opts:    opts,
	}
}

// Run shows the banner and handles commands until quit, end of input or ctx
// is done.
func (r *REPL) Run(ctx context.Context) error {
	r.banner()
	for {
		if ctx.Err() != nil {
			r.println("\nInterrupted. Goodbye!")
			return nil
		}
		fmt.Fprint(r.out, "> ")
		line, err := r.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.println("\nGoodbye!")
				return nil
			}
			return err
		}

		quit, err := r.Execute(ctx, command.Parse(line, r.opts.AutoQuizQuestions))
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.println("\nGoodbye!")
				return nil
			}
			logger.Get().Error("Command failed", zap.String("command", line), zap.Error(err))
			r.println(stylize("Error: "+err.Error(), r.opts.NoColor, colorWrong))
		}
		if quit {
			return nil
		}
	}
}

// Execute carries out one parsed command and reports whether the loop should end.
func (r *REPL) Execute(ctx context.Context, cmd command.Command) (bool, error) {
	switch cmd.Kind {
	case command.KindQuit:
		r.println("\nGoodbye!")
		return true, nil
	case command.KindAutoQuiz:
		r.println(stylize("\nRunning Auto Quiz...", r.opts.NoColor, colorTitle))
		return false, r.quiz(ctx, "", cmd.Num)
	case command.KindQuiz:
		return false, r.quiz(ctx, cmd.Topic, cmd.Num)
	case command.KindExplain:
		text, err := r.session.Explain(cmd.Num)
		if err != nil {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) {
				r.println(domainErr.Message)
				return false, nil
			}
			return false, err
		}
		r.println("\n" + text)
		return false, nil
	case command.KindQA:
		answer, ok := r.engine.Answer(ctx, cmd.Text)
		if !ok {
			r.println(stylize("\nI couldn't find an answer to that question in the lecture.\n", r.opts.NoColor, colorWrong))
			return false, nil
		}
		r.println("\n" + stylize("Answer: ", r.opts.NoColor, colorAnswer) + answer + "\n")
		return false, nil
	default:
		r.println(stylize("Invalid command. Try:", r.opts.NoColor, colorWrong))
		r.println("  > Give me 5 questions on [topic]")
		r.println("  > what is [topic]")
		r.println("  > autoquiz")
		r.println("  > explain question [number]")
		return false, nil
	}
}

func (r *REPL) quiz(ctx context.Context, topic string, n int) error {
	rule := strings.Repeat("=", 60)
	r.println("\n" + rule)
	if topic != "" {
		r.println(bold(fmt.Sprintf("Generating %d questions on: %s", n, topic), r.opts.NoColor))
	} else {
		r.println(bold(fmt.Sprintf("Generating %d general questions", n), r.opts.NoColor))
	}
	r.println(rule + "\n")

	result, err := r.session.Run(ctx, topic, n, r)
	if err != nil {
		return err
	}
	if result.Total == 0 {
		r.println("No questions could be generated from the content.")
	} else {
		r.println("\n" + service.Summary(result))
	}

	if r.opts.Save {
		path, err := export.Save(r.opts.SavePath, result, r.opts.ExportFormat)
		if err != nil {
			r.println(stylize("Error saving results: "+err.Error(), r.opts.NoColor, colorWrong))
			return nil
		}
		r.println(stylize("Results saved to "+path, r.opts.NoColor, colorCorrect))
	}
	return nil
}

// Ask implements service.Prompter.
func (r *REPL) Ask(_ context.Context, index int, q domain.QuestionRecord) (string, error) {
	r.println(bold(fmt.Sprintf("\nQ%d: %s", index, q.Question), r.opts.NoColor))
	r.println(stylize(strings.Repeat("-", 60), r.opts.NoColor, colorMuted))
	fmt.Fprint(r.out, "Your answer: ")

	answer, err := r.readLine()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		r.println(stylize("No answer provided. Marking as incorrect.", r.opts.NoColor, colorMuted))
	}
	return answer, nil
}

// Reveal implements service.Prompter.
func (r *REPL) Reveal(_ int, v domain.Verdict) {
	if v.IsCorrect {
		r.println(stylize(v.Feedback, r.opts.NoColor, colorCorrect))
		return
	}
	r.println(stylize(v.Feedback, r.opts.NoColor, colorWrong))
}

func (r *REPL) banner() {
	rule := strings.Repeat("=", 60)
	r.println(rule)
	r.println(stylize("Lecture Quiz", r.opts.NoColor, colorTitle))
	r.println(rule)
	r.println("\nType a command, e.g.:")
	r.println("  > Give me 5 questions on Agile methodology")
	r.println("  > Ask me 3 questions about software testing")
	r.println("  > what is narrow ai")
	r.println("  > autoquiz")
	r.println("  > explain question 2")
	r.println("  > quit")
	r.println("\n" + strings.Repeat("-", 60) + "\n")
}

func (r *REPL) readLine() (string, error) {
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.in.Text(), nil
}

func (r *REPL) println(s string) {
	fmt.Fprintln(r.out, s)
}
