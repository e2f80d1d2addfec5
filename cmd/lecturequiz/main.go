// Command lecturequiz runs an interactive quiz over a lecture Markdown file.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"lecture-quiz/internal/adapter/filewatcher"
	"lecture-quiz/internal/adapter/loader"
	"lecture-quiz/internal/adapter/nlp"
	"lecture-quiz/internal/cli"
	"lecture-quiz/internal/config"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/service"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	save := flag.Bool("save", false, "save each quiz's results (path and format from export settings)")
	savePath := flag.String("out", "", "results file, .json or .yaml (overrides export.path)")
	watch := flag.Bool("watch", false, "reload the lecture when the file changes")
	seed := flag.Int64("seed", 0, "random seed for question sampling (0 keeps the configured value)")
	num := flag.Int("num", 0, "questions asked by autoquiz (0 keeps the configured value)")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] lecture.md\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	lecturePath := flag.Arg(0)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Quiz.Seed = *seed
	}
	if *num > 0 {
		cfg.Quiz.AutoQuizQuestions = *num
	}
	if *savePath != "" {
		cfg.Export.Path = *savePath
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	fmt.Printf("Loading file: %s\n", lecturePath)
	text, err := loader.LoadClean(lecturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("File loaded successfully! (%d characters)\n", utf8.RuneCountInString(text))

	fmt.Println("Initializing question generator...")
	engine := service.NewEngine(cfg.Quiz, nlp.NewProsePipeline(), text)
	fmt.Println("Ready!")
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *watch {
		w, err := filewatcher.NewFSNotifyWatcher(filewatcher.DefaultDebounce)
		if err != nil {
			appLogger.Fatal("Failed to start file watcher", zap.Error(err))
		}
		defer w.Stop()
		go func() {
			if err := service.WatchAndReload(ctx, w, engine, lecturePath, loader.LoadClean); err != nil {
				appLogger.Error("Lecture watch stopped", zap.Error(err))
			}
		}()
	}

	repl := cli.New(engine, os.Stdin, os.Stdout, cli.Options{
		AutoQuizQuestions: cfg.Quiz.AutoQuizQuestions,
		Save:              *save,
		SavePath:          cfg.Export.Path,
		ExportFormat:      cfg.Export.Format,
		NoColor:           *noColor,
	})
	if err := repl.Run(ctx); err != nil {
		appLogger.Error("Quiz loop failed", zap.Error(err))
		os.Exit(1)
	}
}
