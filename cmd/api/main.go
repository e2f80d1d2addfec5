// Command api serves quiz generation, answer checking and direct answers for
// one lecture document over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lecture-quiz/internal/adapter"
	"lecture-quiz/internal/adapter/filewatcher"
	"lecture-quiz/internal/adapter/loader"
	"lecture-quiz/internal/adapter/nlp"
	"lecture-quiz/internal/cache"
	"lecture-quiz/internal/config"
	"lecture-quiz/internal/domain"
	"lecture-quiz/internal/handler"
	"lecture-quiz/internal/logger"
	"lecture-quiz/internal/middleware"
	"lecture-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	lecturePath := flag.String("file", "", "lecture Markdown file to serve (required)")
	watch := flag.Bool("watch", false, "reload the lecture when the file changes")
	seed := flag.Int64("seed", 0, "random seed for question sampling (0 keeps the configured value)")
	flag.Parse()

	if *lecturePath == "" && flag.NArg() > 0 {
		*lecturePath = flag.Arg(0)
	}
	if *lecturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: api --file lecture.md [--config config.yaml] [--watch] [--seed N]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Quiz.Seed = *seed
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	text, err := loader.LoadClean(*lecturePath)
	if err != nil {
		appLogger.Fatal("Failed to load lecture", zap.Error(err))
	}

	engine := service.NewEngine(cfg.Quiz, nlp.NewProsePipeline(), text)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var questionCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(rootCtx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, question sets will not be cached", zap.Error(err))
		} else {
			defer redisClient.Close()
			questionCache = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Successfully connected to Redis")
		}
	}
	questionSets := service.NewQuestionCacheService(questionCache, cfg.Redis.TTL)
	quizService := service.NewQuizService(engine, questionSets, cfg.Quiz)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	handler.RegisterRoutes(app, handler.NewQuizHandler(quizService), handler.NewHealthHandler(engine, questionSets))

	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("lecture", *lecturePath))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if *watch {
		g.Go(func() error {
			w, err := filewatcher.NewFSNotifyWatcher(filewatcher.DefaultDebounce)
			if err != nil {
				return err
			}
			defer w.Stop()
			return service.WatchAndReload(ctx, w, engine, *lecturePath, loader.LoadClean,
				service.InvalidateOnReload(questionSets))
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Fatal("Server exited with error", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
