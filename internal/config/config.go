package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	Redis  RedisConfig
	Quiz   QuizConfig
	Export ExportConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// QuizConfig holds the tunables of the question pipeline.
type QuizConfig struct {
	DefaultQuestions    int
	AutoQuizQuestions   int
	SimilarityThreshold float64
	Seed                int64
	Workers             int
	MaxFeatures         int
}

type ExportConfig struct {
	Format string // "json" or "yaml"
	Path   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "1h")
	v.SetDefault("quiz.default_questions", 5)
	v.SetDefault("quiz.autoquiz_questions", 7)
	v.SetDefault("quiz.similarity_threshold", 0.6)
	v.SetDefault("quiz.seed", 0)
	v.SetDefault("quiz.workers", 1)
	v.SetDefault("quiz.max_features", 5000)
	v.SetDefault("export.format", "json")
	v.SetDefault("export.path", "quiz_results.json")
}

// LoadConfig reads config.yaml from configPath (or the default search paths
// when empty) and overlays environment variables. A missing config file is
// not an error; defaults apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if os.Getenv("ENV") == "test" {
			v.AddConfigPath("../../config")
			v.AddConfigPath("../../")
		} else {
			v.AddConfigPath(".")
			v.AddConfigPath("./config")
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Quiz: QuizConfig{
			DefaultQuestions:    v.GetInt("quiz.default_questions"),
			AutoQuizQuestions:   v.GetInt("quiz.autoquiz_questions"),
			SimilarityThreshold: v.GetFloat64("quiz.similarity_threshold"),
			Seed:                v.GetInt64("quiz.seed"),
			Workers:             v.GetInt("quiz.workers"),
			MaxFeatures:         v.GetInt("quiz.max_features"),
		},
		Export: ExportConfig{
			Format: strings.ToLower(v.GetString("export.format")),
			Path:   v.GetString("export.path"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the quiz pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Quiz.SimilarityThreshold < 0 || c.Quiz.SimilarityThreshold > 1 {
		return fmt.Errorf("quiz.similarity_threshold must be within [0, 1], got %v", c.Quiz.SimilarityThreshold)
	}
	if c.Quiz.DefaultQuestions <= 0 {
		return fmt.Errorf("quiz.default_questions must be positive, got %d", c.Quiz.DefaultQuestions)
	}
	if c.Quiz.Workers <= 0 {
		c.Quiz.Workers = 1
	}
	switch c.Export.Format {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("unsupported export.format: %s", c.Export.Format)
	}
	return nil
}

// Default returns the configuration produced by LoadConfig with no file and
// no environment overrides.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Logger: LoggerConfig{Level: v.GetString("logger.level"), Env: v.GetString("logger.env")},
		Redis:  RedisConfig{TTL: v.GetDuration("redis.ttl")},
		Quiz: QuizConfig{
			DefaultQuestions:    v.GetInt("quiz.default_questions"),
			AutoQuizQuestions:   v.GetInt("quiz.autoquiz_questions"),
			SimilarityThreshold: v.GetFloat64("quiz.similarity_threshold"),
			Workers:             v.GetInt("quiz.workers"),
			MaxFeatures:         v.GetInt("quiz.max_features"),
		},
		Export: ExportConfig{Format: v.GetString("export.format"), Path: v.GetString("export.path")},
	}
}
