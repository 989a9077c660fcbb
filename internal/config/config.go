package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	StrategyTurn       = "turn"
	StrategySimilarity = "similarity"

	EmbeddingGemini  = "gemini"
	EmbeddingHTTP    = "http"
	EmbeddingCommand = "command"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Speakers     SpeakersConfig     `yaml:"speakers"`
	Segmentation SegmentationConfig `yaml:"segmentation"`
	Filter       FilterConfig       `yaml:"filter"`
	Gemini       GeminiConfig       `yaml:"gemini"`
	Embedding    EmbeddingConfig    `yaml:"embedding"`
	Paths        PathsConfig        `yaml:"paths"`
	Logging      LoggingConfig      `yaml:"logging"`
	Performance  PerformanceConfig  `yaml:"performance"`
}

type ServerConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port" validate:"gte=1,lte=65535"`
	MaxUploadSize int    `yaml:"max_upload_mb" validate:"gte=1"`
}

type SpeakersConfig struct {
	Target      string `yaml:"target" validate:"required"`
	Counterpart string `yaml:"counterpart" validate:"required,nefield=Target"`
}

type SegmentationConfig struct {
	Strategy            string  `yaml:"strategy" validate:"oneof=turn similarity"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" validate:"gte=0,lte=1"`
}

type FilterConfig struct {
	MinWords           int     `yaml:"min_words" validate:"gte=0"`
	RelevanceThreshold float64 `yaml:"relevance_threshold" validate:"gte=1,lte=5"`
	MaxConcurrent      int     `yaml:"max_concurrent" validate:"gte=1"`
	TimeoutSeconds     int     `yaml:"timeout_seconds" validate:"gte=1"`
}

type GeminiConfig struct {
	APIKeys        []string `yaml:"api_keys"`
	Model          string   `yaml:"model"`
	EmbeddingModel string   `yaml:"embedding_model"`
	PostModel      string   `yaml:"post_model"`
}

type EmbeddingConfig struct {
	Provider string   `yaml:"provider" validate:"oneof=gemini http command"`
	URL      string   `yaml:"url" validate:"required_if=Provider http"`
	Command  string   `yaml:"command" validate:"required_if=Provider command"`
	Args     []string `yaml:"args"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

var validate = validator.New()

// ErrSameSpeakers means the target and counterpart labels name the same speaker.
var ErrSameSpeakers = errors.New("target and counterpart speaker labels must differ")

// Default returns the settings whose zero value is meaningful, so a YAML file
// may set similarity_threshold or min_words to 0 explicitly.
func Default() Config {
	return Config{
		Segmentation: SegmentationConfig{SimilarityThreshold: 0.6},
		Filter:       FilterConfig{MinWords: 50},
	}
}

// Validate fills unset fields with defaults and checks the result.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.MaxUploadSize == 0 {
		c.Server.MaxUploadSize = 10
	}
	if c.Speakers.Target == "" {
		c.Speakers.Target = "Austin Kennedy"
	}
	if c.Speakers.Counterpart == "" {
		c.Speakers.Counterpart = "Speaker A"
	}
	if c.Segmentation.Strategy == "" {
		c.Segmentation.Strategy = StrategyTurn
	}
	if c.Filter.RelevanceThreshold == 0 {
		c.Filter.RelevanceThreshold = 2.5
	}
	if c.Filter.MaxConcurrent == 0 {
		c.Filter.MaxConcurrent = 4
	}
	if c.Filter.TimeoutSeconds == 0 {
		c.Filter.TimeoutSeconds = 30
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.EmbeddingModel == "" {
		c.Gemini.EmbeddingModel = "text-embedding-004"
	}
	if c.Gemini.PostModel == "" {
		c.Gemini.PostModel = "gemini-2.5-pro"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = EmbeddingGemini
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Speakers.Check(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Check rejects labels that match each other, ignoring case and surrounding
// whitespace the way transcript labels are matched.
func (s SpeakersConfig) Check() error {
	if strings.EqualFold(strings.TrimSpace(s.Target), strings.TrimSpace(s.Counterpart)) {
		return ErrSameSpeakers
	}
	return nil
}

// FilterTimeout is the per-segment evaluation deadline.
func (c *Config) FilterTimeout() time.Duration {
	return time.Duration(c.Filter.TimeoutSeconds) * time.Second
}
