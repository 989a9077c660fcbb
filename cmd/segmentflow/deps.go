package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/segment-flow/internal/config"
	"github.com/nguyentantai21042004/segment-flow/internal/embedding"
	"github.com/nguyentantai21042004/segment-flow/internal/gemini"
	"github.com/nguyentantai21042004/segment-flow/internal/judge"
	"github.com/nguyentantai21042004/segment-flow/internal/logger"
	"github.com/nguyentantai21042004/segment-flow/internal/pipeline"
	"github.com/nguyentantai21042004/segment-flow/pkg/executor"
)

// deps holds everything built from the config at startup.
type deps struct {
	cfg    *config.Config
	log    logger.Logger
	client gemini.Client
	// embedder is nil when its provider could not be set up; only the
	// similarity strategy needs it.
	embedder embedding.Embedder
}

func loadDeps(ctx context.Context, configPath string) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return newDeps(ctx, cfg), nil
}

// loadDepsOrDefault is loadDeps, except that a missing file at the default
// path yields the built-in defaults. An explicitly given path must exist.
func loadDepsOrDefault(ctx context.Context, configPath string, explicit bool) (*deps, error) {
	cfg, err := config.Load(configPath)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		def := config.Default()
		if err := def.Validate(); err != nil {
			return nil, err
		}
		cfg, err = &def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return newDeps(ctx, cfg), nil
}

func newDeps(ctx context.Context, cfg *config.Config) *deps {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	d := &deps{cfg: cfg, log: log}

	if client, err := gemini.New(cfg.Gemini.APIKeys, log); err != nil {
		log.Warn(ctx, "Gemini client unavailable: %v", err)
	} else {
		d.client = client
		log.Info(ctx, "Gemini client ready with %d API key(s)", len(cfg.Gemini.APIKeys))
	}

	if emb, err := embedding.New(cfg, d.client, executor.New()); err != nil {
		log.Warn(ctx, "Embedding provider %q unavailable: %v", cfg.Embedding.Provider, err)
	} else {
		d.embedder = emb
	}

	return d
}

// evaluator fails when no Gemini key is configured.
func (d *deps) evaluator() (judge.Evaluator, error) {
	if d.client == nil {
		return nil, fmt.Errorf("relevance judge: %w", gemini.ErrNoAPIKeys)
	}
	return judge.New(d.client, d.cfg.Gemini.Model), nil
}

func (d *deps) pipeline(cfg *config.Config) (pipeline.Pipeline, error) {
	eval, err := d.evaluator()
	if err != nil {
		return nil, err
	}
	return pipeline.FromConfig(cfg, d.embedder, eval, d.log)
}

func ensureDirectories(cfg *config.Config) error {
	for _, dir := range []string{cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Archived} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
