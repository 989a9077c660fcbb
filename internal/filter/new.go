package filter

import (
	"time"

	"github.com/nguyentantai21042004/segment-flow/internal/judge"
	"github.com/nguyentantai21042004/segment-flow/internal/logger"
)

type Options struct {
	MinWords           int
	RelevanceThreshold float64
	// MaxConcurrent bounds in-flight evaluation calls. Values below 1 mean 1.
	MaxConcurrent int
	// Timeout applies to each evaluation call. Zero disables it.
	Timeout time.Duration
}

type implFilter struct {
	evaluator judge.Evaluator
	opts      Options
	logger    logger.Logger
}

// New creates a Filter that judges length survivors with evaluator.
func New(evaluator judge.Evaluator, opts Options, log logger.Logger) Filter {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	return &implFilter{
		evaluator: evaluator,
		opts:      opts,
		logger:    log,
	}
}
