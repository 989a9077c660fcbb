package processor

import (
	"github.com/nguyentantai21042004/segment-flow/internal/config"
	"github.com/nguyentantai21042004/segment-flow/internal/logger"
	"github.com/nguyentantai21042004/segment-flow/internal/pipeline"
)

type implProcessor struct {
	cfg      *config.Config
	pipeline pipeline.Pipeline
	logger   logger.Logger
}

// New creates a Processor that runs pipe over each transcript.
func New(cfg *config.Config, pipe pipeline.Pipeline, log logger.Logger) Processor {
	return &implProcessor{
		cfg:      cfg,
		pipeline: pipe,
		logger:   log,
	}
}
