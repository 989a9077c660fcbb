package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nguyentantai21042004/segment-flow/internal/config"
	"github.com/nguyentantai21042004/segment-flow/internal/pipeline"
)

// Server exposes the upload and post generation endpoints.
type Server interface {
	Listen(addr string) error
	Shutdown() error
	// App returns the underlying fiber app, mainly for tests.
	App() *fiber.App
}

// PipelineFactory builds a Pipeline for one request. cfg is a per-request
// copy with the form overrides applied.
type PipelineFactory func(cfg *config.Config) (pipeline.Pipeline, error)
