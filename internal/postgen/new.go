package postgen

import (
	"github.com/nguyentantai21042004/segment-flow/internal/gemini"
	"github.com/nguyentantai21042004/segment-flow/internal/logger"
)

type implGenerator struct {
	client gemini.Client
	model  string
	logger logger.Logger
}

// New creates a Generator backed by the given Gemini model.
func New(client gemini.Client, model string, log logger.Logger) Generator {
	return &implGenerator{
		client: client,
		model:  model,
		logger: log,
	}
}
