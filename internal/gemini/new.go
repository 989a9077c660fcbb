package gemini

import (
	"errors"
	"sync"

	"github.com/nguyentantai21042004/segment-flow/internal/logger"
)

var ErrNoAPIKeys = errors.New("no Gemini API keys configured")

type implClient struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	logger     logger.Logger
}

// New creates a Client that rotates through the supplied Gemini API keys.
func New(apiKeys []string, log logger.Logger) (Client, error) {
	if len(apiKeys) == 0 {
		return nil, ErrNoAPIKeys
	}
	return &implClient{
		apiKeys: apiKeys,
		logger:  log,
	}, nil
}
