package segmenter

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/segment-flow/internal/config"
	"github.com/nguyentantai21042004/segment-flow/internal/embedding"
	"github.com/nguyentantai21042004/segment-flow/internal/transcript"
)

var ErrEmbedding = errors.New("embedding service unavailable")

// New returns the Segmenter for strategy. embedder is required only for the
// similarity strategy.
func New(strategy string, speakers transcript.SpeakerSet, embedder embedding.Embedder, threshold float64) (Segmenter, error) {
	switch strategy {
	case config.StrategyTurn:
		return NewTurnBased(speakers), nil
	case config.StrategySimilarity:
		if embedder == nil {
			return nil, fmt.Errorf("similarity segmenter: %w", ErrEmbedding)
		}
		if threshold < 0 || threshold > 1 {
			return nil, fmt.Errorf("similarity threshold %v outside [0,1]", threshold)
		}
		return NewSimilarityBased(speakers, embedder, threshold), nil
	default:
		return nil, fmt.Errorf("unknown segmentation strategy %q", strategy)
	}
}
