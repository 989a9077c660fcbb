// Package segmenter groups the target speaker's utterances into topical segments.
package segmenter

import (
	"context"

	"github.com/nguyentantai21042004/segment-flow/internal/transcript"
)

// Segmenter turns an utterance sequence into segments of target-speaker text,
// in transcript order. A segment is never empty.
type Segmenter interface {
	Segment(ctx context.Context, utterances []transcript.Utterance) ([]string, error)
	Name() string
}
