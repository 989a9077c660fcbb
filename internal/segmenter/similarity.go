package segmenter

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/nguyentantai21042004/segment-flow/internal/embedding"
	"github.com/nguyentantai21042004/segment-flow/internal/transcript"
)

type similarityBased struct {
	speakers  transcript.SpeakerSet
	embedder  embedding.Embedder
	threshold float64
}

// NewSimilarityBased cuts a segment when consecutive target utterances fall
// below threshold cosine similarity. Other speakers are ignored entirely.
func NewSimilarityBased(speakers transcript.SpeakerSet, embedder embedding.Embedder, threshold float64) Segmenter {
	return &similarityBased{speakers: speakers, embedder: embedder, threshold: threshold}
}

func (s *similarityBased) Name() string { return "similarity" }

func (s *similarityBased) Segment(ctx context.Context, utterances []transcript.Utterance) ([]string, error) {
	var texts []string
	for _, u := range utterances {
		if s.speakers.IsTarget(u.Speaker) {
			texts = append(texts, u.Text)
		}
	}
	if len(texts) == 0 {
		return nil, nil
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbedding, len(vectors), len(texts))
	}

	var segments []string
	current := []string{texts[0]}

	for i := 0; i < len(texts)-1; i++ {
		if Cosine(vectors[i], vectors[i+1]) < s.threshold {
			segments = append(segments, strings.Join(current, " "))
			current = []string{texts[i+1]}
		} else {
			current = append(current, texts[i+1])
		}
	}

	segments = append(segments, strings.Join(current, " "))
	return segments, nil
}

// Cosine returns the cosine similarity of a and b clamped to [0,1]. Vectors of
// different length or zero norm score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(0, math.Min(1, sim))
}
