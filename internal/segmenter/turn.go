package segmenter

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/segment-flow/internal/transcript"
)

type turnBased struct {
	speakers transcript.SpeakerSet
}

// NewTurnBased cuts a segment every time the counterpart speaks.
func NewTurnBased(speakers transcript.SpeakerSet) Segmenter {
	return &turnBased{speakers: speakers}
}

func (t *turnBased) Name() string { return "turn" }

func (t *turnBased) Segment(_ context.Context, utterances []transcript.Utterance) ([]string, error) {
	var (
		segments []string
		current  []string
	)

	for _, u := range utterances {
		switch {
		case t.speakers.IsCounterpart(u.Speaker):
			if len(current) > 0 {
				segments = append(segments, strings.Join(current, " "))
				current = current[:0]
			}
		case t.speakers.IsTarget(u.Speaker):
			current = append(current, u.Text)
		}
	}

	if len(current) > 0 {
		segments = append(segments, strings.Join(current, " "))
	}
	return segments, nil
}
