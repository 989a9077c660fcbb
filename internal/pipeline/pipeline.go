package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/segment-flow/internal/filter"
	"github.com/nguyentantai21042004/segment-flow/internal/logger"
	"github.com/nguyentantai21042004/segment-flow/internal/transcript"
)

type Result struct {
	RunID      string
	Utterances int
	// Segments holds everything the segmenter produced, before filtering.
	Segments  []string
	Decisions []filter.Decision
	Accepted  []string
}

func (p *implPipeline) Strategy() string {
	return p.segmenter.Name()
}

func (p *implPipeline) Run(ctx context.Context, data []byte) (*Result, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)

	p.logger.Info(ctx, "Starting run: strategy=%s target=%q counterpart=%q",
		p.segmenter.Name(), p.speakers.Target, p.speakers.Counterpart)

	utterances, segments, err := p.segment(ctx, data)
	if err != nil {
		return nil, err
	}

	decisions, err := p.filter.Apply(ctx, segments)
	if err != nil {
		p.logger.Error(ctx, "Filter stage failed: %v", err)
		return nil, &StageError{Stage: StageFilter, Err: err}
	}

	result := &Result{
		RunID:      runID,
		Utterances: utterances,
		Segments:   segments,
		Decisions:  decisions,
		Accepted:   filter.Accepted(decisions),
	}

	p.logger.Info(ctx, "Run finished in %s: %d utterances, %d segments, %d accepted",
		time.Since(startTime), result.Utterances, len(result.Segments), len(result.Accepted))

	if len(result.Accepted) == 0 {
		return result, ErrEmptyResult
	}
	return result, nil
}

func (p *implPipeline) Segment(ctx context.Context, data []byte) ([]string, error) {
	ctx = logger.WithRunID(ctx, uuid.NewString())
	_, segments, err := p.segment(ctx, data)
	return segments, err
}

func (p *implPipeline) segment(ctx context.Context, data []byte) (int, []string, error) {
	utterances, err := transcript.Parse(bytes.NewReader(data), p.speakers)
	if err != nil {
		p.logger.Error(ctx, "Parse stage failed: %v", err)
		return 0, nil, &StageError{Stage: StageParse, Err: err}
	}
	p.logger.Info(ctx, "Parsed %d utterances", len(utterances))

	segments, err := p.segmenter.Segment(ctx, utterances)
	if err != nil {
		p.logger.Error(ctx, "Segment stage failed: %v", err)
		return len(utterances), nil, &StageError{Stage: StageSegment, Err: err}
	}
	p.logger.Info(ctx, "Generated %d segments using method '%s'", len(segments), p.segmenter.Name())

	return len(utterances), segments, nil
}
