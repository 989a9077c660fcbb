package pipeline

import "context"

// Pipeline runs parse, segment and filter for one transcript.
type Pipeline interface {
	// Run executes the full pipeline. When every stage succeeds but nothing
	// survives the filter, the Result is returned together with ErrEmptyResult.
	Run(ctx context.Context, transcript []byte) (*Result, error)
	// Segment parses and segments only, skipping the filter.
	Segment(ctx context.Context, transcript []byte) ([]string, error)
	// Strategy names the segmentation strategy in use.
	Strategy() string
}
