// Package filter keeps the segments worth posting: a cheap local length gate
// followed by a model-judged relevance gate that fails closed.
package filter

import "context"

// Filter judges segments and returns one Decision per input, in input order.
type Filter interface {
	Apply(ctx context.Context, segments []string) ([]Decision, error)
}
