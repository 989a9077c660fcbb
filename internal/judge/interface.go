package judge

import "context"

// Evaluator asks a language model to judge text against a rubric and returns
// its free-form reply.
type Evaluator interface {
	Evaluate(ctx context.Context, text, rubric string) (string, error)
}
