package judge

import (
	"github.com/nguyentantai21042004/segment-flow/internal/gemini"
)

type implEvaluator struct {
	client gemini.Client
	model  string
}

// New creates an Evaluator backed by a Gemini model.
func New(client gemini.Client, model string) Evaluator {
	return &implEvaluator{client: client, model: model}
}
