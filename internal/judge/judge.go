package judge

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/segment-flow/internal/gemini"
)

// Gemini 2.5 models count thinking tokens against the output budget, so this
// is well above what the verdict itself needs.
const maxReplyTokens = 1024

// Evaluate sends text and rubric with temperature 0 so the verdict is stable.
func (e *implEvaluator) Evaluate(ctx context.Context, text, rubric string) (string, error) {
	reply, err := e.client.Generate(ctx, e.model, gemini.Request{
		System:      systemPrompt,
		Prompt:      fmt.Sprintf(evaluationPrompt, text, rubric),
		Temperature: 0,
		MaxTokens:   maxReplyTokens,
	})
	if err != nil {
		return "", fmt.Errorf("evaluate: %w", err)
	}
	return reply, nil
}
