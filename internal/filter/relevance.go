package filter

import (
	"context"
	"fmt"
	"strings"
)

// affirmative is searched for anywhere in the reply. The match is a plain
// substring on purpose: the model is only asked to conclude with YES or NO.
const affirmative = "YES"

const rubricTemplate = `**Evaluation Criteria (Rate 1-5):**
- **Substance:** Does the chunk provide valuable insights, meaningful information, or unique perspectives?
- **Use of Statistics:** Does the chunk include relevant statistics, quantifiable data, or credible references?
- **Storytelling:** Are there compelling personal anecdotes, case studies, or real-world examples that make it engaging?
- **Clarity:** Is the content clear, concise, and easily understandable by a broad audience?

**Instructions:**
1. Provide a score (1-5) for each evaluation criterion listed above.
2. Conclude by stating 'YES' if the chunk meets the threshold of %.1f or more in at least one category; otherwise, state 'NO'.
3. If the chunk contains elements that might be useful for social media engagement or sparks interest, respond with 'YES'.`

// RubricPrompt renders the scoring instructions for threshold.
func RubricPrompt(threshold float64) string {
	return fmt.Sprintf(rubricTemplate, threshold)
}

func IsAffirmative(reply string) bool {
	return strings.Contains(reply, affirmative)
}

// judge never returns an error: a failed call is VerdictUnknown.
func (f *implFilter) judge(ctx context.Context, idx int, segment string) Verdict {
	if f.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()
	}

	reply, err := f.evaluator.Evaluate(ctx, segment, RubricPrompt(f.opts.RelevanceThreshold))
	if err != nil {
		f.logger.Warn(ctx, "Segment %d rejected, evaluation failed: %v", idx+1, err)
		return VerdictUnknown
	}

	f.logger.Debug(ctx, "Segment %d analysis:\n%s", idx+1, reply)
	if IsAffirmative(reply) {
		return VerdictPass
	}
	return VerdictFail
}
