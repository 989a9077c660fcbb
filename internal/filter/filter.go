package filter

import (
	"context"
	"fmt"
	"sync"
)

// Apply runs the length gate over every segment, then judges the survivors
// concurrently. Evaluation failures reject only their own segment; Apply
// returns an error only if ctx ends before every survivor was dispatched.
func (f *implFilter) Apply(ctx context.Context, segments []string) ([]Decision, error) {
	decisions := make([]Decision, len(segments))
	survivors := 0
	for i, s := range segments {
		decisions[i] = Decision{Segment: s, PassedLength: PassesLength(s, f.opts.MinWords)}
		if decisions[i].PassedLength {
			survivors++
		}
	}
	f.logger.Info(ctx, "After length filter, %d of %d segments remain", survivors, len(segments))

	sem := newSemaphore(f.opts.MaxConcurrent)
	var wg sync.WaitGroup

	for i := range decisions {
		if !decisions[i].PassedLength {
			continue
		}
		if err := sem.acquire(ctx); err != nil {
			wg.Wait()
			return decisions, fmt.Errorf("relevance gate: %w", err)
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.release()
			decisions[i].Relevance = f.judge(ctx, i, decisions[i].Segment)
		}(i)
	}
	wg.Wait()

	f.logger.Info(ctx, "After relevance filter, %d segments selected", len(Accepted(decisions)))
	return decisions, nil
}
