package worker

import (
	"context"
	"sync"
)

// Result pairs a job's output with its submission position
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// Map runs fn over indices 0..n-1 with at most workers goroutines and
// returns results ordered by index. Downstream deduplication relies on
// this ordering being identical to a sequential run.
func Map[T any](ctx context.Context, workers, n int, fn func(context.Context, int) (T, error)) []Result[T] {
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	results := make([]Result[T], n)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				value, err := fn(ctx, i)
				results[i] = Result[T]{Index: i, Value: value, Err: err}
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			// Mark unsubmitted jobs as cancelled
			for j := i; j < n; j++ {
				results[j] = Result[T]{Index: j, Err: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return results
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
