package cmds

import (
	"context"
	"sync"
)

// RunWorkers calls callback for every index in [0, n) from at most workers
// goroutines. The first error cancels the context given to the others and is
// returned.
func RunWorkers(ctx context.Context, n, workers int, callback func(context.Context, int) error) error {
	if workers < 1 || workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var once sync.Once
	var first error

	indices := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			for i := range indices {
				if ctx.Err() != nil {
					continue
				}

				if err := callback(ctx, i); err != nil {
					once.Do(func() {
						first = err
						cancel()
					})
				}
			}
		}()
	}

end:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break end
		case indices <- i:
		}
	}

	close(indices)
	wg.Wait()

	if first != nil {
		return first
	}

	return ctx.Err()
}
