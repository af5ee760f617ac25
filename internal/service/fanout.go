// Package service contains the application's business logic layer.
package service

import "sync"

// await runs every task concurrently and blocks until all complete.
// The first non-nil error wins; later errors are dropped.
func await(tasks ...func() error) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	wg.Add(len(tasks))
	for _, task := range tasks {
		go func(task func() error) {
			defer wg.Done()
			if err := task(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(task)
	}
	wg.Wait()
	return firstErr
}

// awaitIndexed runs fn once per index concurrently and blocks until all
// complete, returning the first error.
func awaitIndexed(n int, fn func(i int) error) error {
	tasks := make([]func() error, n)
	for i := 0; i < n; i++ {
		i := i
		tasks[i] = func() error { return fn(i) }
	}
	return await(tasks...)
}
