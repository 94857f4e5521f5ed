package fn

import "sync"

// FanOut runs functions concurrently and returns results in order.
func FanOut[T any](fns ...func() T) []T {
	out := make([]T, len(fns))
	var wg sync.WaitGroup
	for i, f := range fns {
		wg.Add(1)
		go func(i int, f func() T) {
			defer wg.Done()
			out[i] = f()
		}(i, f)
	}
	wg.Wait()
	return out
}

// FanOutResult runs functions concurrently; returns the first error or all values.
func FanOutResult[T any](fns ...func() Result[T]) Result[[]T] {
	results := make([]Result[T], len(fns))
	var wg sync.WaitGroup
	for i, f := range fns {
		wg.Add(1)
		go func(i int, f func() Result[T]) {
			defer wg.Done()
			results[i] = f()
		}(i, f)
	}
	wg.Wait()
	return Collect(results)
}
