// Package workerpool runs a fixed set of identical workers.
package workerpool

import "sync"

// Run starts count goroutines, each invoked with its worker index, and blocks
// until all of them return.
func Run(count int, fn func(worker int)) {
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func(worker int) {
			defer wg.Done()
			fn(worker)
		}(i)
	}
	wg.Wait()
}

// Start is the non-blocking variant of Run. The returned function blocks
// until all workers return.
func Start(count int, fn func(worker int)) (wait func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(count, fn)
	}()
	return func() { <-done }
}
