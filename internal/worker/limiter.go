package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

var (
	ErrLimiterConcurrency = errors.New("error running func, reached concurrency limit")
	ErrLimiterDrain       = errors.New("draining funcs")
)

// requirements
// - limit running items based on concurrency value
// - drain blocks adding more items to be run, waits until all items are complete
// - uses waitgroup
// - accepts func() - all error handling must be wrapped in a closure by the caller
// - supports returning number of running items

// Limiter runs go routines limiting them by the defined concurrency.
type Limiter struct {
	// waitgroup for running routines.
	wg *sync.WaitGroup
	// slots holds a token per running routine.
	slots chan struct{}
	// mu is the guard for drain.
	mu sync.RWMutex
	// dispatched indicates the number of routines running on this limiter.
	dispatched int32
	// drain is the flag set when StopWait() invoked, with drain=true, no further funcs are accepted.
	drain bool
}

// NewLimiter returns a new limiting go routine runner.
// To ensure the routines spawned by Limiter are stopped, the StopWait() method should be invoked.
//
// concurrency is the limit on the number of running go routines, values below 1 are treated as 1.
func NewLimiter(concurrency int) *Limiter {
	if concurrency < 1 {
		concurrency = 1
	}

	return &Limiter{
		wg:    &sync.WaitGroup{},
		slots: make(chan struct{}, concurrency),
	}
}

// Dispatch runs the given routine once a slot is free, blocking until then or until ctx is done.
//
// The routine to be executed should be wrapped in a closure.
func (l *Limiter) Dispatch(ctx context.Context, f func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case l.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	return l.run(f)
}

// TryDispatch runs the given routine when a slot is free and returns ErrLimiterConcurrency otherwise.
func (l *Limiter) TryDispatch(f func()) error {
	select {
	case l.slots <- struct{}{}:
	default:
		return ErrLimiterConcurrency
	}

	return l.run(f)
}

// run spawns f on a slot already acquired by the caller.
func (l *Limiter) run(f func()) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.drain {
		<-l.slots
		return ErrLimiterDrain
	}

	l.wg.Add(1)
	atomic.AddInt32(&l.dispatched, 1)

	go func() {
		defer func() {
			atomic.AddInt32(&l.dispatched, -1)
			<-l.slots
			l.wg.Done()
		}()

		f()
	}()

	return nil
}

// Each runs fn for every index in [0, n) on the limiter and returns once all of them have returned.
//
// When ctx is done no further indexes are dispatched and the context error is returned.
func (l *Limiter) Each(ctx context.Context, n int, fn func(i int)) error {
	var (
		wg  sync.WaitGroup
		err error
	)

	for i := 0; i < n; i++ {
		i := i

		wg.Add(1)

		if err = l.Dispatch(ctx, func() {
			defer wg.Done()
			fn(i)
		}); err != nil {
			wg.Done()
			break
		}
	}

	wg.Wait()

	return err
}

// ActiveCount returns the count of running routines
func (l *Limiter) ActiveCount() int {
	return int(atomic.LoadInt32(&l.dispatched))
}

// StopWait prevents any further routines from being added
// and waits until all the routines complete.
func (l *Limiter) StopWait() {
	l.mu.Lock()
	l.drain = true
	l.mu.Unlock()

	l.wg.Wait()
}
