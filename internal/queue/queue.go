// Package queue provides a rate-limited FIFO dispatch queue for outbound
// API calls. Both external APIs the bot talks to enforce request pacing,
// so every call is funneled through one of these queues instead of being
// issued directly.
package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrClosed is returned for jobs that could not be dispatched because the
// queue was shut down. Pending futures are resolved with it, never dropped.
var ErrClosed = errors.New("queue closed")

// Result carries a job's outcome. Exactly one Result is delivered for
// every submitted job.
type Result[R any] struct {
	Value R
	Err   error
}

type item[J, R any] struct {
	job J
	res chan Result[R]
}

// Queue serializes jobs to a single worker with a minimum interval between
// dispatch starts. At most one job is in flight at a time; pacing is
// measured start-to-start, so a slow job does not stretch the interval
// beyond its own duration.
type Queue[J, R any] struct {
	name    string
	worker  func(context.Context, J) (R, error)
	limiter *rate.Limiter
	timeout time.Duration

	mu       sync.Mutex
	cond     *sync.Cond
	pending  []item[J, R]
	inFlight bool
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a queue and starts its dispatcher goroutine.
// interval is the minimum spacing between dispatch starts; timeout bounds
// each worker call (0 = no per-job timeout).
func New[J, R any](name string, interval, timeout time.Duration, worker func(context.Context, J) (R, error)) *Queue[J, R] {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue[J, R]{
		name:    name,
		worker:  worker,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.dispatch()
	return q
}

// Submit enqueues a job and returns a future that resolves once the job's
// worker call completes. Submit never blocks; the returned channel is
// buffered and receives exactly one Result.
func (q *Queue[J, R]) Submit(job J) <-chan Result[R] {
	res := make(chan Result[R], 1)
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		res <- Result[R]{Err: ErrClosed}
		return res
	}
	q.pending = append(q.pending, item[J, R]{job: job, res: res})
	q.cond.Signal()
	q.mu.Unlock()
	return res
}

// Size returns the number of jobs waiting plus the one in flight, if any.
// Used for external status reporting.
func (q *Queue[J, R]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.pending)
	if q.inFlight {
		n++
	}
	return n
}

// Close stops the dispatcher. Jobs still pending are resolved with
// ErrClosed; an in-flight worker call has its context canceled.
// Blocks until the dispatcher has exited. Safe to call more than once.
func (q *Queue[J, R]) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cond.Signal()
	}
	q.mu.Unlock()
	q.cancel()
	<-q.done
}

func (q *Queue[J, R]) dispatch() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if q.closed {
			rest := q.pending
			q.pending = nil
			q.mu.Unlock()
			for _, it := range rest {
				it.res <- Result[R]{Err: ErrClosed}
			}
			return
		}
		it := q.pending[0]
		q.pending = q.pending[1:]
		q.inFlight = true
		q.mu.Unlock()

		q.run(it)

		q.mu.Lock()
		q.inFlight = false
		q.mu.Unlock()
	}
}

func (q *Queue[J, R]) run(it item[J, R]) {
	if err := q.limiter.Wait(q.ctx); err != nil {
		it.res <- Result[R]{Err: ErrClosed}
		return
	}

	ctx := q.ctx
	cancel := func() {}
	if q.timeout > 0 {
		ctx, cancel = context.WithTimeout(q.ctx, q.timeout)
	}
	started := time.Now()
	val, err := q.worker(ctx, it.job)
	cancel()

	if err != nil {
		slog.Warn("queue job failed",
			"queue", q.name,
			"elapsed", time.Since(started).Round(time.Millisecond),
			"error", err,
		)
	}
	it.res <- Result[R]{Value: val, Err: err}
}
