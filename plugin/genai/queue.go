package genai

import (
	"context"
	"sync"
	"time"
)

// schedulePollDelay is how long the scheduler waits before re-checking the
// rate-limit window when it is the only thing blocking dispatch.
const schedulePollDelay = 100 * time.Millisecond

type taskResult struct {
	value string
	err   error
}

type queueTask struct {
	ctx  context.Context
	run  func(ctx context.Context) (string, error)
	done chan taskResult
}

// RequestQueue bounds concurrent in-flight external calls and enforces a
// sliding-window rate limit. Pending tasks start in FIFO order; results and
// errors propagate to the submitting caller unmodified. The rate window is
// re-evaluated by polling, so brief overshoot at the window boundary is
// possible.
type RequestQueue struct {
	mu         sync.Mutex
	pending    []*queueTask
	active     int
	startTimes []time.Time

	concurrency int
	rateLimit   int
	interval    time.Duration

	wake   chan struct{}
	closed chan struct{}

	now func() time.Time
}

// NewRequestQueue creates a request queue and starts its scheduler.
func NewRequestQueue(concurrency, rateLimit int, interval time.Duration) *RequestQueue {
	q := &RequestQueue{
		concurrency: concurrency,
		rateLimit:   rateLimit,
		interval:    interval,
		wake:        make(chan struct{}, 1),
		closed:      make(chan struct{}),
		now:         time.Now,
	}
	go q.schedule()
	return q
}

// Add submits a task and blocks until it has run, returning its result
// unmodified. The task itself runs with the submitter's context.
func (q *RequestQueue) Add(ctx context.Context, run func(ctx context.Context) (string, error)) (string, error) {
	task := &queueTask{
		ctx:  ctx,
		run:  run,
		done: make(chan taskResult, 1),
	}

	q.mu.Lock()
	q.pending = append(q.pending, task)
	q.mu.Unlock()
	q.notify()

	result := <-task.done
	return result.value, result.err
}

// Len returns the number of pending tasks.
func (q *RequestQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Active returns the number of in-flight tasks.
func (q *RequestQueue) Active() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

// Close stops the scheduler. Pending tasks that have not started will never
// run; callers blocked in Add stay blocked, so Close is intended for process
// shutdown only.
func (q *RequestQueue) Close() {
	close(q.closed)
}

func (q *RequestQueue) notify() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *RequestQueue) schedule() {
	for {
		select {
		case <-q.closed:
			return
		case <-q.wake:
			q.dispatch()
		}
	}
}

// dispatch starts as many pending tasks as capacity and the rate window
// allow. When only the rate limit blocks the head task, it re-arms a wake-up
// after a fixed short delay instead of busy-waiting.
func (q *RequestQueue) dispatch() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 || q.active >= q.concurrency {
			q.mu.Unlock()
			return
		}

		now := q.now()
		q.pruneWindow(now)
		if len(q.startTimes) >= q.rateLimit {
			q.mu.Unlock()
			time.AfterFunc(schedulePollDelay, q.notify)
			return
		}

		task := q.pending[0]
		q.pending = q.pending[1:]
		q.startTimes = append(q.startTimes, now)
		q.active++
		q.mu.Unlock()

		go q.runTask(task)
	}
}

func (q *RequestQueue) runTask(task *queueTask) {
	value, err := task.run(task.ctx)
	task.done <- taskResult{value: value, err: err}

	q.mu.Lock()
	q.active--
	q.mu.Unlock()
	q.notify()
}

// pruneWindow drops start timestamps older than the trailing interval.
// Caller must hold q.mu.
func (q *RequestQueue) pruneWindow(now time.Time) {
	cutoff := now.Add(-q.interval)
	kept := q.startTimes[:0]
	for _, ts := range q.startTimes {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	q.startTimes = kept
}
