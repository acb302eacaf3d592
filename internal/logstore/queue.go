package logstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Result is the handle returned for a queued operation. Waiting on it is
// optional: appends and compactions are best-effort unless the caller
// inspects the handle, while queries always wait.
type Result struct {
	done chan struct{}
	err  error
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

func (r *Result) complete(err error) {
	r.err = err
	close(r.done)
}

// Wait blocks until the task has run and returns its error. If ctx ends
// first, Wait returns the context error; the task itself still runs to
// completion once dequeued.
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel closed when the task has finished.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Err returns the task error. Valid only after Done is closed.
func (r *Result) Err() error {
	return r.err
}

type task struct {
	id     uuid.UUID
	name   string // "append", "query" or "compact"
	run    func() error
	result *Result
}

// taskQueue serializes every operation against one backing file. Tasks
// execute strictly in submission order on a single worker goroutine, so
// at most one I/O call is ever in flight per store. A failed task
// completes its own Result and the worker moves on; nothing poisons the
// queue. Depth is unbounded: slow storage delays later tasks but never
// drops them.
type taskQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []*task
	closed  bool
	stopped chan struct{}
}

func newTaskQueue() *taskQueue {
	q := &taskQueue{stopped: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.drain()
	return q
}

// submit enqueues a task and returns its Result. Submission order under
// concurrent callers is the order submissions win the queue lock.
func (q *taskQueue) submit(name string, run func() error) *Result {
	t := &task{id: uuid.New(), name: name, run: run, result: newResult()}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		t.result.complete(ErrStoreClosed)
		return t.result
	}
	q.pending = append(q.pending, t)
	q.mu.Unlock()
	q.cond.Signal()

	return t.result
}

func (q *taskQueue) drain() {
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 && q.closed {
			q.mu.Unlock()
			close(q.stopped)
			return
		}
		t := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		err := t.run()
		if err != nil {
			log.Debug().
				Str("task_id", t.id.String()).
				Str("task", t.name).
				Err(err).
				Msg("Task failed")
		}
		t.result.complete(err)
	}
}

// close stops accepting tasks, lets already-queued ones run, then stops
// the worker.
func (q *taskQueue) close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.stopped
		return
	}
	q.closed = true
	q.mu.Unlock()
	q.cond.Signal()
	<-q.stopped
}
