// package dispatch runs callbacks on a single consumer goroutine, in the order
// they were posted.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var ErrRunning = errors.New("dispatch: loop is already running")

// Loop is an unbounded FIFO of tasks drained by whoever calls [Loop.Run].
// tasks never run concurrently with each other.
type Loop struct {
	mu    sync.Mutex
	queue []func()

	wake    chan struct{}
	running atomic.Bool

	startOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post enqueues fn, it never blocks.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default: // a wakeup is already pending
	}
}

func (l *Loop) pop() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}

// Len reports the number of tasks waiting to run.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Run executes posted tasks in the calling goroutine until ctx is done, and
// returns ctx.Err(). only one Run may be active at a time.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer l.running.Store(false)

	for {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn := l.pop()
			if fn == nil {
				break
			}
			fn()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Start runs the loop on its own goroutine. calls after the first are no-ops.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		l.cancel, l.done = cancel, make(chan struct{})
		go func() {
			defer close(l.done)
			l.Run(ctx)
		}()
	})
}

// Stop stops a loop started with [Loop.Start] and waits for the running task,
// if any, to return. tasks still queued are kept.
func (l *Loop) Stop() {
	l.startOnce.Do(func() {}) // a later Start is a no-op
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
}
