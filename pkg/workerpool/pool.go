// Package workerpool runs submitted tasks on a fixed set of goroutines.
// Submit never blocks: when the queue is full the caller gets ErrPoolFull
// and decides what to do with the task.
package workerpool

import (
	"errors"
	"sync"
)

var (
	// ErrPoolFull means every worker is busy and the task queue is at capacity.
	ErrPoolFull = errors.New("workerpool: pool is full")
	// ErrPoolClosed means Shutdown has already been called.
	ErrPoolClosed = errors.New("workerpool: pool is closed")
)

// Pool is a bounded goroutine pool.
type Pool struct {
	queue    chan func()
	done     chan struct{}
	shutdown sync.Once
	workers  sync.WaitGroup
}

// New starts the given number of worker goroutines. The task queue holds
// twice the worker count so short bursts are absorbed without rejections.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		queue: make(chan func(), workers*2),
		done:  make(chan struct{}),
	}
	p.workers.Add(workers)
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

// Submit hands a task to the pool without blocking.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}
	select {
	case p.queue <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until a queue slot frees up or the pool closes.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}
	select {
	case <-p.done:
		return ErrPoolClosed
	case p.queue <- task:
		return nil
	}
}

// Shutdown rejects further submissions and waits for queued tasks to drain.
// Safe to call more than once.
func (p *Pool) Shutdown() {
	p.shutdown.Do(func() {
		close(p.done)
		close(p.queue)
		p.workers.Wait()
	})
}

func (p *Pool) run() {
	defer p.workers.Done()
	for task := range p.queue {
		func() {
			// A panicking task must not take the worker down with it.
			defer func() { recover() }() //nolint:errcheck
			task()
		}()
	}
}
