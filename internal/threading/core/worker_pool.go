package core

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolStopped is returned when work is submitted to a stopped pool
var ErrPoolStopped = errors.New("worker pool stopped")

// WorkerPool runs background jobs such as texture decoding on a fixed set of
// goroutines. The per-frame render pass never runs on it.
type WorkerPool struct {
	numWorkers int
	jobQueue   chan task
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
}

// task is a queued job. drop runs instead of run when the pool stops first.
type task struct {
	run  func()
	drop func()
}

// NewWorkerPool creates a pool of numWorkers goroutines; <= 0 means one per CPU
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan task, numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start launches the worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case t := <-wp.jobQueue:
			select {
			case <-wp.quit:
				wp.finish(t, false)
			default:
				wp.finish(t, true)
			}
		case <-wp.quit:
			wp.drain()
			return
		}
	}
}

// finish runs or drops a dequeued task and releases its Wait slot
func (wp *WorkerPool) finish(t task, run bool) {
	defer wp.wg.Done()
	if run {
		t.run()
	} else if t.drop != nil {
		t.drop()
	}
}

// drain drops everything still queued
func (wp *WorkerPool) drain() {
	for {
		select {
		case t := <-wp.jobQueue:
			wp.finish(t, false)
		default:
			return
		}
	}
}

// Submit queues a job. It blocks while the queue is full and fails once the pool
// is stopped. A job accepted while Stop runs may still be dropped unrun.
func (wp *WorkerPool) Submit(job func()) error {
	return wp.submit(task{run: job})
}

func (wp *WorkerPool) submit(t task) error {
	select {
	case <-wp.quit:
		return ErrPoolStopped
	default:
	}

	wp.wg.Add(1)
	select {
	case wp.jobQueue <- t:
		// Stop may have drained the queue just before this send landed
		select {
		case <-wp.quit:
			wp.drain()
		default:
		}
		return nil
	case <-wp.quit:
		wp.wg.Done()
		return ErrPoolStopped
	}
}

// Wait blocks until every submitted job has finished or been dropped
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts the workers down. Queued jobs are dropped; running ones finish.
// Safe to call twice.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.quit)
		wp.drain()
	})
}

// ParallelFor calls fn for every index in [start, end), split into one chunk per
// worker, and waits for those chunks only. Cancelling ctx stops chunks between
// indices and returns the context's error. If the pool stops first, unrun chunks
// are dropped and ErrPoolStopped is returned.
func (wp *WorkerPool) ParallelFor(ctx context.Context, start, end int, fn func(int)) error {
	if start >= end {
		return ctx.Err()
	}

	chunkSize := max(1, (end-start+wp.numWorkers-1)/wp.numWorkers)
	var batch sync.WaitGroup
	var dropped atomic.Bool
	for lo := start; lo < end; lo += chunkSize {
		hi := min(lo+chunkSize, end)
		batch.Add(1)
		err := wp.submit(task{
			run: func() {
				defer batch.Done()
				for i := lo; i < hi; i++ {
					if ctx.Err() != nil {
						return
					}
					fn(i)
				}
			},
			drop: func() {
				dropped.Store(true)
				batch.Done()
			},
		})
		if err != nil {
			batch.Done()
			batch.Wait()
			return err
		}
	}
	batch.Wait()
	if dropped.Load() {
		return ErrPoolStopped
	}
	return ctx.Err()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// SafeCounter is a lock-free counter for statistics shared between goroutines
type SafeCounter struct {
	value atomic.Int64
}

// NewSafeCounter creates a counter at zero
func NewSafeCounter() *SafeCounter {
	return &SafeCounter{}
}

// Increment adds one and returns the new value
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

// Add adds delta and returns the new value
func (c *SafeCounter) Add(delta int64) int64 {
	return c.value.Add(delta)
}

// Get returns the current value
func (c *SafeCounter) Get() int64 {
	return c.value.Load()
}
