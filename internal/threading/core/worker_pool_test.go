package core

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_SubmitAndWait(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	var count atomic.Int32
	for i := 0; i < 100; i++ {
		if err := pool.Submit(func() { count.Add(1) }); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	pool.Wait()

	if count.Load() != 100 {
		t.Errorf("ran %d jobs, want 100", count.Load())
	}
}

func TestWorkerPool_ParallelFor(t *testing.T) {
	pool := NewWorkerPool(3)
	pool.Start()
	defer pool.Stop()

	seen := make([]int32, 50)
	err := pool.ParallelFor(context.Background(), 0, len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	if err != nil {
		t.Fatalf("ParallelFor failed: %v", err)
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("index %d visited %d times", i, n)
		}
	}

	// Empty ranges return immediately
	if err := pool.ParallelFor(context.Background(), 5, 5, func(int) { t.Error("fn called for empty range") }); err != nil {
		t.Errorf("empty range returned %v", err)
	}
}

func TestWorkerPool_ParallelForIndependentOfOtherJobs(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	release := make(chan struct{})
	if err := pool.Submit(func() { <-release }); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// The blocked job holds one worker; ParallelFor must still finish on the other
	var count atomic.Int32
	if err := pool.ParallelFor(context.Background(), 0, 10, func(int) { count.Add(1) }); err != nil {
		t.Fatalf("ParallelFor failed: %v", err)
	}
	if count.Load() != 10 {
		t.Errorf("ran %d indices, want 10", count.Load())
	}
	close(release)
	pool.Wait()
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var count atomic.Int32
	err := pool.ParallelFor(ctx, 0, 20, func(int) { count.Add(1) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if count.Load() != 0 {
		t.Errorf("cancelled work ran %d times", count.Load())
	}
}

func TestWorkerPool_Stopped(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.GetNumWorkers() <= 0 {
		t.Errorf("default pool has %d workers", pool.GetNumWorkers())
	}
	pool.Start()
	pool.Stop()
	pool.Stop()

	if err := pool.Submit(func() {}); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped, got %v", err)
	}
	if err := pool.ParallelFor(context.Background(), 0, 4, func(int) {}); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped from ParallelFor, got %v", err)
	}
}

// waitQueued polls until n jobs sit in the pool's queue
func waitQueued(t *testing.T, pool *WorkerPool, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(pool.jobQueue) < n {
		if time.Now().After(deadline) {
			t.Fatalf("queue holds %d jobs, want %d", len(pool.jobQueue), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestWorkerPool_StopReleasesQueuedParallelFor(t *testing.T) {
	for trial := 0; trial < 20; trial++ {
		pool := NewWorkerPool(1)
		pool.Start()

		started := make(chan struct{})
		release := make(chan struct{})
		if err := pool.Submit(func() {
			close(started)
			<-release
		}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		<-started

		var ran atomic.Int32
		done := make(chan error, 1)
		go func() {
			done <- pool.ParallelFor(context.Background(), 0, 1, func(int) { ran.Add(1) })
		}()
		waitQueued(t, pool, 1)

		pool.Stop()
		select {
		case err := <-done:
			if !errors.Is(err, ErrPoolStopped) {
				t.Errorf("trial %d: ParallelFor returned %v, want ErrPoolStopped", trial, err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("trial %d: ParallelFor never returned after Stop", trial)
		}

		close(release)
		waited := make(chan struct{})
		go func() {
			pool.Wait()
			close(waited)
		}()
		select {
		case <-waited:
		case <-time.After(2 * time.Second):
			t.Fatalf("trial %d: Wait blocked after Stop", trial)
		}
		if ran.Load() != 0 {
			t.Errorf("trial %d: dropped chunk ran %d times", trial, ran.Load())
		}
	}
}

func TestWorkerPool_StopDropsQueuedJobs(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Start()

	started := make(chan struct{})
	release := make(chan struct{})
	_ = pool.Submit(func() {
		close(started)
		<-release
	})
	<-started

	var ran atomic.Int32
	for i := 0; i < 2; i++ {
		if err := pool.Submit(func() { ran.Add(1) }); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	pool.Stop()
	close(release)
	pool.Wait()

	if ran.Load() != 0 {
		t.Errorf("%d queued jobs ran after Stop", ran.Load())
	}
}

func TestSafeCounter(t *testing.T) {
	c := NewSafeCounter()
	pool := NewWorkerPool(4)
	pool.Start()
	defer pool.Stop()

	for i := 0; i < 64; i++ {
		_ = pool.Submit(func() { c.Increment() })
	}
	pool.Wait()

	if c.Get() != 64 {
		t.Errorf("counter = %d, want 64", c.Get())
	}
	if got := c.Add(-4); got != 60 {
		t.Errorf("Add returned %d, want 60", got)
	}
}
