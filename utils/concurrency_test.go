package utils

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestVisitedSetAdd(t *testing.T) {
	s := NewVisitedSet()

	if !s.Add("2024-2025_2024-09-21") {
		t.Error("first Add should report a new key")
	}
	if s.Add("2024-2025_2024-09-21") {
		t.Error("second Add of the same key should report a duplicate")
	}
	if !s.Contains("2024-2025_2024-09-21") {
		t.Error("Contains should find the added key")
	}
	if s.Size() != 1 {
		t.Errorf("Size = %d; want 1", s.Size())
	}
}

func TestVisitedSetConcurrentAdd(t *testing.T) {
	s := NewVisitedSet()
	var added int64
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Add("same-key") {
				atomic.AddInt64(&added, 1)
			}
		}()
	}
	wg.Wait()

	if added != 1 {
		t.Errorf("%d goroutines claimed the key; want exactly 1", added)
	}
}

func TestRateGateEnforcesMinimumInterval(t *testing.T) {
	gate := NewRateGate(50 * time.Millisecond)

	start := time.Now()
	gate.Wait()
	gate.Wait()
	gate.Wait()
	elapsed := time.Since(start)

	// Three loads → at least two full intervals between them.
	if elapsed < 100*time.Millisecond {
		t.Errorf("3 gated calls took %v; want >= 100ms", elapsed)
	}
}

func TestRateGateFirstCallDoesNotBlock(t *testing.T) {
	gate := NewRateGate(time.Second)

	start := time.Now()
	gate.Wait()
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first call blocked for %v", elapsed)
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	pool := NewWorkerPool(2)

	var current, peak int64
	for i := 0; i < 10; i++ {
		pool.Submit(func() {
			n := atomic.AddInt64(&current, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt64(&current, -1)
		})
	}
	pool.Wait()

	if peak > 2 {
		t.Errorf("peak concurrency = %d; want <= 2", peak)
	}
}

func TestWorkerPoolWaitRunsEverything(t *testing.T) {
	pool := NewWorkerPool(3)

	var done int64
	for i := 0; i < 20; i++ {
		pool.Submit(func() { atomic.AddInt64(&done, 1) })
	}
	pool.Wait()

	if done != 20 {
		t.Errorf("done = %d; want 20", done)
	}
}
