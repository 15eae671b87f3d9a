package utils

import (
	"sync"
	"time"
)

// WorkerPool runs jobs with bounded concurrency. Used when seasons are
// scraped in parallel, one browser session per worker.
type WorkerPool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool with the given concurrency.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{semaphore: make(chan struct{}, maxWorkers)}
}

// Submit enqueues a job for execution in the pool.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// RateGate enforces a minimum interval between consecutive page loads so
// the remote server is never hit faster than the configured pace.
type RateGate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewRateGate creates a RateGate with the given minimum interval.
func NewRateGate(interval time.Duration) *RateGate {
	return &RateGate{interval: interval}
}

// Wait blocks until at least the configured interval has passed since the
// previous call, then records the new load time.
func (g *RateGate) Wait() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.last.IsZero() {
		if elapsed := time.Since(g.last); elapsed < g.interval {
			time.Sleep(g.interval - elapsed)
		}
	}
	g.last = time.Now()
}

// VisitedSet is a thread-safe set for tracking visited match-day ids and
// already-seen match keys.
type VisitedSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[string]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *VisitedSet) Add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Contains returns true if the key has already been recorded.
func (s *VisitedSet) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[key]
	return exists
}

// Size returns the number of unique keys tracked.
func (s *VisitedSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
