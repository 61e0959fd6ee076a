package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker is an in-process Locker for tests and single-node runs.
// The TTL is ignored; locks are held until released.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMemoryLocker creates a new in-memory locker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*sync.Mutex)}
}

// Acquire blocks until the lock for key is held or ctx is cancelled
func (l *MemoryLocker) Acquire(ctx context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	acquired := make(chan struct{})
	go func() {
		m.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
		var once sync.Once
		return func() { once.Do(m.Unlock) }, nil
	case <-ctx.Done():
		// The goroutine may still grab the mutex later; hand it back then
		go func() {
			<-acquired
			m.Unlock()
		}()
		return nil, ctx.Err()
	}
}
