package orderaction

import (
	"context"
	"sync"
)

// OrderLocks serializes actions per order ID. One value is shared by the
// coordinator and the launcher so cancel, refund and pay on the same order
// never interleave.
type OrderLocks struct {
	mu    sync.Mutex
	locks map[int64]*orderLock
}

type orderLock struct {
	sem  chan struct{}
	refs int
}

// NewOrderLocks creates an empty lock set.
func NewOrderLocks() *OrderLocks {
	return &OrderLocks{locks: make(map[int64]*orderLock)}
}

// Acquire blocks until the order's lock is held or ctx is done.
// The returned release func must be called exactly once.
func (l *OrderLocks) Acquire(ctx context.Context, orderID int64) (func(), error) {
	l.mu.Lock()
	lock, ok := l.locks[orderID]
	if !ok {
		lock = &orderLock{sem: make(chan struct{}, 1)}
		l.locks[orderID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.sem <- struct{}{}:
	case <-ctx.Done():
		l.drop(orderID, lock)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lock.sem
			l.drop(orderID, lock)
		})
	}, nil
}

// drop forgets the lock once nobody holds or waits for it.
func (l *OrderLocks) drop(orderID int64, lock *orderLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, orderID)
	}
}

// size returns the number of tracked orders.
func (l *OrderLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
