package service

import "sync"

// InvestmentLocks serializes mutations per investment. The sell-quantity check
// in CreateTransaction is check-then-act over the stored history, and cascade
// deletion must not interleave with it; holding the investment's lock across
// the whole operation keeps both atomic with respect to each other.
//
// Locks are created on first use and kept for the life of the process; the
// set of investments is small enough that they are never reclaimed.
type InvestmentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewInvestmentLocks creates an empty lock table.
func NewInvestmentLocks() *InvestmentLocks {
	return &InvestmentLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the lock for the given investment ID and returns the matching
// unlock function.
func (l *InvestmentLocks) Lock(investmentID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[investmentID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[investmentID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
