package service

import "sync"

// LockMap hands out one mutex per event id so check-then-act sequences on a
// single event (capacity check + roster append, purchase + payment creation)
// are atomic, while different events stay independent.  Registration and
// ticketing services must share one LockMap.
type LockMap struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLockMap returns an empty lock map.
func NewLockMap() *LockMap {
	return &LockMap{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for an id and returns its unlock function.
// Entries are never removed; the set of event ids is small and bounded by
// the event collection.
func (l *LockMap) Lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
