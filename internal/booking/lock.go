package booking

import "sync"

// PlaceLocker serializes reservation attempts per place.  It hands
// out one mutex per place identifier, created lazily on first use
// and retained for the lifetime of the process.  Entries are never
// evicted; place cardinality is bounded, so the map stays small.
//
// The locker is an injected dependency of the Scheduler rather than
// package-level state, which keeps tests isolated.  It provides
// mutual exclusion within a single process only; a multi-node
// deployment would need a database-enforced exclusion constraint
// instead.
type PlaceLocker struct {
    mu    sync.Mutex
    locks map[uint64]*sync.Mutex
}

// NewPlaceLocker returns an empty locker.
func NewPlaceLocker() *PlaceLocker {
    return &PlaceLocker{locks: make(map[uint64]*sync.Mutex)}
}

// Acquire blocks until the lock for the given place is held and
// returns the release function.  Callers must release on every exit
// path, typically via defer.  Attempts on different places never
// contend with each other.
func (l *PlaceLocker) Acquire(placeID uint64) (release func()) {
    l.mu.Lock()
    m, ok := l.locks[placeID]
    if !ok {
        m = &sync.Mutex{}
        l.locks[placeID] = m
    }
    l.mu.Unlock()

    m.Lock()
    return m.Unlock
}
