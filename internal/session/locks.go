package session

import "sync"

// Locks is a keyed mutex registry that serializes event handling per
// chat id. Holding a user's lock for the whole of one event's handling
// keeps same-user events in arrival order and guarantees at most one
// voice-evaluation pipeline in flight per user; different users never
// contend.
//
// Entries are never released. The map is bounded by the number of
// distinct users seen since startup, a few dozen bytes each.
type Locks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewLocks creates an empty lock registry.
func NewLocks() *Locks {
	return &Locks{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for a chat id, creating it on first use.
func (l *Locks) Lock(chatID int64) {
	l.mu.Lock()
	m, ok := l.locks[chatID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[chatID] = m
	}
	l.mu.Unlock()

	m.Lock()
}

// Unlock releases the mutex for a chat id. It must have been locked.
func (l *Locks) Unlock(chatID int64) {
	l.mu.Lock()
	m := l.locks[chatID]
	l.mu.Unlock()

	m.Unlock()
}
