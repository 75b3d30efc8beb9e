package application

import "sync"

// UserLocker hands out one mutex per user id so that read-validate-write
// cycles on a user's ledger never interleave.
type UserLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUserLocker() *UserLocker {
	return &UserLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until userID's mutex is held and returns its unlock func.
func (l *UserLocker) Lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
