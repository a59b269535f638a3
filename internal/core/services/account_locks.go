package services

import (
	"context"
	"sync"
)

// AccountLocks serializes work per account id within this process. One
// instance is shared by every service that reads and then writes an account.
// Entries are dropped once no goroutine holds or waits for them.
type AccountLocks struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	sync.Mutex
	refs int
}

// heldAccount marks, in a context, an account locked by an enclosing operation.
type heldAccount string

func NewAccountLocks() *AccountLocks {
	return &AccountLocks{locks: make(map[string]*accountLock)}
}

// Acquire locks accountID for an operation and returns a context marking it
// held. Work started from that context, such as the subscribers reached from the
// operation's publish, does not wait for the account again: it takes a mutex
// scoped to the holder, so those calls still run one at a time.
func (l *AccountLocks) Acquire(ctx context.Context, accountID string) (context.Context, func()) {
	if scope, ok := ctx.Value(heldAccount(accountID)).(*sync.Mutex); ok {
		scope.Lock()
		return ctx, scope.Unlock
	}
	unlock := l.Lock(accountID)
	return context.WithValue(ctx, heldAccount(accountID), &sync.Mutex{}), unlock
}

// Lock blocks until the account is free and returns the matching unlock.
func (l *AccountLocks) Lock(accountID string) (unlock func()) {
	l.mu.Lock()
	lock, ok := l.locks[accountID]
	if !ok {
		lock = &accountLock{}
		l.locks[accountID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.Lock()
	return func() {
		lock.Unlock()
		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, accountID)
		}
		l.mu.Unlock()
	}
}

func (l *AccountLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
