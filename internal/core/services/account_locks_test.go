package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccountLocks_SerializesSameAccount(t *testing.T) {
	locks := NewAccountLocks()
	var (
		wg      sync.WaitGroup
		active  int
		maxSeen int
		mu      sync.Mutex
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("acc-1")
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, locks.size())
}

func TestAccountLocks_IndependentAccounts(t *testing.T) {
	locks := NewAccountLocks()

	unlockA := locks.Lock("a")
	unlockB := locks.Lock("b") // Must not block on "a"
	assert.Equal(t, 2, locks.size())

	unlockA()
	unlockB()
	assert.Equal(t, 0, locks.size())
}

func TestAccountLocks_AcquireIsReentrantThroughContext(t *testing.T) {
	locks := NewAccountLocks()

	held, unlock := locks.Acquire(context.Background(), "acc-1")
	defer unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, release := locks.Acquire(held, "acc-1")
		release()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("nested acquire blocked on the held account")
	}
}

func TestAccountLocks_AcquireSerializesNestedWork(t *testing.T) {
	locks := NewAccountLocks()
	held, unlock := locks.Acquire(context.Background(), "acc-1")
	defer unlock()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, release := locks.Acquire(held, "acc-1")
			defer release()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestAccountLocks_AcquireBlocksOtherOperations(t *testing.T) {
	locks := NewAccountLocks()
	_, unlock := locks.Acquire(context.Background(), "acc-1")

	acquired := make(chan struct{})
	go func() {
		_, release := locks.Acquire(context.Background(), "acc-1")
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("independent operation acquired a held account")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("account was not released")
	}
}
