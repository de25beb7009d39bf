package impl

import (
	"context"
	"slices"
	"sync"
)

// keyLocks serializes check-then-act sequences on business keys such as usernames and emails.
// Keys are acquired in sorted order so two callers locking overlapping sets cannot deadlock.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sem  chan struct{}
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*keyLock)}
}

func usernameKey(username string) string { return "username:" + username }

func emailKey(email string) string { return "email:" + email }

// Lock acquires every key and returns a function releasing them.
// It gives up with ctx.Err() when ctx is done first, releasing what it already holds.
func (k *keyLocks) Lock(ctx context.Context, keys ...string) (func(), error) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]string, 0, len(sorted))
	unlock := func() {
		for i := len(held) - 1; i >= 0; i-- {
			k.release(held[i])
		}
	}

	for _, key := range sorted {
		l := k.ref(key)
		select {
		case l.sem <- struct{}{}:
			held = append(held, key)
		case <-ctx.Done():
			k.unref(key)
			unlock()

			return nil, ctx.Err()
		}
	}

	return unlock, nil
}

func (k *keyLocks) ref(key string) *keyLock {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{sem: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++

	return l
}

func (k *keyLocks) unref(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	l := k.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

func (k *keyLocks) release(key string) {
	k.mu.Lock()
	l := k.locks[key]
	k.mu.Unlock()

	<-l.sem
	k.unref(key)
}
