// Package lock provides a keyed mutex: holders of the same key exclude each
// other, holders of different keys never wait on one another.
package lock

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

// ErrTimeout is returned when a key could not be acquired before the
// context was done.
var ErrTimeout = errors.New("lock acquisition timed out")

const stripeCount = 64

// KeyedMutex hands out exclusive locks per string key. Entries are created on
// first use and dropped once the last waiter releases, so memory is bounded
// by the number of keys currently held or awaited.
type KeyedMutex struct {
	stripes [stripeCount]stripe
}

type stripe struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// entry is a one-slot semaphore plus the number of goroutines holding or
// waiting for it.
type entry struct {
	sem  chan struct{}
	refs int
}

// New creates an empty KeyedMutex.
func New() *KeyedMutex {
	k := &KeyedMutex{}
	for i := range k.stripes {
		k.stripes[i].entries = make(map[string]*entry)
	}
	return k
}

// Key joins parts into a single lock key. Parts are separated by NUL so
// ("a/b", "c") and ("a", "b/c") never collide.
func Key(parts ...string) string {
	return strings.Join(parts, "\x00")
}

// Lock blocks until key is held or ctx is done. On success the returned
// function releases the lock; it must be called exactly once.
func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	s := k.stripeFor(key)
	e := s.acquireRef(key)

	select {
	case e.sem <- struct{}{}:
		return func() {
			<-e.sem
			s.releaseRef(key, e)
		}, nil
	case <-ctx.Done():
		s.releaseRef(key, e)
		return nil, fmt.Errorf("%w: %s: %v", ErrTimeout, displayKey(key), ctx.Err())
	}
}

// LockAll acquires every key in sorted order, so two callers locking
// overlapping sets cannot deadlock. Duplicate keys are locked once.
func (k *KeyedMutex) LockAll(ctx context.Context, keys ...string) (func(), error) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	unlocks := make([]func(), 0, len(sorted))
	unlockAll := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}

	for _, key := range sorted {
		unlock, err := k.Lock(ctx, key)
		if err != nil {
			unlockAll()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return unlockAll, nil
}

// held reports the number of keys with live entries. Used by tests.
func (k *KeyedMutex) held() int {
	n := 0
	for i := range k.stripes {
		s := &k.stripes[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

func (k *KeyedMutex) stripeFor(key string) *stripe {
	return &k.stripes[xxh3.HashString(key)%stripeCount]
}

func (s *stripe) acquireRef(key string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		s.entries[key] = e
	}
	e.refs++
	return e
}

func (s *stripe) releaseRef(key string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(s.entries, key)
	}
}

func displayKey(key string) string {
	return strings.ReplaceAll(key, "\x00", ":")
}
