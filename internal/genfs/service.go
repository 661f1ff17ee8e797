package genfs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"genfs/internal/lock"
)

const (
	DefaultLockTimeout    = 5 * time.Second
	DefaultImpactMaxNodes = 100
)

// Options tunes a Service. Zero values select the defaults.
type Options struct {
	// LockTimeout bounds how long a write waits for its path lock.
	LockTimeout time.Duration

	// ImpactMaxNodes caps the number of files returned by FindImpacted.
	ImpactMaxNodes int

	// Locks lets several services in one process share path locks.
	// A private KeyedMutex is created when nil.
	Locks *lock.KeyedMutex
}

// Service is the orchestration layer over the version store and the
// reference graph. It is safe for concurrent use.
type Service struct {
	database Database
	refs     ReferenceGraph
	locks    *lock.KeyedMutex
	logger   Logger
	clock    Clock
	idgen    IDGenerator

	lockTimeout    time.Duration
	impactMaxNodes int
}

// NewService creates a Service. refs may be nil, in which case impact
// analysis always returns an empty set.
func NewService(database Database, refs ReferenceGraph, logger Logger, clock Clock, idgen IDGenerator, opts Options) *Service {
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if idgen == nil {
		idgen = UUIDGenerator{}
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = DefaultLockTimeout
	}
	if opts.ImpactMaxNodes <= 0 {
		opts.ImpactMaxNodes = DefaultImpactMaxNodes
	}
	if opts.Locks == nil {
		opts.Locks = lock.New()
	}

	return &Service{
		database:       database,
		refs:           refs,
		locks:          opts.Locks,
		logger:         logger,
		clock:          clock,
		idgen:          idgen,
		lockTimeout:    opts.LockTimeout,
		impactMaxNodes: opts.ImpactMaxNodes,
	}
}

// lockPaths acquires the path locks of appID for every path, bounded by the
// configured timeout.
func (s *Service) lockPaths(ctx context.Context, appID string, paths ...string) (func(), error) {
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = lock.Key(appID, p)
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	unlock, err := s.locks.LockAll(lockCtx, keys...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("waiting for path lock: %w", ctx.Err())
		}
		if errors.Is(err, lock.ErrTimeout) {
			return nil, fmt.Errorf("%w: %v", ErrLockTimeout, err)
		}
		return nil, fmt.Errorf("acquiring path lock: %w", err)
	}
	return unlock, nil
}
