package testutil

import (
	"fmt"
	"sync"
	"time"
)

// StubClock is a genfs.Clock that never moves on its own, so every version
// committed through it carries the same CreatedAt and snapshot pushes get a
// predictable version number.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock is the clock NewTestService wires in: 2024-01-15 10:30:00 UTC.
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// StubIDGenerator is a genfs.IDGenerator handing out "id-1", "id-2", ... in
// call order. One Write consumes an id for the version and, on first write,
// one for the file.
type StubIDGenerator struct {
	mu   sync.Mutex
	next int
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}
