package testutil

import (
	"context"
	"sync"

	"genfs/internal/model"
)

// MemoryReferenceGraph is an in-memory genfs.ReferenceGraph. Edges need not
// point at existing files, which makes arbitrary graph shapes easy to build.
type MemoryReferenceGraph struct {
	mu    sync.Mutex
	edges []model.FileReference
	calls int
}

func NewMemoryReferenceGraph() *MemoryReferenceGraph {
	return &MemoryReferenceGraph{}
}

// Link adds src -> dest edges for every dest.
func (g *MemoryReferenceGraph) Link(appID, src string, dests ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, d := range dests {
		g.edges = append(g.edges, model.FileReference{AppID: appID, SrcFileID: src, DestFileID: d})
	}
}

// Calls reports how many times FindReferencingFileIDs was called.
func (g *MemoryReferenceGraph) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *MemoryReferenceGraph) FindReferencingFileIDs(_ context.Context, appID, destFileID string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++

	seen := map[string]bool{}
	ids := []string{}
	for _, e := range g.edges {
		if e.AppID == appID && e.DestFileID == destFileID && !seen[e.SrcFileID] {
			seen[e.SrcFileID] = true
			ids = append(ids, e.SrcFileID)
		}
	}
	return ids, nil
}

func (g *MemoryReferenceGraph) AddReference(_ context.Context, ref *model.FileReference) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges = append(g.edges, *ref)
	return nil
}

func (g *MemoryReferenceGraph) RemoveReference(_ context.Context, appID, srcFileID, destFileID string) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var n int64
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.AppID == appID && e.SrcFileID == srcFileID && e.DestFileID == destFileID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
	return n, nil
}
