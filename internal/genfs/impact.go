package genfs

import (
	"context"
	"fmt"
)

// FindImpacted returns the ids of files that transitively reference
// changedFileID, breadth-first, nearest first. The walk stops once the node
// budget is reached, so the result is a bounded subset on large graphs. Cycles
// are harmless and the changed file itself is never included.
func (s *Service) FindImpacted(ctx context.Context, appID, changedFileID string) ([]string, error) {
	impacted := []string{}
	if s.refs == nil {
		return impacted, nil
	}

	visited := map[string]bool{changedFileID: true}
	queue := []string{changedFileID}

	for len(queue) > 0 && len(impacted) < s.impactMaxNodes {
		if err := ctx.Err(); err != nil {
			return impacted, err
		}

		current := queue[0]
		queue = queue[1:]

		sources, err := s.refs.FindReferencingFileIDs(ctx, appID, current)
		if err != nil {
			return impacted, fmt.Errorf("finding references to %s: %w", current, err)
		}

		for _, src := range sources {
			if visited[src] {
				continue
			}
			visited[src] = true
			impacted = append(impacted, src)
			if len(impacted) >= s.impactMaxNodes {
				break
			}
			queue = append(queue, src)
		}
	}

	return impacted, nil
}
