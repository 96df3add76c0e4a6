package graph

import (
	"sort"

	"github.com/lattice-kg/lattice/pkg/common"
)

// TraversalStep is one visited entity in a traversal: the entity, the depth
// at which it was first discovered, and the relationship used to reach it.
// Via is nil for the seed.
type TraversalStep struct {
	Entity common.Entity        `json:"entity"`
	Depth  int                  `json:"depth"`
	Via    *common.Relationship `json:"via,omitempty"`
}

// Traverse walks the graph breadth-first from the seed entity up to maxDepth
// hops. Both outgoing and incoming relationships are traversable (the graph
// is treated as undirected for reachability; direction is preserved in the
// returned relationship). A visited set guarantees each entity appears once,
// at its first-discovered depth — BFS on an unweighted graph cannot find a
// shorter path later.
//
// If typeFilter is non-empty, only relationships whose type is in the set
// are followed. maxDepth 0 returns only the seed; a negative maxDepth is
// rejected with ErrInvalidArgument, an absent seed with ErrNotFound.
//
// Expansion order is deterministic: at each entity, incident relationships
// are considered in ascending relationship-id order, so two runs over the
// same graph with the same arguments produce identical sequences.
func (g *Graph) Traverse(seedID string, maxDepth int, typeFilter map[string]struct{}) ([]TraversalStep, error) {
	if maxDepth < 0 {
		return nil, ErrInvalidArgument
	}
	seed, ok := g.entities[seedID]
	if !ok {
		return nil, ErrNotFound
	}

	results := []TraversalStep{{Entity: seed, Depth: 0}}
	visited := map[string]struct{}{seedID: {}}

	type frontierItem struct {
		id    string
		depth int
	}
	// Explicit FIFO frontier; depth is small and bounded, and the queue
	// keeps expansion order under our control.
	queue := []frontierItem{{id: seedID, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= maxDepth {
			continue
		}

		for _, relID := range g.incident(cur.id) {
			rel := g.relationships[relID]
			if typeFilter != nil {
				if _, ok := typeFilter[rel.Type]; !ok {
					continue
				}
			}

			neighborID := rel.Target
			if neighborID == cur.id {
				neighborID = rel.Source
			}
			if _, seen := visited[neighborID]; seen {
				continue
			}
			visited[neighborID] = struct{}{}

			via := rel
			results = append(results, TraversalStep{
				Entity: g.entities[neighborID],
				Depth:  cur.depth + 1,
				Via:    &via,
			})
			queue = append(queue, frontierItem{id: neighborID, depth: cur.depth + 1})
		}
	}

	return results, nil
}

// incident merges an entity's outgoing and incoming relationship ids into a
// single ascending list. A self-loop appears in both adjacency lists and is
// deduplicated here.
func (g *Graph) incident(id string) []string {
	out := g.outgoing[id]
	in := g.incoming[id]
	ids := make([]string, 0, len(out)+len(in))
	ids = append(ids, out...)
	for _, relID := range in {
		rel := g.relationships[relID]
		if rel.Source == rel.Target {
			continue
		}
		ids = append(ids, relID)
	}
	sort.Strings(ids)
	return ids
}

// TypeFilter builds the relationship-type set Traverse expects. A nil return
// (no types given) means no filtering.
func TypeFilter(types ...string) map[string]struct{} {
	if len(types) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}
