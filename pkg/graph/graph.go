package graph

import (
	"sort"

	"github.com/lattice-kg/lattice/pkg/common"
)

// Graph is an immutable directed property graph with a derived adjacency
// index. Entities and relationships are held in id-keyed maps; for each
// entity the index records the ids of its outgoing and incoming
// relationships, sorted ascending so that every iteration over a
// neighborhood is deterministic.
//
// A Graph is never mutated after Load returns. Reloading data means
// constructing a new Graph and swapping the shared reference (see
// pkg/store), so concurrent readers need no locking.
//
// A Graph should be created using Load.
type Graph struct {
	entities      map[string]common.Entity
	relationships map[string]common.Relationship

	outgoing map[string][]string
	incoming map[string][]string

	entityIDs []string
}

// Load validates the given entities and relationships and builds an
// immutable graph plus its adjacency index. Every relationship's source and
// target must resolve to an entity and all ids must be unique; any violation
// fails the whole load with a *LoadError, never a partially built graph.
func Load(entities []common.Entity, relationships []common.Relationship) (*Graph, error) {
	g := &Graph{
		entities:      make(map[string]common.Entity, len(entities)),
		relationships: make(map[string]common.Relationship, len(relationships)),
		outgoing:      make(map[string][]string, len(entities)),
		incoming:      make(map[string][]string, len(entities)),
		entityIDs:     make([]string, 0, len(entities)),
	}

	for _, e := range entities {
		if e.ID == "" {
			return nil, loadErrorf("entity %q has no id", e.Name)
		}
		if _, ok := g.entities[e.ID]; ok {
			return nil, loadErrorf("duplicate entity id %q", e.ID)
		}
		g.entities[e.ID] = e
		g.entityIDs = append(g.entityIDs, e.ID)
	}
	sort.Strings(g.entityIDs)

	for _, r := range relationships {
		if r.ID == "" {
			return nil, loadErrorf("relationship %s->%s has no id", r.Source, r.Target)
		}
		if _, ok := g.relationships[r.ID]; ok {
			return nil, loadErrorf("duplicate relationship id %q", r.ID)
		}
		if _, ok := g.entities[r.Source]; !ok {
			return nil, loadErrorf("relationship %q references missing source entity %q", r.ID, r.Source)
		}
		if _, ok := g.entities[r.Target]; !ok {
			return nil, loadErrorf("relationship %q references missing target entity %q", r.ID, r.Target)
		}
		g.relationships[r.ID] = r
		g.outgoing[r.Source] = append(g.outgoing[r.Source], r.ID)
		g.incoming[r.Target] = append(g.incoming[r.Target], r.ID)
	}

	// Sorted adjacency lists make traversal and context assembly
	// deterministic across runs.
	for _, ids := range g.outgoing {
		sort.Strings(ids)
	}
	for _, ids := range g.incoming {
		sort.Strings(ids)
	}

	return g, nil
}

// Entity returns the entity with the given id, or ErrNotFound.
func (g *Graph) Entity(id string) (common.Entity, error) {
	e, ok := g.entities[id]
	if !ok {
		return common.Entity{}, ErrNotFound
	}
	return e, nil
}

// Relationship returns the relationship with the given id, or ErrNotFound.
func (g *Graph) Relationship(id string) (common.Relationship, error) {
	r, ok := g.relationships[id]
	if !ok {
		return common.Relationship{}, ErrNotFound
	}
	return r, nil
}

// Outgoing returns the relationships whose source is the given entity,
// ordered by relationship id. Returns ErrNotFound if the entity is absent;
// an entity without outgoing relationships yields an empty slice.
func (g *Graph) Outgoing(id string) ([]common.Relationship, error) {
	if _, ok := g.entities[id]; !ok {
		return nil, ErrNotFound
	}
	return g.resolve(g.outgoing[id]), nil
}

// Incoming returns the relationships whose target is the given entity,
// ordered by relationship id. Returns ErrNotFound if the entity is absent.
func (g *Graph) Incoming(id string) ([]common.Relationship, error) {
	if _, ok := g.entities[id]; !ok {
		return nil, ErrNotFound
	}
	return g.resolve(g.incoming[id]), nil
}

func (g *Graph) resolve(ids []string) []common.Relationship {
	rels := make([]common.Relationship, 0, len(ids))
	for _, id := range ids {
		rels = append(rels, g.relationships[id])
	}
	return rels
}

// EntityIDs returns all entity ids in ascending order.
func (g *Graph) EntityIDs() []string {
	ids := make([]string, len(g.entityIDs))
	copy(ids, g.entityIDs)
	return ids
}

// EntityCount returns the number of entities in the graph.
func (g *Graph) EntityCount() int {
	return len(g.entities)
}

// RelationshipCount returns the number of relationships in the graph.
func (g *Graph) RelationshipCount() int {
	return len(g.relationships)
}

// EntityTypes returns the distinct entity type tags in ascending order.
func (g *Graph) EntityTypes() []string {
	return distinctTypes(len(g.entities), func(yield func(string)) {
		for _, e := range g.entities {
			yield(e.Type)
		}
	})
}

// RelationshipTypes returns the distinct relationship type labels in
// ascending order.
func (g *Graph) RelationshipTypes() []string {
	return distinctTypes(len(g.relationships), func(yield func(string)) {
		for _, r := range g.relationships {
			yield(r.Type)
		}
	})
}

func distinctTypes(size int, each func(func(string))) []string {
	seen := make(map[string]struct{}, size)
	each(func(t string) {
		seen[t] = struct{}{}
	})
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
