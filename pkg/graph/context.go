package graph

import (
	"github.com/lattice-kg/lattice/pkg/common"
)

// Neighbor pairs a relationship with the entity on its far end: the target
// entity for an outgoing relationship, the source entity for an incoming one.
type Neighbor struct {
	Relationship common.Relationship `json:"relationship"`
	Entity       common.Entity       `json:"entity"`
}

// EntityContext is the one-hop neighborhood of a single entity: the entity
// itself plus its outgoing and incoming relationships with the referenced
// entities resolved. It is built fresh per call and owned by the caller;
// deeper expansion is Traverse's job.
type EntityContext struct {
	Entity   common.Entity `json:"entity"`
	Outgoing []Neighbor    `json:"outgoing"`
	Incoming []Neighbor    `json:"incoming"`
}

// EntityContext resolves the entity and gathers its immediate neighborhood.
// Relationships appear in ascending relationship-id order on both sides.
// Returns ErrNotFound if the entity id is absent.
func (g *Graph) EntityContext(id string) (*EntityContext, error) {
	entity, ok := g.entities[id]
	if !ok {
		return nil, ErrNotFound
	}

	ec := &EntityContext{
		Entity:   entity,
		Outgoing: make([]Neighbor, 0, len(g.outgoing[id])),
		Incoming: make([]Neighbor, 0, len(g.incoming[id])),
	}

	for _, relID := range g.outgoing[id] {
		rel := g.relationships[relID]
		ec.Outgoing = append(ec.Outgoing, Neighbor{
			Relationship: rel,
			Entity:       g.entities[rel.Target],
		})
	}
	for _, relID := range g.incoming[id] {
		rel := g.relationships[relID]
		ec.Incoming = append(ec.Incoming, Neighbor{
			Relationship: rel,
			Entity:       g.entities[rel.Source],
		})
	}

	return ec, nil
}
