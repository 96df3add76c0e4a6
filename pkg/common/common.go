package common

// GraphDocument is the wire shape of a graph source: two flat arrays of
// entities and relationships. It is the only ingestion format the engine
// understands; a document is validated and turned into an immutable
// graph.Graph before any query touches it.
//
// A document contains:
//   - Entities: nodes representing concepts, technologies, organizations, etc.
//   - Relationships: directed, typed edges between two entities
type GraphDocument struct {
	Entities      []Entity       `json:"entities" validate:"required,dive"`
	Relationships []Relationship `json:"relationships" validate:"dive"`
}

// Entity represents a node in the knowledge graph. Each entity carries a
// stable string id, a display name used in matching, a free-form type tag,
// and a flat string-to-string property map.
type Entity struct {
	ID         string            `json:"id" validate:"required"`
	Name       string            `json:"name" validate:"required"`
	Type       string            `json:"type" validate:"required"`
	Properties map[string]string `json:"properties"`
}

// Relationship represents a directed edge between two entities. Source and
// Target are entity ids and must resolve against the document's entity set.
//
// Properties may carry a "strength" qualifier ("primary"/"supporting") and a
// "description"; both are informational and rendered by the formatter, never
// used for scoring or traversal order.
type Relationship struct {
	ID         string            `json:"id" validate:"required"`
	Source     string            `json:"source" validate:"required"`
	Target     string            `json:"target" validate:"required"`
	Type       string            `json:"type" validate:"required"`
	Properties map[string]string `json:"properties"`
}

// Strength returns the relationship's "strength" property, or "" if unset.
func (r Relationship) Strength() string {
	return r.Properties["strength"]
}

// Description returns the relationship's "description" property, or "" if unset.
func (r Relationship) Description() string {
	return r.Properties["description"]
}
