package graph

import (
	"errors"
	"testing"
)

func TestEntityContext(t *testing.T) {
	g := testGraph(t)

	ctx, err := g.EntityContext("machine_learning")
	if err != nil {
		t.Fatalf("EntityContext() error = %v", err)
	}

	if ctx.Entity.Name != "MachineLearning" {
		t.Errorf("Entity.Name = %s, want MachineLearning", ctx.Entity.Name)
	}

	if len(ctx.Outgoing) != 1 {
		t.Fatalf("len(Outgoing) = %d, want 1", len(ctx.Outgoing))
	}
	if ctx.Outgoing[0].Relationship.Type != "USES" {
		t.Errorf("Outgoing[0].Relationship.Type = %s, want USES", ctx.Outgoing[0].Relationship.Type)
	}
	if ctx.Outgoing[0].Entity.ID != "tensorflow" {
		t.Errorf("Outgoing[0].Entity.ID = %s, want tensorflow", ctx.Outgoing[0].Entity.ID)
	}

	if len(ctx.Incoming) != 1 {
		t.Fatalf("len(Incoming) = %d, want 1", len(ctx.Incoming))
	}
	if ctx.Incoming[0].Relationship.Type != "USED_IN" {
		t.Errorf("Incoming[0].Relationship.Type = %s, want USED_IN", ctx.Incoming[0].Relationship.Type)
	}
	if ctx.Incoming[0].Entity.ID != "python" {
		t.Errorf("Incoming[0].Entity.ID = %s, want python", ctx.Incoming[0].Entity.ID)
	}
}

func TestEntityContextLeafAndMissing(t *testing.T) {
	g := testGraph(t)

	ctx, err := g.EntityContext("python")
	if err != nil {
		t.Fatalf("EntityContext() error = %v", err)
	}
	if len(ctx.Outgoing) != 1 || ctx.Outgoing[0].Entity.ID != "machine_learning" {
		t.Errorf("python outgoing = %v, want single USED_IN to machine_learning", ctx.Outgoing)
	}
	if len(ctx.Incoming) != 0 {
		t.Errorf("len(python Incoming) = %d, want 0", len(ctx.Incoming))
	}

	if _, err := g.EntityContext("golang"); !errors.Is(err, ErrNotFound) {
		t.Errorf("EntityContext(missing) error = %v, want ErrNotFound", err)
	}
}
