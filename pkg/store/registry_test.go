package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/lattice-kg/lattice/pkg/common"
	"github.com/lattice-kg/lattice/pkg/graph"
	"github.com/lattice-kg/lattice/pkg/loader"
)

func buildGraph(t *testing.T, entityIDs ...string) *graph.Graph {
	t.Helper()

	entities := make([]common.Entity, 0, len(entityIDs))
	for _, id := range entityIDs {
		entities = append(entities, common.Entity{ID: id, Name: id, Type: "Concept"})
	}
	g, err := graph.Load(entities, nil)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// stubSource returns a fixed set of graphs, or an error when failWith is
// set. loads counts how often Load was called.
type stubSource struct {
	graphs   []loader.LoadedGraph
	failWith error
	loads    int
}

func (s *stubSource) Load(ctx context.Context) ([]loader.LoadedGraph, error) {
	s.loads++
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.graphs, nil
}

func TestRegistryReloadAndLookup(t *testing.T) {
	ctx := context.Background()

	source := &stubSource{graphs: []loader.LoadedGraph{
		{Name: "tech", Graph: buildGraph(t, "python")},
		{Name: "science", Graph: buildGraph(t, "physics")},
	}}

	registry := NewRegistry(source)
	if err := registry.Reload(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := registry.Names(); !reflect.DeepEqual(got, []string{"science", "tech"}) {
		t.Errorf("Names() = %v, want [science tech]", got)
	}

	g, err := registry.Graph("tech")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.Entity("python"); err != nil {
		t.Errorf("expected python in tech graph: %v", err)
	}

	_, err = registry.Graph("unknown")
	if !errors.Is(err, ErrUnknownGraph) {
		t.Errorf("expected ErrUnknownGraph, got %v", err)
	}
}

func TestRegistryFailedReloadKeepsCurrentGraphs(t *testing.T) {
	ctx := context.Background()

	source := &stubSource{graphs: []loader.LoadedGraph{
		{Name: "tech", Graph: buildGraph(t, "python")},
	}}
	registry := NewRegistry(source)
	if err := registry.Reload(ctx); err != nil {
		t.Fatal(err)
	}

	source.failWith = &graph.LoadError{Reason: "source unavailable"}
	if err := registry.Reload(ctx); err == nil {
		t.Fatal("expected reload error, got nil")
	}

	// the previous graph is still served
	g, err := registry.Graph("tech")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.Entity("python"); err != nil {
		t.Errorf("expected python to remain: %v", err)
	}
}

func TestRegistryReloadSwapsAndRemoves(t *testing.T) {
	ctx := context.Background()

	source := &stubSource{graphs: []loader.LoadedGraph{
		{Name: "tech", Graph: buildGraph(t, "python")},
		{Name: "legacy", Graph: buildGraph(t, "cobol")},
	}}
	registry := NewRegistry(source)
	if err := registry.Reload(ctx); err != nil {
		t.Fatal(err)
	}

	source.graphs = []loader.LoadedGraph{
		{Name: "tech", Graph: buildGraph(t, "python", "rust")},
	}
	if err := registry.Reload(ctx); err != nil {
		t.Fatal(err)
	}

	if got := registry.Names(); !reflect.DeepEqual(got, []string{"tech"}) {
		t.Errorf("Names() = %v, want [tech]", got)
	}

	g, err := registry.Graph("tech")
	if err != nil {
		t.Fatal(err)
	}
	if got := g.EntityCount(); got != 2 {
		t.Errorf("entity count after reload = %d, want 2", got)
	}

	if _, err := registry.Graph("legacy"); !errors.Is(err, ErrUnknownGraph) {
		t.Errorf("expected legacy to be removed, got %v", err)
	}
}

func TestRegistryDuplicateNameAcrossSources(t *testing.T) {
	ctx := context.Background()

	first := &stubSource{graphs: []loader.LoadedGraph{
		{Name: "tech", Graph: buildGraph(t, "python")},
	}}
	second := &stubSource{graphs: []loader.LoadedGraph{
		{Name: "tech", Graph: buildGraph(t, "rust")},
	}}

	registry := NewRegistry(first, second)
	err := registry.Reload(ctx)

	var loadErr *graph.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *graph.LoadError, got %T: %v", err, err)
	}
}

func TestRegistryConcurrentReads(t *testing.T) {
	ctx := context.Background()

	source := &stubSource{graphs: []loader.LoadedGraph{
		{Name: "tech", Graph: buildGraph(t, "python")},
	}}
	registry := NewRegistry(source)
	if err := registry.Reload(ctx); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 50 {
			source.graphs = []loader.LoadedGraph{
				{Name: "tech", Graph: buildGraph(t, "python", "go")},
			}
			if err := registry.Reload(ctx); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	for range 500 {
		g, err := registry.Graph("tech")
		if err != nil {
			t.Fatal(err)
		}
		if g.EntityCount() == 0 {
			t.Fatal("observed empty graph during reload")
		}
	}
	<-done
}
