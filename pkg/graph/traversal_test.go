package graph

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/lattice-kg/lattice/pkg/common"
)

func stepSummaries(steps []TraversalStep) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		via := "-"
		if s.Via != nil {
			via = s.Via.ID
		}
		out = append(out, fmt.Sprintf("%s@%d:%s", s.Entity.ID, s.Depth, via))
	}
	return out
}

func TestTraverse(t *testing.T) {
	g := testGraph(t)

	tests := []struct {
		name       string
		seed       string
		maxDepth   int
		typeFilter map[string]struct{}
		want       []string
	}{
		{
			name:     "depth zero returns only the seed",
			seed:     "python",
			maxDepth: 0,
			want:     []string{"python@0:-"},
		},
		{
			name:     "one hop",
			seed:     "python",
			maxDepth: 1,
			want:     []string{"python@0:-", "machine_learning@1:rel1"},
		},
		{
			name:     "two hops reach the whole chain",
			seed:     "python",
			maxDepth: 2,
			want:     []string{"python@0:-", "machine_learning@1:rel1", "tensorflow@2:rel2"},
		},
		{
			name:     "depth beyond the graph adds nothing",
			seed:     "python",
			maxDepth: 10,
			want:     []string{"python@0:-", "machine_learning@1:rel1", "tensorflow@2:rel2"},
		},
		{
			name:     "incoming edges are traversable",
			seed:     "tensorflow",
			maxDepth: 2,
			want:     []string{"tensorflow@0:-", "machine_learning@1:rel2", "python@2:rel1"},
		},
		{
			name:       "type filter restricts traversable edges",
			seed:       "python",
			maxDepth:   2,
			typeFilter: TypeFilter("USED_IN"),
			want:       []string{"python@0:-", "machine_learning@1:rel1"},
		},
		{
			name:       "type filter excluding all incident edges returns only the seed",
			seed:       "python",
			maxDepth:   2,
			typeFilter: TypeFilter("DEPENDS_ON"),
			want:       []string{"python@0:-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := g.Traverse(tt.seed, tt.maxDepth, tt.typeFilter)
			if err != nil {
				t.Fatalf("Traverse() error = %v", err)
			}
			if got := stepSummaries(steps); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Traverse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTraverseErrors(t *testing.T) {
	g := testGraph(t)

	if _, err := g.Traverse("python", -1, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Traverse(maxDepth=-1) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := g.Traverse("golang", 2, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Traverse(missing seed) error = %v, want ErrNotFound", err)
	}
}

func TestTraverseDepthBoundAndDedup(t *testing.T) {
	// Diamond with a cycle: a->b, a->c, b->d, c->d, d->a.
	entities := []common.Entity{
		{ID: "a", Name: "A", Type: "Node"},
		{ID: "b", Name: "B", Type: "Node"},
		{ID: "c", Name: "C", Type: "Node"},
		{ID: "d", Name: "D", Type: "Node"},
	}
	relationships := []common.Relationship{
		{ID: "r1", Source: "a", Target: "b", Type: "LINK"},
		{ID: "r2", Source: "a", Target: "c", Type: "LINK"},
		{ID: "r3", Source: "b", Target: "d", Type: "LINK"},
		{ID: "r4", Source: "c", Target: "d", Type: "LINK"},
		{ID: "r5", Source: "d", Target: "a", Type: "LINK"},
	}
	g, err := Load(entities, relationships)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for maxDepth := 0; maxDepth <= 3; maxDepth++ {
		steps, err := g.Traverse("a", maxDepth, nil)
		if err != nil {
			t.Fatalf("Traverse(maxDepth=%d) error = %v", maxDepth, err)
		}

		seen := make(map[string]bool)
		for _, s := range steps {
			if s.Depth > maxDepth {
				t.Errorf("maxDepth=%d: entity %s at depth %d exceeds bound", maxDepth, s.Entity.ID, s.Depth)
			}
			if seen[s.Entity.ID] {
				t.Errorf("maxDepth=%d: entity %s visited twice", maxDepth, s.Entity.ID)
			}
			seen[s.Entity.ID] = true
		}
	}

	// d is discovered at its shortest distance (depth 1, through the
	// incoming d->a edge) even though the diamond offers depth-2 paths.
	steps, err := g.Traverse("a", 2, nil)
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}
	want := []string{"a@0:-", "b@1:r1", "c@1:r2", "d@1:r5"}
	if got := stepSummaries(steps); !reflect.DeepEqual(got, want) {
		t.Errorf("Traverse() = %v, want %v", got, want)
	}
}

func TestTraverseDeterminism(t *testing.T) {
	g := testGraph(t)

	first, err := g.Traverse("python", 2, nil)
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := g.Traverse("python", 2, nil)
		if err != nil {
			t.Fatalf("Traverse() error = %v", err)
		}
		if !reflect.DeepEqual(stepSummaries(first), stepSummaries(again)) {
			t.Fatalf("Traverse() run %d differs from first run", i)
		}
	}
}
