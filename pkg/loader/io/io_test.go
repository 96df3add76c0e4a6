package io

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lattice-kg/lattice/pkg/graph"
)

const testDocument = `{
	"entities": [
		{"id": "python", "name": "Python", "type": "Language"},
		{"id": "tensorflow", "name": "TensorFlow", "type": "Framework"}
	],
	"relationships": [
		{"id": "rel1", "source": "tensorflow", "target": "python", "type": "WRITTEN_IN"}
	]
}`

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGraphName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"tech.json", "tech"},
		{"/data/graphs/tech.json", "tech"},
		{"graphs/nested.dir/science.json", "science"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		if got := GraphName(tt.path); got != tt.want {
			t.Errorf("GraphName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFileGraphSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tech.json", testDocument)

	source := NewFileGraphSource("", path)
	loaded, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(loaded) != 1 {
		t.Fatalf("loaded %d graphs, want 1", len(loaded))
	}
	if loaded[0].Name != "tech" {
		t.Errorf("graph name = %q, want %q", loaded[0].Name, "tech")
	}
	if got := loaded[0].Graph.EntityCount(); got != 2 {
		t.Errorf("entity count = %d, want 2", got)
	}
}

func TestFileGraphSourceExplicitName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "export-2024.json", testDocument)

	source := NewFileGraphSource("technology", path)
	loaded, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded[0].Name != "technology" {
		t.Errorf("graph name = %q, want %q", loaded[0].Name, "technology")
	}
}

func TestFileGraphSourceMissingFile(t *testing.T) {
	source := NewFileGraphSource("", filepath.Join(t.TempDir(), "missing.json"))

	_, err := source.Load(context.Background())
	var loadErr *graph.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *graph.LoadError, got %T: %v", err, err)
	}
}

func TestDirGraphSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "beta.json", testDocument)
	writeFile(t, dir, "alpha.json", testDocument)
	writeFile(t, dir, "notes.txt", "not a graph")

	source := NewDirGraphSource(dir, 2)
	loaded, err := source.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("loaded %d graphs, want 2", len(loaded))
	}
	// results are sorted by name regardless of load order
	if loaded[0].Name != "alpha" || loaded[1].Name != "beta" {
		t.Errorf("graph names = [%q, %q], want [alpha, beta]", loaded[0].Name, loaded[1].Name)
	}
}

func TestDirGraphSourceFailsAtomically(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", testDocument)
	writeFile(t, dir, "bad.json", `{"entities": [`)

	source := NewDirGraphSource(dir, 2)
	loaded, err := source.Load(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if loaded != nil {
		t.Errorf("expected no graphs on failure, got %d", len(loaded))
	}
}

func TestDirGraphSourceEmptyDir(t *testing.T) {
	source := NewDirGraphSource(t.TempDir(), 2)

	_, err := source.Load(context.Background())
	var loadErr *graph.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *graph.LoadError, got %T: %v", err, err)
	}
}
