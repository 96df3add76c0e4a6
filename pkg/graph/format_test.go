package graph

import (
	"strings"
	"testing"
)

func TestFormatContexts(t *testing.T) {
	g := testGraph(t)

	ctx, err := g.EntityContext("python")
	if err != nil {
		t.Fatalf("EntityContext() error = %v", err)
	}

	out, err := Formatter{}.FormatContexts([]*EntityContext{ctx})
	if err != nil {
		t.Fatalf("FormatContexts() error = %v", err)
	}

	wantLines := []string{
		"Knowledge Graph Information:",
		"Entity #1: Python (Language)",
		"    - creator: Guido van Rossum",
		"    - paradigm: multi-paradigm",
		"    - USED_IN -> MachineLearning (Field) [primary]",
		"      description: Python is the dominant language in ML",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("FormatContexts() output missing %q\ngot:\n%s", line, out)
		}
	}

	// Property keys render sorted.
	if strings.Index(out, "creator:") > strings.Index(out, "paradigm:") {
		t.Errorf("properties not sorted by key:\n%s", out)
	}
}

func TestFormatContextsPreservesInputOrder(t *testing.T) {
	g := testGraph(t)

	var contexts []*EntityContext
	for _, id := range []string{"tensorflow", "python"} {
		ctx, err := g.EntityContext(id)
		if err != nil {
			t.Fatalf("EntityContext(%s) error = %v", id, err)
		}
		contexts = append(contexts, ctx)
	}

	out, err := Formatter{}.FormatContexts(contexts)
	if err != nil {
		t.Fatalf("FormatContexts() error = %v", err)
	}

	if strings.Index(out, "Entity #1: TensorFlow") == -1 ||
		strings.Index(out, "Entity #2: Python") == -1 {
		t.Fatalf("FormatContexts() renumbered or reordered input:\n%s", out)
	}
	if strings.Index(out, "TensorFlow") > strings.Index(out, "Python") {
		t.Errorf("FormatContexts() reordered input:\n%s", out)
	}
}

func TestFormatContextsEmpty(t *testing.T) {
	out, err := Formatter{}.FormatContexts(nil)
	if err != nil {
		t.Fatalf("FormatContexts() error = %v", err)
	}
	if out != NoContextMessage {
		t.Errorf("FormatContexts(nil) = %q, want %q", out, NoContextMessage)
	}
}

func TestFormatTraversal(t *testing.T) {
	g := testGraph(t)

	steps, err := g.Traverse("python", 2, nil)
	if err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}

	out, err := Formatter{}.FormatTraversal(steps)
	if err != nil {
		t.Fatalf("FormatTraversal() error = %v", err)
	}

	wantLines := []string{
		"[depth 0] Python (Language)",
		"[depth 1] MachineLearning (Field) via USED_IN python -> machine_learning [primary]",
		"[depth 2] TensorFlow (Framework) via USES machine_learning -> tensorflow",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("FormatTraversal() output missing %q\ngot:\n%s", line, out)
		}
	}

	// Visited order must survive formatting.
	if strings.Index(out, "[depth 1]") > strings.Index(out, "[depth 2]") {
		t.Errorf("FormatTraversal() reordered steps:\n%s", out)
	}
}

func TestFormatTokenBudget(t *testing.T) {
	g := testGraph(t)

	var contexts []*EntityContext
	for _, id := range g.EntityIDs() {
		ctx, err := g.EntityContext(id)
		if err != nil {
			t.Fatalf("EntityContext(%s) error = %v", id, err)
		}
		contexts = append(contexts, ctx)
	}

	full, err := Formatter{}.FormatContexts(contexts)
	if err != nil {
		t.Fatalf("FormatContexts() error = %v", err)
	}

	truncated, err := Formatter{Encoder: "cl100k_base", MaxTokens: 60}.FormatContexts(contexts)
	if err != nil {
		t.Fatalf("FormatContexts() with budget error = %v", err)
	}

	if len(truncated) >= len(full) {
		t.Errorf("budgeted output (%d bytes) not shorter than full output (%d bytes)", len(truncated), len(full))
	}
	// The first block always survives, even under a tight budget.
	if !strings.Contains(truncated, "Entity #1:") {
		t.Errorf("budgeted output lost the first block:\n%s", truncated)
	}
}
