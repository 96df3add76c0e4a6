package loader

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator"

	"github.com/lattice-kg/lattice/pkg/common"
	"github.com/lattice-kg/lattice/pkg/graph"
)

// LoadedGraph pairs a constructed graph with the name it is registered
// under.
type LoadedGraph struct {
	Name  string
	Graph *graph.Graph
}

// GraphSource produces named graphs from some backing location (a file, a
// directory, an S3 prefix). Sources are re-run on reload; every Load builds
// fresh graphs so a failed reload never corrupts the currently served ones.
type GraphSource interface {
	Load(ctx context.Context) ([]LoadedGraph, error)
}

var validate = validator.New()

// Parse decodes and validates a graph document. Any malformed or
// incomplete input is reported as a *graph.LoadError; no partially parsed
// document is ever returned.
func Parse(data []byte) (*common.GraphDocument, error) {
	var doc common.GraphDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &graph.LoadError{Reason: fmt.Sprintf("invalid graph document: %v", err)}
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, &graph.LoadError{Reason: fmt.Sprintf("graph document failed validation: %v", err)}
	}

	return &doc, nil
}

// Build parses a raw graph document and constructs the immutable graph
// from it.
func Build(data []byte) (*graph.Graph, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return graph.Load(doc.Entities, doc.Relationships)
}
