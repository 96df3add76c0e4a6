package graph

import (
	"sort"
	"strings"

	"github.com/lattice-kg/lattice/pkg/common"
)

// DefaultSearchLimit is the number of search results returned when the
// caller does not specify a limit. The HTTP layer applies it; Search itself
// always requires an explicit positive limit.
const DefaultSearchLimit = 5

// Match weights. The scoring is additive: an entity collects the weight of
// every rule that fires, and property matches stack per matching property.
const (
	weightNameExact     = 10
	weightTypeExact     = 8
	weightNameSubstring = 5
	weightPropertyMatch = 3
)

// SearchResult pairs an entity with its relevance score.
type SearchResult struct {
	Entity common.Entity `json:"entity"`
	Score  int           `json:"score"`
}

// scoreRule is one independent scoring evaluator over a normalized query and
// a candidate entity. Rules are pure functions; adding a rule never touches
// traversal or assembly code.
type scoreRule func(query string, e common.Entity) int

var scoreRules = []scoreRule{
	scoreNameExact,
	scoreNameSubstring,
	scoreTypeExact,
	scorePropertyMatches,
}

func scoreNameExact(query string, e common.Entity) int {
	if normalize(e.Name) == query {
		return weightNameExact
	}
	return 0
}

func scoreNameSubstring(query string, e common.Entity) int {
	name := normalize(e.Name)
	if name != query && strings.Contains(name, query) {
		return weightNameSubstring
	}
	return 0
}

func scoreTypeExact(query string, e common.Entity) int {
	if normalize(e.Type) == query {
		return weightTypeExact
	}
	return 0
}

func scorePropertyMatches(query string, e common.Entity) int {
	score := 0
	for _, value := range e.Properties {
		if strings.Contains(normalize(value), query) {
			score += weightPropertyMatch
		}
	}
	return score
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Search scores every entity against the free-text query and returns the
// top results ordered by score descending, ties broken by entity id
// ascending. Entities scoring zero are excluded. If typeFilter is non-empty,
// entities of a different type are excluded before scoring.
//
// An empty (or all-whitespace) query matches nothing. A non-positive limit
// is rejected with ErrInvalidArgument.
func (g *Graph) Search(query string, limit int, typeFilter string) ([]SearchResult, error) {
	if limit <= 0 {
		return nil, ErrInvalidArgument
	}

	q := normalize(query)
	if q == "" {
		return []SearchResult{}, nil
	}
	filter := normalize(typeFilter)

	results := make([]SearchResult, 0)
	// Iterate in id order so equal-score ties already arrive sorted.
	for _, id := range g.entityIDs {
		e := g.entities[id]
		if filter != "" && normalize(e.Type) != filter {
			continue
		}

		score := 0
		for _, rule := range scoreRules {
			score += rule(q, e)
		}
		if score == 0 {
			continue
		}
		results = append(results, SearchResult{Entity: e, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
