package query

import (
	"context"

	"github.com/lattice-kg/lattice/pkg/ai"
)

// GraphQueryClient answers natural-language questions against a knowledge
// graph: the question is rewritten into a keyword query, matching entities
// and their neighborhoods are assembled into a context block, and a text
// model generates the answer from that context. Both a blocking and a
// streaming variant are provided.
type GraphQueryClient interface {
	Query(
		ctx context.Context,
		msgs []ai.ChatMessage,
	) (string, error)
	QueryStream(
		ctx context.Context,
		msgs []ai.ChatMessage,
	) (<-chan ai.StreamEvent, error)
}
