package base

import (
	"context"
	"fmt"

	"github.com/lattice-kg/lattice/pkg/ai"
	"github.com/lattice-kg/lattice/pkg/graph"
	"github.com/lattice-kg/lattice/pkg/logger"
)

type queryOptions struct {
	SystemPrompts    []string
	Model            string
	Thinking         string
	SearchLimit      int
	MaxContextTokens int
	Encoder          string
	MaxRewriteTries  int
}

// QueryOption is a functional option for configuring query behavior.
type QueryOption func(*queryOptions)

// WithSystemPrompts returns a QueryOption that appends additional system
// prompts to guide the AI's response generation.
func WithSystemPrompts(prompts ...string) QueryOption {
	return func(o *queryOptions) {
		o.SystemPrompts = append(o.SystemPrompts, prompts...)
	}
}

// WithModel returns a QueryOption that specifies which AI model to use for
// generating responses.
func WithModel(model string) QueryOption {
	return func(o *queryOptions) {
		o.Model = model
	}
}

// WithThinking returns a QueryOption that enables extended thinking mode,
// allowing the AI to reason through complex queries before responding.
func WithThinking(thinking string) QueryOption {
	return func(o *queryOptions) {
		o.Thinking = thinking
	}
}

// WithSearchLimit returns a QueryOption that caps how many entities are
// assembled into the answer context.
func WithSearchLimit(limit int) QueryOption {
	return func(o *queryOptions) {
		o.SearchLimit = limit
	}
}

// WithMaxContextTokens returns a QueryOption that bounds the formatted
// context block. Whole entity blocks are dropped once the budget would be
// exceeded.
func WithMaxContextTokens(tokens int) QueryOption {
	return func(o *queryOptions) {
		o.MaxContextTokens = tokens
	}
}

// WithEncoder returns a QueryOption that selects the tiktoken encoding used
// for the context token budget.
func WithEncoder(encoder string) QueryOption {
	return func(o *queryOptions) {
		o.Encoder = encoder
	}
}

// BaseQueryClient implements query.GraphQueryClient against one immutable
// graph snapshot. It combines an AI client for query rewriting and answer
// generation with the graph's search, neighborhood, and traversal
// operations.
//
// Clients are cheap to construct; the HTTP layer builds one per request so
// each request is pinned to the graph snapshot current at arrival.
type BaseQueryClient struct {
	aiClient ai.TextClient
	graph    *graph.Graph
	options  queryOptions
}

// NewGraphQueryClient creates a query client for the given graph snapshot.
//
// Example:
//
//	client := base.NewGraphQueryClient(aiClient, g, base.WithSearchLimit(5))
func NewGraphQueryClient(aiC ai.TextClient, g *graph.Graph, opts ...QueryOption) *BaseQueryClient {
	c := BaseQueryClient{
		aiClient: aiC,
		graph:    g,
		options: queryOptions{
			SearchLimit:     graph.DefaultSearchLimit,
			MaxRewriteTries: 2,
		},
	}

	for _, o := range opts {
		o(&c.options)
	}
	if c.options.SearchLimit <= 0 {
		c.options.SearchLimit = graph.DefaultSearchLimit
	}

	return &c
}

func (c *BaseQueryClient) generateOpts() []ai.GenerateOption {
	opts := []ai.GenerateOption{}
	if c.options.Model != "" {
		opts = append(opts, ai.WithModel(c.options.Model))
	}
	if c.options.Thinking != "" {
		opts = append(opts, ai.WithThinking(c.options.Thinking))
	}
	return opts
}

// generateNoDataResponse generates a response in the user's language when no
// relevant entity is found in the knowledge graph.
func (c *BaseQueryClient) generateNoDataResponse(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(ai.NoDataPrompt, query)
	res, err := c.aiClient.GenerateCompletion(ctx, prompt, c.generateOpts()...)
	if err != nil {
		logger.Error("[Query] failed to generate no data response", "err", err)
		return "There was a server error, please try again later.", err
	}

	return res, nil
}
