package base

import (
	"context"
	"fmt"

	"github.com/lattice-kg/lattice/pkg/ai"
)

// Query answers a question against the knowledge graph. It rewrites the
// latest user message into a keyword query, assembles context from matching
// entities and their neighborhoods, then generates a response with the AI
// client. If no relevant entity is found, it returns a "no data" response
// rather than hallucinating.
func (c *BaseQueryClient) Query(
	ctx context.Context,
	msgs []ai.ChatMessage,
) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	question := msgs[len(msgs)-1].Message

	context, err := c.retrieveContext(ctx, question)
	if err != nil {
		return "", err
	}

	// If no relevant context found, generate a "no data" response instead of hallucinating
	if context == "" {
		return c.generateNoDataResponse(ctx, question)
	}

	prompt := fmt.Sprintf(ai.QueryPrompt, context)
	systemPrompts := []string{prompt}
	systemPrompts = append(systemPrompts, c.options.SystemPrompts...)

	generateOpts := append(c.generateOpts(), ai.WithSystemPrompts(systemPrompts...))

	resp, err := c.aiClient.GenerateChat(ctx, msgs, generateOpts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer from AI:\n%w", err)
	}

	return resp, nil
}

// QueryStream answers a question against the knowledge graph, streaming the
// response incrementally. It emits progress events for the retrieval steps
// followed by content chunks as they become available. Like Query, it
// returns a "no data" response when no relevant entity is found.
func (c *BaseQueryClient) QueryStream(
	ctx context.Context,
	msgs []ai.ChatMessage,
) (<-chan ai.StreamEvent, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}

	out := make(chan ai.StreamEvent, 10)

	go func() {
		defer close(out)

		out <- ai.StreamEvent{Type: "step", Step: "graph_search"}

		question := msgs[len(msgs)-1].Message

		context, err := c.retrieveContext(ctx, question)
		if err != nil {
			return
		}

		// If no relevant context found, generate a "no data" response instead of hallucinating
		if context == "" {
			noDataResp, err := c.generateNoDataResponse(ctx, question)
			if err != nil {
				return
			}
			out <- ai.StreamEvent{Type: "content", Content: noDataResp}
			return
		}

		prompt := fmt.Sprintf(ai.QueryPrompt, context)
		systemPrompts := []string{prompt}
		systemPrompts = append(systemPrompts, c.options.SystemPrompts...)

		generateOpts := append(c.generateOpts(), ai.WithSystemPrompts(systemPrompts...))

		resp, err := c.aiClient.GenerateChatStream(ctx, msgs, generateOpts...)
		if err != nil {
			return
		}

		for event := range resp {
			out <- event
		}
	}()

	return out, nil
}
